package layout

// PageAssembler 接收完成的行并按页高分页：除第一页外，每页首行前加分页标记。
type PageAssembler struct {
	sink   Sink
	height int
	count  int // 当前页已输出的行数
}

// NewPageAssembler 创建输出到 sink 的 PageAssembler，初始页高不限。
func NewPageAssembler(sink Sink) *PageAssembler {
	return &PageAssembler{sink: sink, height: Unbounded}
}

// AddLine 把 line 加入当前页；当前页已满时以分页标记开启新页。
// 仅含一个换行符的 line 视为空行。
func (p *PageAssembler) AddLine(line string) {
	if line == "\n" {
		p.AddBlank()
		return
	}
	if p.count < p.height {
		p.sink.WriteLine(line)
		p.count++
		return
	}
	if pb, ok := p.sink.(PageBreaker); ok {
		pb.NewPage()
		p.sink.WriteLine(line)
	} else {
		p.sink.WriteLine(PageBreak + line)
	}
	p.count = 1
}

// AddBlank 输出一个空行。当前页已满时丢弃，空行永远不会成为新页的第一行。
func (p *PageAssembler) AddBlank() {
	if p.count >= p.height {
		return
	}
	p.sink.WriteBlank()
	p.count++
}

// SetTextHeight 修改之后各页的行数上限，val > 0。
func (p *PageAssembler) SetTextHeight(val int) error {
	if val <= 0 {
		return invalid(ErrInvalidTextHeight, val)
	}
	p.height = val
	return nil
}

// TextHeight 返回当前页高。
func (p *PageAssembler) TextHeight() int { return p.height }

// FirstLine 报告当前页是否恰好写满，即下一行将成为新页的第一行。
func (p *PageAssembler) FirstLine() bool { return p.count == p.height }
