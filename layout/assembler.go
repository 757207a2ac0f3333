package layout

import "strings"

// LineAssembler 把单词累积成行与段落，按当前参数换行、两端对齐，
// 并把完成的行交给 PageAssembler。
type LineAssembler struct {
	pages   *PageAssembler
	state   State
	collect bool

	words []string        // 当前段落（或非填充模式下当前行）已完成的单词
	word  strings.Builder // 正在拼接的单词

	inParagraph bool // 当前段落已经输出过行
	emitted     bool // 文档中已经输出过段落
	holding     bool // parSkip 是否有延迟生效的新值
	heldSkip    int
}

// NewLineAssembler 创建输出到 pages 的 LineAssembler。
func NewLineAssembler(pages *PageAssembler, opts Options) *LineAssembler {
	return &LineAssembler{
		pages:   pages,
		state:   opts.State,
		collect: opts.Collect,
	}
}

// AddText 把 text 追加到正在拼接的单词。
func (a *LineAssembler) AddText(text string) {
	a.word.WriteString(text)
}

// FinishWord 结束当前单词并加入待输出的单词列表；没有正在拼接的单词时无效果。
func (a *LineAssembler) FinishWord() {
	if a.word.Len() == 0 {
		return
	}
	a.words = append(a.words, a.word.String())
	a.word.Reset()
}

// AddWord 直接追加一个完整的单词。
func (a *LineAssembler) AddWord(word string) {
	a.words = append(a.words, word)
}

// Pending 返回已完成但尚未输出的单词。
func (a *LineAssembler) Pending() []string {
	out := make([]string, len(a.words))
	copy(out, a.words)
	return out
}

// CurrentWord 返回正在拼接的单词。
func (a *LineAssembler) CurrentWord() string { return a.word.String() }

// TakeWords 结束当前单词，取走全部待输出单词并清空。
func (a *LineAssembler) TakeWords() []string {
	a.FinishWord()
	out := a.words
	a.words = nil
	return out
}

// NewLine 处理输入中的单个换行：仅在非填充模式下把当前行原样输出。
func (a *LineAssembler) NewLine() {
	if a.collect || a.state.Fill || len(a.words) == 0 {
		return
	}
	a.emitLiteral()
}

// EndParagraph 输出当前段落并开始新段落。
// 段落为空时不输出任何内容；延迟的 parSkip 在此之后生效。
func (a *LineAssembler) EndParagraph() {
	a.FinishWord()
	if a.collect {
		return
	}
	if len(a.words) > 0 {
		if a.state.Fill {
			a.fillParagraph()
		} else {
			a.emitLiteral()
		}
	}
	a.words = nil
	a.inParagraph = false
	if a.holding {
		a.state.ParSkip = a.heldSkip
		a.holding = false
	}
}

func (a *LineAssembler) fillParagraph() {
	lines := BreakLines(a.words, a.state.TextWidth, a.lineIndent(), a.state.Indent)
	for _, ln := range lines {
		a.emit(ln.Render(a.state.TextWidth, a.state.Justify))
	}
}

// emitLiteral 以非填充方式输出当前行；行中含空单词时整行丢弃。
func (a *LineAssembler) emitLiteral() {
	for _, w := range a.words {
		if w == "" {
			a.words = nil
			return
		}
	}
	ln := Line{Words: a.words, Indent: a.lineIndent(), Last: true}
	a.emit(ln.Render(a.state.TextWidth, false))
	a.words = nil
}

// emit 输出一行；段落的第一行之前先输出 parSkip 个空行（文档第一段除外）。
func (a *LineAssembler) emit(text string) {
	if !a.inParagraph {
		if a.emitted {
			for i := 0; i < a.state.ParSkip; i++ {
				a.pages.AddBlank()
			}
		}
		a.inParagraph = true
		a.emitted = true
	}
	a.pages.AddLine(text)
}

// lineIndent 返回下一行的缩进：段首行为 indent+parIndent，最多为行宽。
func (a *LineAssembler) lineIndent() int {
	w := a.state.TextWidth
	if a.inParagraph {
		return min(a.state.Indent, w)
	}
	return min(min(a.state.Indent, w)+min(a.state.ParIndent, w), w)
}

func (a *LineAssembler) pending() bool {
	return len(a.words) > 0 || a.word.Len() > 0
}

// SetIndentation 设置左缩进，val >= 0。
func (a *LineAssembler) SetIndentation(val int) error {
	if val < 0 {
		return invalid(ErrInvalidIndentation, val)
	}
	a.state.Indent = val
	return nil
}

// SetParIndentation 设置段首行额外缩进，val >= 0。
func (a *LineAssembler) SetParIndentation(val int) error {
	if val < 0 {
		return invalid(ErrInvalidParIndentation, val)
	}
	a.state.ParIndent = val
	return nil
}

// SetTextWidth 设置行宽，val > 0。
func (a *LineAssembler) SetTextWidth(val int) error {
	if val <= 0 {
		return invalid(ErrInvalidTextWidth, val)
	}
	a.state.TextWidth = val
	return nil
}

// SetTextHeight 设置页高，val > 0。
func (a *LineAssembler) SetTextHeight(val int) error {
	return a.pages.SetTextHeight(val)
}

// SetParSkip 设置段前空行数，val >= 0。
// 段落累积中途调用时新值会被暂存，到下一个段落边界才生效。
func (a *LineAssembler) SetParSkip(val int) error {
	if val < 0 {
		return invalid(ErrInvalidParSkip, val)
	}
	if a.pending() {
		a.holding = true
		a.heldSkip = val
		return nil
	}
	a.state.ParSkip = val
	return nil
}

// SetFill 开关填充模式。
func (a *LineAssembler) SetFill(on bool) { a.state.Fill = on }

// SetJustify 开关两端对齐（仅在填充模式下生效）。
func (a *LineAssembler) SetJustify(on bool) { a.state.Justify = on }

// State 返回当前参数（不含尚未生效的 parSkip）。
func (a *LineAssembler) State() State { return a.state }

// Pages 返回下游的 PageAssembler。
func (a *LineAssembler) Pages() *PageAssembler { return a.pages }
