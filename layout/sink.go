package layout

import (
	"io"
	"strings"
)

// Sink 接收 PageAssembler 完成的行，决定其最终去向（打印或收集）。
type Sink interface {
	WriteLine(line string)
	WriteBlank()
}

// PageBreaker 是 Sink 的可选扩展：实现它的 Sink 通过 NewPage 得知分页，
// 下一行不再带分页标记。
type PageBreaker interface {
	NewPage()
}

// WriterSink 将每一行加换行符直接写入 io.Writer。
// 写入错误会被记录，之后的写入全部忽略，调用方通过 Err 检查。
type WriterSink struct {
	w   io.Writer
	err error
}

var (
	_ Sink = (*WriterSink)(nil)
	_ Sink = (*Collector)(nil)
)

// NewWriterSink 创建打印到 w 的 Sink。
func NewWriterSink(w io.Writer) *WriterSink { return &WriterSink{w: w} }

func (s *WriterSink) WriteLine(line string) { s.write(line + "\n") }

func (s *WriterSink) WriteBlank() { s.write("\n") }

// Err 返回第一次写入失败的错误。
func (s *WriterSink) Err() error { return s.err }

func (s *WriterSink) write(text string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, text)
}

// Collector 把行收集到内存中，并单独记录每一页的起始行，
// 行文本中的 form feed 不会被当作分页。
type Collector struct {
	lines  []string
	breaks map[int]bool // 新页首行的下标
}

var _ PageBreaker = (*Collector)(nil)

// NewCollector 创建空的收集器。
func NewCollector() *Collector { return &Collector{breaks: map[int]bool{}} }

func (c *Collector) WriteLine(line string) { c.lines = append(c.lines, line) }

func (c *Collector) WriteBlank() { c.lines = append(c.lines, "") }

// NewPage 标记下一行为新页的第一行。
func (c *Collector) NewPage() {
	if c.breaks == nil {
		c.breaks = map[int]bool{}
	}
	c.breaks[len(c.lines)] = true
}

// Lines 返回收集到的行；新页首行前加分页标记，与打印输出一致。
func (c *Collector) Lines() []string {
	out := make([]string, len(c.lines))
	for i, ln := range c.lines {
		if c.breaks[i] {
			ln = PageBreak + ln
		}
		out[i] = ln
	}
	return out
}

// String 返回与 WriterSink 输出一致的文本。
func (c *Collector) String() string {
	var b strings.Builder
	for _, ln := range c.Lines() {
		b.WriteString(ln)
		b.WriteByte('\n')
	}
	return b.String()
}

// Result 按记录的分页位置把收集到的行切分为页面。
func (c *Collector) Result() *Result {
	res := &Result{}
	cur := Page{Lines: []string{}}
	for i, ln := range c.lines {
		if c.breaks[i] && i > 0 {
			res.Pages = append(res.Pages, cur)
			cur = Page{Lines: []string{}}
		}
		cur.Lines = append(cur.Lines, ln)
	}
	if len(cur.Lines) > 0 || len(res.Pages) == 0 {
		res.Pages = append(res.Pages, cur)
	}
	return res
}
