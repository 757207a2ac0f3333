package typeset

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ByLCY/textfmt/dsl"
	"github.com/ByLCY/textfmt/layout"
)

// ErrEndnoteNesting 表示脚注正文中再次出现 \endnote，属于致命错误。
var ErrEndnoteNesting = errors.New("endnotes nested too deeply")

// Mode 表示控制器当前处理的是正文还是脚注正文。
type Mode int

const (
	MainDocument Mode = iota
	EndnoteBody
)

func (m Mode) String() string {
	if m == EndnoteBody {
		return "endnote"
	}
	return "document"
}

// Options 配置一次文档排版。
type Options struct {
	Document   layout.State // 正文初始参数，零值时使用 layout.DocumentDefaults
	Endnotes   layout.State // 脚注模板初始参数，零值时使用 layout.EndnoteDefaults
	TextHeight int          // 每页行数，<= 0 表示不限
	Filename   string       // 用于错误位置
	Logger     *log.Logger  // 可恢复错误的诊断输出，nil 时使用 log.Default()
}

// Controller 是命令分派状态机：把文本与命令转发给当前的 LineAssembler，
// 并管理脚注的编号、子解析与最终输出。
type Controller struct {
	session   *Session
	assembler *layout.LineAssembler
	mode      Mode
	logger    *log.Logger
	sink      layout.Sink
}

var _ dsl.Handler = (*Controller)(nil)

// New 创建输出到 sink 的正文控制器。
func New(sink layout.Sink, opts Options) (*Controller, error) {
	if sink == nil {
		return nil, fmt.Errorf("typeset: sink 不能为空")
	}
	doc := opts.Document
	if doc == (layout.State{}) {
		doc = layout.DocumentDefaults()
	}
	notes := opts.Endnotes
	if notes == (layout.State{}) {
		notes = layout.EndnoteDefaults()
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("typeset: 正文参数无效: %w", err)
	}
	if err := notes.Validate(); err != nil {
		return nil, fmt.Errorf("typeset: 脚注参数无效: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	pages := layout.NewPageAssembler(sink)
	if opts.TextHeight > 0 {
		if err := pages.SetTextHeight(opts.TextHeight); err != nil {
			return nil, fmt.Errorf("typeset: %w", err)
		}
	}
	return &Controller{
		session:   newSession(notes),
		assembler: layout.NewLineAssembler(pages, layout.Options{State: doc}),
		mode:      MainDocument,
		logger:    logger,
		sink:      sink,
	}, nil
}

// endnoteController 为一个脚注正文创建子控制器：共享会话，使用独立的 LineAssembler。
func (c *Controller) endnoteController() *Controller {
	pages := layout.NewPageAssembler(layout.NewCollector())
	return &Controller{
		session:   c.session,
		assembler: layout.NewLineAssembler(pages, layout.Options{State: c.session.template, Collect: true}),
		mode:      EndnoteBody,
		logger:    c.logger,
	}
}

// AddText 把 text 追加到当前单词。
func (c *Controller) AddText(text string) { c.assembler.AddText(text) }

// EndWord 结束当前单词。
func (c *Controller) EndWord() { c.assembler.FinishWord() }

// AddNewLine 结束当前单词并处理一次换行（仅非填充模式下有效果）。
func (c *Controller) AddNewLine() {
	c.EndWord()
	c.assembler.NewLine()
}

// EndParagraph 结束当前单词并输出当前段落。
func (c *Controller) EndParagraph() {
	c.EndWord()
	c.assembler.EndParagraph()
}

func (c *Controller) SetIndentation(val int)    { c.report(c.assembler.SetIndentation(val)) }
func (c *Controller) SetParIndentation(val int) { c.report(c.assembler.SetParIndentation(val)) }
func (c *Controller) SetTextWidth(val int)      { c.report(c.assembler.SetTextWidth(val)) }
func (c *Controller) SetParSkip(val int)        { c.report(c.assembler.SetParSkip(val)) }
func (c *Controller) SetFill(on bool)           { c.assembler.SetFill(on) }
func (c *Controller) SetJustify(on bool)        { c.assembler.SetJustify(on) }

// SetTextHeight 设置每页行数；脚注正文不单独分页，忽略该命令。
func (c *Controller) SetTextHeight(val int) {
	if c.mode == EndnoteBody {
		return
	}
	c.report(c.assembler.SetTextHeight(val))
}

// FormatEndnote 在当前行追加引用标记 [n]，再用新的子控制器解析脚注正文并保存其单词。
// 编号只在成功后递增。
func (c *Controller) FormatEndnote(text string) error {
	if c.mode == EndnoteBody {
		return ErrEndnoteNesting
	}
	n := c.session.next
	c.AddText(fmt.Sprintf("[%d]", n))

	sub := c.endnoteController()
	opts := dsl.ParseOptions{Filename: fmt.Sprintf("endnote[%d]", n), Logger: c.logger}
	if err := dsl.ParseString(text, sub, opts); err != nil {
		return fmt.Errorf("endnote [%d]: %w", n, err)
	}
	c.session.add(sub.assembler.TakeWords(), sub.assembler.State())
	return nil
}

// Close 输出所有未完成的内容；正文控制器随后输出脚注区。
func (c *Controller) Close() error {
	c.EndWord()
	c.AddNewLine()
	c.EndParagraph()
	if c.mode != MainDocument {
		return nil
	}
	c.writeEndnotes()
	if s, ok := c.sink.(interface{ Err() error }); ok {
		return s.Err()
	}
	return nil
}

// writeEndnotes 以脚注模板的宽度与缩进、parSkip 为 0 逐条输出脚注，每条一个段落。
func (c *Controller) writeEndnotes() {
	if len(c.session.endnotes) == 0 {
		return
	}
	tpl := c.session.template
	c.report(c.assembler.SetParIndentation(tpl.ParIndent))
	c.report(c.assembler.SetIndentation(tpl.Indent))
	c.report(c.assembler.SetParSkip(0))
	c.report(c.assembler.SetTextWidth(tpl.TextWidth))
	for i, words := range c.session.endnotes {
		// 编号与首词连成一个单位，两端对齐时不拉宽其间的空格
		marker := fmt.Sprintf("[%d]", i+1)
		if len(words) > 0 {
			marker += " " + words[0]
			words = words[1:]
		}
		c.assembler.AddWord(marker)
		for _, w := range words {
			c.assembler.AddWord(w)
		}
		c.assembler.EndParagraph()
	}
}

func (c *Controller) report(err error) {
	if err != nil {
		c.logger.Print(err)
	}
}

// Mode 返回控制器当前模式。
func (c *Controller) Mode() Mode { return c.mode }

// Assembler 返回当前的 LineAssembler。
func (c *Controller) Assembler() *layout.LineAssembler { return c.assembler }

// Session 返回共享的排版会话。
func (c *Controller) Session() *Session { return c.session }

// Format 解析 r 并把排版结果输出到 sink。
func Format(r io.Reader, sink layout.Sink, opts Options) (*Controller, error) {
	c, err := New(sink, opts)
	if err != nil {
		return nil, err
	}
	if err := dsl.Parse(r, c, dsl.ParseOptions{Filename: opts.Filename, Logger: c.logger}); err != nil {
		return c, err
	}
	return c, nil
}

// FormatString 排版 input 并返回收集到的全部输出行。
func FormatString(input string, opts Options) (*layout.Collector, error) {
	out := layout.NewCollector()
	c, err := New(out, opts)
	if err != nil {
		return nil, err
	}
	if err := dsl.ParseString(input, c, dsl.ParseOptions{Filename: opts.Filename, Logger: c.logger}); err != nil {
		return out, err
	}
	return out, nil
}
