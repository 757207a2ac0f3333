package layout

// 该文件定义排版参数与排版结果，供行装配、分页、渲染与调试 JSON 共用。

import "math"

// Unbounded 表示页高不限（不插入分页符）。
const Unbounded = math.MaxInt

// PageBreak 是插入到新页首行之前的分页标记（form feed，ASCII 12）。
const PageBreak = "\f"

// State 保存一个 LineAssembler 独占的排版参数。
// Justify 仅在 Fill 为 true 时生效。
type State struct {
	TextWidth int  `json:"textWidth" yaml:"textWidth"` // 行宽（含缩进），> 0
	Indent    int  `json:"indent" yaml:"indent"`       // 每行左缩进，>= 0
	ParIndent int  `json:"parIndent" yaml:"parIndent"` // 段首行额外缩进，>= 0
	ParSkip   int  `json:"parSkip" yaml:"parSkip"`     // 段前空行数，>= 0
	Fill      bool `json:"fill" yaml:"fill"`
	Justify   bool `json:"justify" yaml:"justify"`
}

// Validate 检查参数是否满足各 setter 的约束，返回第一个不满足的错误。
func (s State) Validate() error {
	if s.TextWidth <= 0 {
		return invalid(ErrInvalidTextWidth, s.TextWidth)
	}
	if s.Indent < 0 {
		return invalid(ErrInvalidIndentation, s.Indent)
	}
	if s.ParIndent < 0 {
		return invalid(ErrInvalidParIndentation, s.ParIndent)
	}
	if s.ParSkip < 0 {
		return invalid(ErrInvalidParSkip, s.ParSkip)
	}
	return nil
}

// Result 保存收集到的全部页面，用于 PDF 渲染与调试输出。
type Result struct {
	Pages    []Page       `json:"pages"`
	Meta     DocumentMeta `json:"meta"`
	Endnotes int          `json:"endnotes"`
}

// Page 是一页上按顺序输出的文本行（不含分页标记与换行符）。
type Page struct {
	Lines []string `json:"lines"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title   string `json:"title,omitempty"`
	Author  string `json:"author,omitempty"`
	Creator string `json:"creator,omitempty"`
}

// LineCount 返回所有页面的总行数。
func (r *Result) LineCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, p := range r.Pages {
		n += len(p.Lines)
	}
	return n
}
