package typeset

import "github.com/ByLCY/textfmt/layout"

// Session 保存一次文档排版中正文与脚注子解析共享的状态。
// 每次排版各自拥有一个 Session，互不影响。
type Session struct {
	next     int        // 下一个脚注编号，从 1 开始
	endnotes [][]string // 已完成的脚注正文，下标 i 对应编号 i+1
	template layout.State
}

func newSession(template layout.State) *Session {
	return &Session{next: 1, template: template}
}

// add 保存一条脚注，并以其最终参数作为之后脚注的模板。
func (s *Session) add(words []string, last layout.State) {
	s.endnotes = append(s.endnotes, words)
	s.template = last
	s.next++
}

// Endnotes 返回已完成的脚注正文。
func (s *Session) Endnotes() [][]string {
	out := make([][]string, len(s.endnotes))
	copy(out, s.endnotes)
	return out
}

// Template 返回当前脚注模板参数。
func (s *Session) Template() layout.State { return s.template }

// Next 返回下一个脚注编号。
func (s *Session) Next() int { return s.next }
