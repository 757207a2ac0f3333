package layout

import (
	"strings"
	"unicode/utf8"
)

// maxGap 是两端对齐时单个词间距的上限（含必需的一个空格）。
const maxGap = 3

// Line 是贪心换行产生的一行：单词序列及其缩进。
type Line struct {
	Words  []string
	Indent int
	// Last 标记段落的最后一行，最后一行永远左对齐。
	Last bool
}

// BreakLines 对一个段落的单词做贪心换行。首行缩进为 firstIndent，其余行为 indent。
// 长度超过 width 的单词单独成行，不与相邻单词合并。
//
// 缩进过大、连一个单词都放不下时，该行缩进收缩到恰好容纳这一行；
// 超长单词所在的行不缩进。
func BreakLines(words []string, width, firstIndent, indent int) []Line {
	var (
		lines []Line
		cur   []string
		chars int
	)
	firstIndent = min(firstIndent, width)
	indent = min(indent, width)
	lineIndent := firstIndent
	fit := func() int {
		return min(lineIndent, max(width-chars-len(cur)+1, 0))
	}
	flush := func() {
		if len(cur) == 0 {
			return
		}
		lines = append(lines, Line{Words: cur, Indent: fit()})
		cur = nil
		chars = 0
		lineIndent = indent
	}

	for _, w := range words {
		n := wordLen(w)
		if n > width {
			flush()
			cur = []string{w}
			flush()
			continue
		}
		// 每个已有单词后面都需要一个空格
		if len(cur) > 0 && lineIndent+chars+len(cur)+n > width {
			flush()
		}
		cur = append(cur, w)
		chars += n
	}
	if len(cur) > 0 {
		lines = append(lines, Line{Words: cur, Indent: fit(), Last: true})
	}
	return lines
}

// Render 输出带缩进的行文本；justify 为 true 且不是段落最后一行时两端对齐。
func (l Line) Render(width int, justify bool) string {
	pad := strings.Repeat(" ", l.Indent)
	if justify && !l.Last {
		return pad + Justify(l.Words, l.Indent, width)
	}
	return pad + strings.Join(l.Words, " ")
}

// Justify 在单词之间分配额外空格，使行右端对齐到 width（不含缩进本身）。
//
// 单词数为 1，或自然长度恰好等于 width-indent 时原样返回。空余 b 不少于 3×单词数时
// 统一使用 3 个空格；否则第 i 个间隙累计分配 round(b×i/(n-1)) 个空格，
// 每个间隙限制在 1 到 3 个空格之间。
func Justify(words []string, indent, width int) string {
	n := len(words)
	if n <= 1 {
		return strings.Join(words, "")
	}
	chars := charsIn(words)
	if chars+n-1 == width-indent {
		return strings.Join(words, " ")
	}
	b := width - indent - chars
	if b >= maxGap*n {
		return strings.Join(words, strings.Repeat(" ", maxGap))
	}

	var sb strings.Builder
	sb.WriteString(words[0])
	prev := 0
	for i := 1; i < n; i++ {
		// 四舍五入：round(b*i/(n-1))，整数运算避免浮点误差
		cur := (2*b*i + (n - 1)) / (2 * (n - 1))
		gap := min(max(cur-prev, 1), maxGap)
		prev = cur
		sb.WriteString(strings.Repeat(" ", gap))
		sb.WriteString(words[i])
	}
	return sb.String()
}

// charsIn 返回单词字符数之和（按 rune 计）。
func charsIn(words []string) int {
	total := 0
	for _, w := range words {
		total += wordLen(w)
	}
	return total
}

func wordLen(w string) int { return utf8.RuneCountInString(w) }
