package layout

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// newTestAssembler 创建输出到 Collector 的 LineAssembler。
func newTestAssembler(state State) (*LineAssembler, *Collector) {
	out := NewCollector()
	return NewLineAssembler(NewPageAssembler(out), Options{State: state}), out
}

func addWords(a *LineAssembler, text string) {
	for _, w := range strings.Fields(text) {
		a.AddText(w)
		a.FinishWord()
	}
}

func assertLines(t *testing.T, out *Collector, want ...string) {
	t.Helper()
	got := out.Lines()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("lines mismatch:\n got=%q\nwant=%q", got, want)
	}
}

func TestFinishWordIdempotent(t *testing.T) {
	a, _ := newTestAssembler(DocumentDefaults())
	a.AddText("some")
	a.AddText("thing")
	a.FinishWord()
	once := a.Pending()
	a.FinishWord()
	twice := a.Pending()
	if len(once) != 1 || len(twice) != 1 || once[0] != "something" || twice[0] != "something" {
		t.Fatalf("FinishWord should be idempotent: once=%q twice=%q", once, twice)
	}
	if a.CurrentWord() != "" {
		t.Fatalf("current word should be empty, got %q", a.CurrentWord())
	}
}

// 非填充模式：“alpha  beta\ngamma” 原样输出两行。
func TestNonFillLiteral(t *testing.T) {
	state := DocumentDefaults()
	state.Fill = false
	state.ParIndent = 0
	state.Indent = 2
	a, out := newTestAssembler(state)

	a.AddText("alpha")
	a.FinishWord()
	a.FinishWord()
	a.AddText("beta")
	a.FinishWord()
	a.NewLine()
	a.AddText("gamma")
	a.NewLine() // 未结束的单词不会被输出
	a.EndParagraph()
	a.EndParagraph()

	assertLines(t, out, "  alpha beta", "  gamma")
}

func TestNonFillIgnoresWidth(t *testing.T) {
	state := DocumentDefaults()
	state.Fill = false
	state.TextWidth = 5
	state.ParIndent = 1
	a, out := newTestAssembler(state)
	addWords(a, "these words never wrap")
	a.NewLine()
	addWords(a, "second")
	a.EndParagraph()
	assertLines(t, out, " these words never wrap", "second")
}

// 段落最后一行即使开启对齐也保持左对齐。
func TestLastLineNeverJustified(t *testing.T) {
	state := DocumentDefaults()
	state.TextWidth = 5
	state.ParIndent = 0
	a, out := newTestAssembler(state)
	addWords(a, "a b c d e")
	a.EndParagraph()
	assertLines(t, out, "a b c", "d e")
}

func TestFillJustifyParagraph(t *testing.T) {
	state := DocumentDefaults()
	state.TextWidth = 20
	a, out := newTestAssembler(state)
	addWords(a, "The quick brown fox jumps over the lazy dog")
	a.EndParagraph()
	assertLines(t, out,
		"   The  quick  brown",
		"fox  jumps over  the",
		"lazy dog",
	)

	a.SetJustify(false)
	addWords(a, "The quick brown fox jumps over the lazy dog")
	a.EndParagraph()
	assertLines(t, out,
		"   The  quick  brown",
		"fox  jumps over  the",
		"lazy dog",
		"   The quick brown",
		"fox jumps over the",
		"lazy dog",
	)
}

func TestOversizedWordPassthrough(t *testing.T) {
	for _, justify := range []bool{true, false} {
		state := DocumentDefaults()
		state.TextWidth = 6
		state.ParIndent = 0
		state.Justify = justify
		a, out := newTestAssembler(state)
		addWords(a, "ab supercalifragilistic cd ef")
		a.EndParagraph()
		assertLines(t, out, "ab", "supercalifragilistic", "cd ef")
	}
}

func TestIndentWiderThanTextWidth(t *testing.T) {
	state := DocumentDefaults()
	state.TextWidth = 20
	state.Indent = 30
	state.ParIndent = 2
	a, out := newTestAssembler(state)
	addWords(a, "word next")
	a.EndParagraph()
	pad := strings.Repeat(" ", 16)
	assertLines(t, out, pad+"word", pad+"next")

	// 极大的缩进不会溢出，也不会生成超长的行
	for _, fill := range []bool{true, false} {
		state = DocumentDefaults()
		state.TextWidth = 10
		state.Fill = fill
		a, out = newTestAssembler(state)
		if err := a.SetIndentation(math.MaxInt); err != nil {
			t.Fatalf("SetIndentation: %v", err)
		}
		if err := a.SetParIndentation(math.MaxInt); err != nil {
			t.Fatalf("SetParIndentation: %v", err)
		}
		addWords(a, "a bb")
		a.EndParagraph()
		for _, line := range out.Lines() {
			if len(line) > 14 {
				t.Fatalf("fill=%v: line too long: %q", fill, line)
			}
		}
	}
}

// 段落累积中途设置的 parSkip 从下一个段落才生效。
func TestDeferredParSkip(t *testing.T) {
	state := DocumentDefaults()
	state.ParIndent = 0
	a, out := newTestAssembler(state)

	addWords(a, "one")
	a.EndParagraph()

	addWords(a, "two")
	if err := a.SetParSkip(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.State().ParSkip != 0 {
		t.Fatalf("parSkip must not change mid-paragraph")
	}
	a.EndParagraph()
	if a.State().ParSkip != 2 {
		t.Fatalf("held parSkip should apply after the paragraph, got %d", a.State().ParSkip)
	}

	addWords(a, "three")
	a.EndParagraph()
	assertLines(t, out, "one", "two", "", "", "three")
}

func TestParSkipNotBeforeFirstParagraph(t *testing.T) {
	state := DocumentDefaults()
	state.ParSkip = 1
	state.ParIndent = 0
	a, out := newTestAssembler(state)
	a.EndParagraph() // 空段落不输出任何内容
	addWords(a, "first")
	a.EndParagraph()
	addWords(a, "second")
	a.EndParagraph()
	assertLines(t, out, "first", "", "second")
}

func TestCollectMode(t *testing.T) {
	out := NewCollector()
	a := NewLineAssembler(NewPageAssembler(out), Options{State: EndnoteDefaults(), Collect: true})
	addWords(a, "one two")
	a.NewLine()
	a.EndParagraph()
	a.AddText("three")
	if got := a.TakeWords(); strings.Join(got, " ") != "one two three" {
		t.Fatalf("TakeWords: got %q", got)
	}
	if len(out.Lines()) != 0 {
		t.Fatalf("collect mode must not emit lines, got %q", out.Lines())
	}
	if len(a.Pending()) != 0 {
		t.Fatalf("TakeWords should clear pending words")
	}
}

func TestSettersValidate(t *testing.T) {
	a, _ := newTestAssembler(DocumentDefaults())
	cases := []struct {
		name string
		set  func() error
		want error
	}{
		{"indent", func() error { return a.SetIndentation(-1) }, ErrInvalidIndentation},
		{"parindent", func() error { return a.SetParIndentation(-1) }, ErrInvalidParIndentation},
		{"textwidth", func() error { return a.SetTextWidth(0) }, ErrInvalidTextWidth},
		{"textheight", func() error { return a.SetTextHeight(0) }, ErrInvalidTextHeight},
		{"parskip", func() error { return a.SetParSkip(-2) }, ErrInvalidParSkip},
	}
	for _, tc := range cases {
		if err := tc.set(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if a.State() != DocumentDefaults() {
		t.Fatalf("invalid values must leave the state unchanged, got %+v", a.State())
	}

	if err := a.SetIndentation(4); err != nil || a.State().Indent != 4 {
		t.Fatalf("SetIndentation(4): err=%v state=%+v", err, a.State())
	}
	if err := a.SetTextHeight(10); err != nil || a.Pages().TextHeight() != 10 {
		t.Fatalf("SetTextHeight(10): err=%v height=%d", err, a.Pages().TextHeight())
	}
}

func TestStateValidate(t *testing.T) {
	if err := DocumentDefaults().Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}
	if err := EndnoteDefaults().Validate(); err != nil {
		t.Fatalf("endnote defaults should be valid: %v", err)
	}
	bad := DocumentDefaults()
	bad.ParIndent = -1
	if err := bad.Validate(); !errors.Is(err, ErrInvalidParIndentation) {
		t.Fatalf("expected ErrInvalidParIndentation, got %v", err)
	}
}
