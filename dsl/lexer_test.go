package dsl

import (
	"errors"
	"testing"
)

type lexTest struct {
	name  string
	input string
	items []Token
}

func mkItem(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

func mkCmd(name, arg string) Token {
	return Token{Kind: Command, Text: name, Arg: arg, HasArg: true}
}

var (
	tEOF   = mkItem(EOF, "")
	tBlank = mkItem(Blank, "")
	tNL    = mkItem(LineBreak, "")
	tPar   = mkItem(ParagraphBreak, "")
)

var lexTests = []lexTest{
	{"empty", "", []Token{tEOF}},
	{"words", "now is  the\ttime", []Token{
		mkItem(Text, "now"), tBlank, mkItem(Text, "is"), tBlank, mkItem(Text, "the"), tBlank, mkItem(Text, "time"), tEOF,
	}},
	{"line break", "one\ntwo", []Token{mkItem(Text, "one"), tNL, mkItem(Text, "two"), tEOF}},
	{"crlf line break", "one\r\ntwo", []Token{mkItem(Text, "one"), tNL, mkItem(Text, "two"), tEOF}},
	{"paragraph break", "one\n\n\ntwo", []Token{mkItem(Text, "one"), tPar, mkItem(Text, "two"), tEOF}},
	{"blank line with spaces is not a paragraph break", "one\n  \ntwo", []Token{
		mkItem(Text, "one"), tNL, tBlank, tNL, mkItem(Text, "two"), tEOF,
	}},
	{"escapes", `a\\b\{c\}d\ e`, []Token{
		mkItem(Text, "a"), mkItem(EscapedChar, `\`), mkItem(Text, "b"), mkItem(EscapedChar, "{"),
		mkItem(Text, "c"), mkItem(EscapedChar, "}"), mkItem(Text, "d"), mkItem(EscapedChar, " "),
		mkItem(Text, "e"), tEOF,
	}},
	{"command", `\fill word`, []Token{mkItem(Command, "fill"), tBlank, mkItem(Text, "word"), tEOF}},
	{"command ends at non-letter", `\nofill.`, []Token{mkItem(Command, "nofill"), mkItem(Text, "."), tEOF}},
	{"command with argument", `\indent{4}x`, []Token{mkCmd("indent", "4"), mkItem(Text, "x"), tEOF}},
	{"empty argument", `\endnote{}`, []Token{mkCmd("endnote", ""), tEOF}},
	{"nested braces", `\endnote{a {b {c}} d}`, []Token{mkCmd("endnote", "a {b {c}} d"), tEOF}},
	{"escapes kept raw in argument", `\endnote{x \} y \\ z}`, []Token{mkCmd("endnote", `x \} y \\ z`), tEOF}},
	{"newlines in argument", "\\endnote{one\n\ntwo}", []Token{mkCmd("endnote", "one\n\ntwo"), tEOF}},
	{"stray brace", "a}b", []Token{mkItem(Text, "a"), mkItem(ErrorChar, "}")}},
	{"stray backslash", "a\\1", []Token{mkItem(Text, "a"), mkItem(ErrorChar, `\`)}},
}

func mustTokenize(t *testing.T, filename, input string) *Tokenizer {
	t.Helper()
	tz, err := TokenizeString(filename, input)
	if err != nil {
		t.Fatalf("TokenizeString: %v", err)
	}
	return tz
}

func collect(t *testing.T, input string) []Token {
	t.Helper()
	tz := mustTokenize(t, "", input)
	var items []Token
	for {
		tok, err := tz.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		items = append(items, tok)
		if tok.Kind == EOF || tok.Kind == ErrorChar {
			return items
		}
	}
}

func equal(got, want []Token) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		g, w := got[i], want[i]
		if g.Kind != w.Kind || g.Text != w.Text || g.Arg != w.Arg || g.HasArg != w.HasArg {
			return false
		}
	}
	return true
}

func TestLex(t *testing.T) {
	for _, test := range lexTests {
		t.Run(test.name, func(t *testing.T) {
			items := collect(t, test.input)
			if !equal(items, test.items) {
				t.Errorf("%s: got\n\t%+v\nexpected\n\t%+v", test.name, items, test.items)
			}
		})
	}
}

func TestLexPositions(t *testing.T) {
	tz := mustTokenize(t, "doc.txt", "ab\n  \\fill")
	var last Token
	for {
		tok, err := tz.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind == Command {
			last = tok
		}
		if tok.Kind == EOF {
			break
		}
	}
	if last.Pos.Line != 2 || last.Pos.Column != 3 {
		t.Fatalf("expected command at 2:3, got %d:%d", last.Pos.Line, last.Pos.Column)
	}
	if got := last.Pos.String(); got != "doc.txt:2:3" {
		t.Fatalf("unexpected position string %q", got)
	}
}

func TestLexUnterminatedArgument(t *testing.T) {
	for _, input := range []string{`\indent{3`, `\endnote{a {b}`, "x\n\\textwidth{"} {
		tz := mustTokenize(t, "", input)
		var err error
		for err == nil {
			var tok Token
			tok, err = tz.Next()
			if tok.Kind == EOF && err == nil {
				t.Fatalf("%q: expected an error before EOF", input)
			}
		}
		if !errors.Is(err, ErrUnterminatedArgument) {
			t.Fatalf("%q: expected ErrUnterminatedArgument, got %v", input, err)
		}
	}
}

func TestLexEOFRepeats(t *testing.T) {
	tz := mustTokenize(t, "", "x")
	for i := 0; i < 3; i++ {
		if _, err := tz.Next(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	tok, err := tz.Next()
	if err != nil || tok.Kind != EOF {
		t.Fatalf("expected repeated EOF, got %v %v", tok.Kind, err)
	}
}
