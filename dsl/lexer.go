package dsl

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Rules are tried in order; the first one that matches wins. A command
// immediately followed by '{' pushes the Argument state, where braces nest
// until the matching '}' pops back to Root.
var textLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Blank", Pattern: `[ \t]+`},
		{Name: "ParBreak", Pattern: `\r?\n(?:\r?\n)+`},
		{Name: "LineBreak", Pattern: `\r?\n`},
		{Name: "Escaped", Pattern: `\\[ \t{}\\]`},
		{Name: "CommandArg", Pattern: `\\[A-Za-z]+\{`, Action: lexer.Push("Argument")},
		{Name: "Command", Pattern: `\\[A-Za-z]+`},
		{Name: "Text", Pattern: `[^ \t\r\n\\{}]+`},
		{Name: "Stray", Pattern: `(?s:.)`},
	},
	"Argument": {
		{Name: "ArgEscaped", Pattern: `\\(?s:.)`},
		{Name: "ArgText", Pattern: `[^\\{}]+`},
		{Name: "ArgOpen", Pattern: `\{`, Action: lexer.Push("Argument")},
		{Name: "ArgClose", Pattern: `\}`, Action: lexer.Pop()},
	},
})

var (
	blankType      = mustTokenType("Blank")
	parBreakType   = mustTokenType("ParBreak")
	lineBreakType  = mustTokenType("LineBreak")
	escapedType    = mustTokenType("Escaped")
	commandArgType = mustTokenType("CommandArg")
	commandType    = mustTokenType("Command")
	textType       = mustTokenType("Text")
	strayType      = mustTokenType("Stray")
	argOpenType    = mustTokenType("ArgOpen")
	argCloseType   = mustTokenType("ArgClose")
)

// Kind classifies a token.
type Kind int

const (
	EOF Kind = iota
	Blank
	LineBreak
	ParagraphBreak // two or more line breaks; implies a LineBreak
	EscapedChar
	Command
	Text
	ErrorChar // a character that cannot start any other token
)

var kindNames = [...]string{
	EOF:            "EOF",
	Blank:          "Blank",
	LineBreak:      "LineBreak",
	ParagraphBreak: "ParagraphBreak",
	EscapedChar:    "EscapedChar",
	Command:        "Command",
	Text:           "Text",
	ErrorChar:      "ErrorChar",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one classified piece of input.
//
// Text holds the run for Text, the character after the backslash for
// EscapedChar, the command name for Command and the offending character for
// ErrorChar. Arg holds the raw text between the braces when HasArg is set.
type Token struct {
	Kind   Kind
	Text   string
	Arg    string
	HasArg bool
	Pos    lexer.Position
}

// Tokenizer produces tokens lazily from raw input.
type Tokenizer struct {
	lex lexer.Lexer
}

// NewTokenizer reads all of r and prepares to tokenize it.
func NewTokenizer(filename string, r io.Reader) (*Tokenizer, error) {
	lex, err := textLexer.Lex(filename, r)
	if err != nil {
		return nil, err
	}
	return &Tokenizer{lex: lex}, nil
}

// TokenizeString prepares to tokenize input.
func TokenizeString(filename, input string) (*Tokenizer, error) {
	lex, err := textLexer.LexString(filename, input)
	if err != nil {
		return nil, err
	}
	return &Tokenizer{lex: lex}, nil
}

// Next returns the next token. After the input is exhausted it keeps
// returning an EOF token. The only error it reports is an unterminated
// brace argument.
func (t *Tokenizer) Next() (Token, error) {
	tok, err := t.lex.Next()
	if err != nil {
		return Token{}, lexError(err)
	}
	if tok.EOF() {
		return Token{Kind: EOF, Pos: tok.Pos}, nil
	}

	out := Token{Pos: tok.Pos}
	switch tok.Type {
	case blankType:
		out.Kind = Blank
	case parBreakType:
		out.Kind = ParagraphBreak
	case lineBreakType:
		out.Kind = LineBreak
	case escapedType:
		out.Kind = EscapedChar
		out.Text = tok.Value[1:]
	case commandType:
		out.Kind = Command
		out.Text = tok.Value[1:]
	case commandArgType:
		out.Kind = Command
		out.Text = tok.Value[1 : len(tok.Value)-1]
		out.HasArg = true
		arg, err := t.argument(tok.Pos, out.Text)
		if err != nil {
			return Token{}, err
		}
		out.Arg = arg
	case textType:
		out.Kind = Text
		out.Text = tok.Value
	case strayType:
		out.Kind = ErrorChar
		out.Text = tok.Value
	default:
		return Token{}, &Error{Pos: tok.Pos, Err: ErrUnexpectedChar, Detail: fmt.Sprintf("%q", tok.Value)}
	}
	return out, nil
}

// argument collects the balanced text after a command's opening brace, up to
// but not including the matching closing brace. Escapes are kept verbatim.
func (t *Tokenizer) argument(start lexer.Position, command string) (string, error) {
	var sb strings.Builder
	depth := 1
	for {
		tok, err := t.lex.Next()
		if err != nil || tok.EOF() {
			return "", &Error{Pos: start, Err: ErrUnterminatedArgument, Detail: `\` + command}
		}
		switch tok.Type {
		case argOpenType:
			depth++
		case argCloseType:
			depth--
			if depth == 0 {
				return sb.String(), nil
			}
		}
		sb.WriteString(tok.Value)
	}
}

func lexError(err error) error {
	if lerr, ok := err.(*lexer.Error); ok {
		return &Error{Pos: lerr.Pos, Err: ErrUnterminatedArgument, Detail: lerr.Msg}
	}
	return err
}

func mustTokenType(name string) lexer.TokenType {
	symbols := textLexer.Symbols()
	tt, ok := symbols[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
