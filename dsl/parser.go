package dsl

import (
	"fmt"
	"io"
	"log"
	"strconv"
)

// Handler receives the events produced while parsing a document. The
// formatting controller implements it; setters validate their own values.
type Handler interface {
	AddText(text string)
	EndWord()
	AddNewLine()
	EndParagraph()
	SetIndentation(val int)
	SetParIndentation(val int)
	SetTextWidth(val int)
	SetTextHeight(val int)
	SetParSkip(val int)
	SetFill(on bool)
	SetJustify(on bool)
	// FormatEndnote formats text as an endnote body. A returned error is fatal.
	FormatEndnote(text string) error
	// Close flushes everything pending once the input is exhausted.
	Close() error
}

// ParseOptions configures a parse run.
type ParseOptions struct {
	// Filename is used in error positions.
	Filename string
	// Logger receives recoverable diagnostics; nil means log.Default().
	Logger *log.Logger
}

// Parse tokenizes r and sends every event to h, finishing with h.Close.
func Parse(r io.Reader, h Handler, opts ParseOptions) error {
	tz, err := NewTokenizer(opts.Filename, r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return drive(tz, h, opts)
}

// ParseString is Parse over an in-memory document.
func ParseString(input string, h Handler, opts ParseOptions) error {
	tz, err := TokenizeString(opts.Filename, input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return drive(tz, h, opts)
}

func drive(tz *Tokenizer, h Handler, opts ParseOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	for {
		tok, err := tz.Next()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case EOF:
			return h.Close()
		case Blank:
			h.EndWord()
		case LineBreak:
			h.AddNewLine()
		case ParagraphBreak:
			h.AddNewLine()
			h.EndParagraph()
		case EscapedChar, Text:
			h.AddText(tok.Text)
		case Command:
			if err := dispatch(tok, h, logger); err != nil {
				return err
			}
		default:
			return &Error{Pos: tok.Pos, Err: ErrUnexpectedChar, Detail: fmt.Sprintf("%q", tok.Text)}
		}
	}
}

// dispatch runs one command. Unknown commands are fatal; bad numeric
// arguments are logged and the command is skipped.
func dispatch(tok Token, h Handler, logger *log.Logger) error {
	switch tok.Text {
	case "indent":
		withNumber(tok, logger, h.SetIndentation)
	case "parindent":
		withNumber(tok, logger, h.SetParIndentation)
	case "textwidth":
		withNumber(tok, logger, h.SetTextWidth)
	case "textheight":
		withNumber(tok, logger, h.SetTextHeight)
	case "parskip":
		withNumber(tok, logger, h.SetParSkip)
	case "fill":
		h.SetFill(true)
	case "nofill":
		h.SetFill(false)
		h.SetJustify(false)
	case "justify":
		h.SetJustify(true)
	case "nojustify":
		h.SetJustify(false)
	case "endnote":
		if !tok.HasArg {
			logger.Print(&Error{Pos: tok.Pos, Err: ErrMissingArgument, Detail: `\endnote`})
			return nil
		}
		return h.FormatEndnote(tok.Arg)
	default:
		return &Error{Pos: tok.Pos, Err: ErrUnknownCommand, Detail: `\` + tok.Text}
	}
	return nil
}

func withNumber(tok Token, logger *log.Logger, set func(int)) {
	if !tok.HasArg {
		logger.Print(&Error{Pos: tok.Pos, Err: ErrMissingArgument, Detail: `\` + tok.Text})
		return
	}
	n, err := strconv.Atoi(tok.Arg)
	if err != nil {
		logger.Print(&Error{Pos: tok.Pos, Err: ErrBadNumber, Detail: fmt.Sprintf(`\%s{%s}`, tok.Text, tok.Arg)})
		return
	}
	set(n)
}
