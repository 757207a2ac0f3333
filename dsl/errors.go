package dsl

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Fatal parse errors. Parse stops at the first one.
var (
	ErrUnexpectedChar       = errors.New("unexpected character")
	ErrUnterminatedArgument = errors.New("unterminated command argument")
	ErrUnknownCommand       = errors.New("unknown command")
)

// Recoverable argument errors. Parse reports them and keeps going.
var (
	ErrBadNumber       = errors.New("argument is not an integer")
	ErrMissingArgument = errors.New("missing command argument")
)

// Error is a parse error anchored at a source position.
type Error struct {
	Pos    lexer.Position
	Err    error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Pos, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Pos, e.Err, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }
