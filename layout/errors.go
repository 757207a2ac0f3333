package layout

import (
	"errors"
	"fmt"
)

// 参数校验错误均可恢复：setter 返回错误并保持原值不变。
var (
	ErrInvalidTextWidth      = errors.New("text width must be positive")
	ErrInvalidTextHeight     = errors.New("text height must be positive")
	ErrInvalidIndentation    = errors.New("indentation must not be negative")
	ErrInvalidParIndentation = errors.New("paragraph indentation must not be negative")
	ErrInvalidParSkip        = errors.New("paragraph skip must not be negative")
)

func invalid(err error, val int) error {
	return fmt.Errorf("%w: %d", err, val)
}
