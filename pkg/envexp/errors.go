package envexp

import (
	"errors"
	"fmt"
)

// ErrDepthExceeded 表示替换步数超过上限，通常由循环引用导致。
var ErrDepthExceeded = errors.New("envexp: resolution depth exceeded")

// DepthError 记录超过步数上限的配置项。
type DepthError struct {
	Key   string // 为空表示直接调用 [Interpolate]
	Steps int
}

func (e *DepthError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%v after %d steps", ErrDepthExceeded, e.Steps)
	}

	return fmt.Sprintf("%v: %s after %d steps", ErrDepthExceeded, e.Key, e.Steps)
}

func (e *DepthError) Unwrap() error {
	return ErrDepthExceeded
}
