package scene

import "errors"

var ErrInvalidConfig = errors.New("invalid scene config")
