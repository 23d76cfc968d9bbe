package templating

import "errors"

var (
	ErrNotFound              = errors.New("templating: template not found")
	ErrInactive              = errors.New("templating: template is inactive")
	ErrInvalidTemplate       = errors.New("templating: invalid template")
	ErrUndeclaredPlaceholder = errors.New("templating: undeclared placeholder")
)
