package field

import "errors"

var (
	ErrUnknownComponent = errors.New("field: unknown component")
	ErrMergeComponent   = errors.New("field: failed to merge component")
	ErrInvalidYAML      = errors.New("field: invalid yaml definition")
)
