package release

import "errors"

// ErrEmptyTitle indicates the filename yielded no usable title.
var ErrEmptyTitle = errors.New("empty title")
