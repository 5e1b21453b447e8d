package model

import "errors"

// Error kinds shared by the workflow packages. Concrete errors wrap one of
// these so callers can classify them with errors.Is.
var (
	ErrConfig     = errors.New("config error")
	ErrValidation = errors.New("validation error")
	ErrRender     = errors.New("render error")
	ErrIO         = errors.New("io error")
	ErrConversion = errors.New("conversion error")
)
