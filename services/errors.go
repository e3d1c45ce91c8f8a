package services

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidFilterConfig  = errors.New("invalid filter configuration")
	ErrUnsupportedFilter    = errors.New("filter not supported for this resource")
	ErrUnsupportedBreakdown = errors.New("unsupported breakdown")
	ErrInvalidDate          = errors.New("invalid date")
)
