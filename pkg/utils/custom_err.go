package utils

import "errors"

var (
	ErrKeyNotFound       = errors.New("key not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingDate       = errors.New("date is required")
	ErrDayNotFound       = errors.New("day not found")
	ErrImportMalformed   = errors.New("JSON parse failed, please check the content")
	ErrImportNotArray    = errors.New("invalid format, please paste a JSON array")
	ErrEmptyPrompt       = errors.New("prompt cannot be empty")
	ErrUpstreamFailure   = errors.New("upstream request failed")
	ErrStoreFailure      = errors.New("store error")
	ErrUnsupportedConfig = errors.New("unsupported configuration")
)
