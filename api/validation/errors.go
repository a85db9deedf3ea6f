package validation

import "errors"

var (
	ErrNotAnImage      = errors.New("please upload an image file")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file size exceeds upload limit")
	ErrEmptyFile       = errors.New("file is empty")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrInvalidValue    = errors.New("invalid value")
	ErrInvalidDate     = errors.New("invalid date")
)
