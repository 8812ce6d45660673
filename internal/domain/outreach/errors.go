package outreach

import "errors"

var (
	ErrFileNotFound       = errors.New("file not found")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrParse              = errors.New("cannot parse spreadsheet")
	ErrMissingEmailColumn = errors.New("'Email' column not found")

	ErrGeneration           = errors.New("email generation failed")
	ErrTemplateSubstitution = errors.New("template substitution failed")

	ErrSend         = errors.New("send failed")
	ErrConnectivity = errors.New("smtp connectivity check failed")
)
