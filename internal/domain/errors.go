package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDuplicateUser      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidRecovery    = errors.New("invalid username or recovery answer")
	ErrTooManyAttempts    = errors.New("too many attempts")
	ErrCatalogUnavailable = errors.New("reference catalog unavailable")
	ErrImportRow          = errors.New("import row failed")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
)
