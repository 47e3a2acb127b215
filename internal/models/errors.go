package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrPermission ErrorType = iota
	ErrDetection
	ErrUnsupportedOs
	ErrDownload
	ErrUnsupportedPackageManager
	ErrFileOp
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrPermission:
		return "Permission"
	case ErrDetection:
		return "Detection"
	case ErrUnsupportedOs:
		return "UnsupportedOs"
	case ErrDownload:
		return "Download"
	case ErrUnsupportedPackageManager:
		return "UnsupportedPackageManager"
	case ErrFileOp:
		return "FileOp"
	default:
		return "Unknown"
	}
}

// SetupError represents a fatal error during repository setup
type SetupError struct {
	Type ErrorType
	Err  error
}

// Error implements the error interface
func (e *SetupError) Error() string {
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *SetupError) Unwrap() error {
	return e.Err
}
