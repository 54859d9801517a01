// filepath: internal/shared/errors.go
package shared

// Error is a constant error type so sentinels can be declared as consts.
type Error string

func (e Error) Error() string { return string(e) }

// repository errors
const (
	ErrNotFound           = Error("not found")
	ErrInvalidName        = Error("invalid name")
	ErrPredefinedCategory = Error("predefined categories cannot be modified")
	ErrInvalidFilter      = Error("invalid filter")
)

// cli errors
const (
	ErrorCreateFile = Error("could not create the file")
	ErrorEncodeFile = Error("could not encode to file")
)
