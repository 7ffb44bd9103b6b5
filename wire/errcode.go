// Package wire implements the core binary utilities shared by the
// command codec, snapshot codec and history codec: fixed-endian
// readers/writers, checksums, entity id allocation and the engine's
// closed error code set.
package wire

// ErrCode is the closed set of error codes the engine surfaces to
// the host, mirrored as both a return value and (where applicable)
// an error wrapping it.
type ErrCode int

const (
	Ok ErrCode = iota
	InvalidMagic
	UnsupportedVersion
	BufferTruncated
	InvalidPayloadSize
	UnknownCommand
	InvalidOperation
)

// String implements fmt.Stringer.
func (c ErrCode) String() string {
	switch c {
	case Ok:
		return "Ok"
	case InvalidMagic:
		return "InvalidMagic"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case BufferTruncated:
		return "BufferTruncated"
	case InvalidPayloadSize:
		return "InvalidPayloadSize"
	case UnknownCommand:
		return "UnknownCommand"
	case InvalidOperation:
		return "InvalidOperation"
	default:
		return "ErrCode(?)"
	}
}

// Error is an error value carrying an ErrCode plus context.
type Error struct {
	Code   ErrCode
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.Reason
}

// Code returns the ErrCode carried by err, Ok if err is nil, or
// InvalidOperation if err is not an *Error.
func Code(err error) ErrCode {
	if err == nil {
		return Ok
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return InvalidOperation
}

// NewError constructs an *Error with the given code and reason.
func NewError(code ErrCode, reason string) error {
	return &Error{Code: code, Reason: reason}
}
