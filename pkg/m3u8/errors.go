package m3u8

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to test an error returned by this package
// against one of these.
var (
	ErrInvalidURL       = errors.New("invalid URL")
	ErrInvalidReference = errors.New("invalid reference")
	ErrNetwork          = errors.New("network error")
	ErrIO               = errors.New("io error")
	ErrPlaylistParse    = errors.New("playlist parse error")
	ErrDownload         = errors.New("download error")
)

// Error describes a failed operation on a single target (a URL or a path).
type Error struct {
	Kind   error
	Op     string
	Target string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Target != "" {
		msg += " " + e.Target
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op, target string, err error) *Error {
	return &Error{Kind: kind, Op: op, Target: target, Err: err}
}

func errorf(kind error, op, target, format string, a ...interface{}) *Error {
	return newError(kind, op, target, fmt.Errorf(format, a...))
}

// errorKind names the kind of err for metrics labels.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, ErrInvalidReference):
		return "invalid_reference"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrPlaylistParse):
		return "playlist_parse"
	case errors.Is(err, ErrDownload):
		return "download"
	default:
		return "other"
	}
}
