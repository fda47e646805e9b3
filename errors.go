package rx

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNoBackend is returned when no backend is registered or available,
	// or when every available backend failed to bind to the window.
	ErrNoBackend = errors.New("rx: no backend available")

	// ErrUnsupportedWindow is returned when a backend cannot bind a surface
	// to the kind of window handle it was given.
	ErrUnsupportedWindow = errors.New("rx: unsupported window handle")

	// ErrForeignObject is returned when a Font or TextLayout created by one
	// backend is passed to a context of another backend.
	ErrForeignObject = errors.New("rx: object belongs to another backend")

	// ErrSurfaceLost is returned by every call on a context whose surface
	// could not be recreated during Resize. The context cannot continue.
	ErrSurfaceLost = errors.New("rx: surface lost")

	// ErrResizeInFrame is returned when Resize is called between StartPaint
	// and EndPaint.
	ErrResizeInFrame = errors.New("rx: resize during paint")

	// ErrClosed is returned by calls on a closed context.
	ErrClosed = errors.New("rx: context closed")
)

// Error reports a failed native graphics call.
// Code carries the native status (HRESULT, cairo_status_t, X11 error code)
// for diagnostics; it is zero when the platform does not report one.
type Error struct {
	// Op is the operation that failed, e.g. "CreateHwndRenderTarget".
	Op string

	// Backend is the registry name of the engine.
	Backend string

	// Code is the native status code.
	Code int64

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "rx: " + e.Backend + ": " + e.Op + " failed"
	if e.Code != 0 {
		msg += fmt.Sprintf(" (status 0x%x)", uint64(e.Code))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NativeError creates an *Error for a failed native call.
func NativeError(backend, op string, code int64, cause error) error {
	return &Error{Op: op, Backend: backend, Code: code, Err: cause}
}

// StatusCode extracts the native status code from err, if err wraps an *Error.
func StatusCode(err error) (int64, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "rx: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available on
// this system.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "rx: backend unavailable: " + e.Name
}
