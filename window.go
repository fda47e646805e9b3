package rx

// HandleKind identifies which arm of a Handle is populated.
type HandleKind uint8

const (
	// HandleNone means there is no native window: the context renders
	// offscreen into an in-memory surface.
	HandleNone HandleKind = iota

	// HandleX11 is an Xlib/XCB window.
	HandleX11

	// HandleWayland is a wl_surface on a wl_display.
	HandleWayland

	// HandleWin32 is an HWND.
	HandleWin32

	// HandleCocoa is an NSWindow.
	HandleCocoa
)

// String returns the string representation of the handle kind.
func (k HandleKind) String() string {
	switch k {
	case HandleNone:
		return "none"
	case HandleX11:
		return "x11"
	case HandleWayland:
		return "wayland"
	case HandleWin32:
		return "win32"
	case HandleCocoa:
		return "cocoa"
	default:
		return "unknown"
	}
}

// Handle is a tagged union over the native window handles a backend may bind
// a surface to. Only the fields of the arm named by Kind are meaningful.
// Pointer-valued fields carry C pointers owned by the window collaborator.
type Handle struct {
	Kind HandleKind

	// X11: Display is an Xlib Display* (for Cairo), DisplayName the
	// connection string (for pure-Go clients, empty means $DISPLAY).
	X11Display     uintptr
	X11DisplayName string
	X11Window      uint32
	X11Screen      int

	// Wayland: wl_display* and wl_surface*.
	WaylandDisplay uintptr
	WaylandSurface uintptr

	// Win32: HWND.
	HWND uintptr

	// Cocoa: NSWindow*.
	NSWindow uintptr
}

// Window is the contract the window collaborator offers to a RenderContext.
// The handle must stay valid for the lifetime of the context.
type Window interface {
	// Size returns the client area in device pixels.
	Size() (width, height int)

	// ScaleFactor returns device pixels per point (DPI/96 on Windows, the
	// backing scale factor on macOS). Non-positive values are treated as 1.
	ScaleFactor() float64

	// Handle returns the native window handle.
	Handle() Handle
}

// Offscreen is a Window with no native handle. Contexts created for it render
// into an in-memory surface, which makes it the window of choice for tests
// and image export.
type Offscreen struct {
	Width, Height int
	Scale         float64
}

// Size implements Window.
func (o Offscreen) Size() (int, int) { return o.Width, o.Height }

// ScaleFactor implements Window.
func (o Offscreen) ScaleFactor() float64 { return o.Scale }

// Handle implements Window.
func (o Offscreen) Handle() Handle { return Handle{Kind: HandleNone} }
