// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cairo && linux && cairowayland

package cairo

/*
#cgo pkg-config: cairo-gl egl wayland-egl
#define WL_EGL_PLATFORM 1
#include <wayland-egl.h>
#include <EGL/egl.h>
#include <cairo-gl.h>

static EGLBoolean rx_choose_config(EGLDisplay dpy, EGLConfig *config) {
	static const EGLint attribs[] = {
		EGL_SURFACE_TYPE, EGL_WINDOW_BIT,
		EGL_RED_SIZE, 1,
		EGL_GREEN_SIZE, 1,
		EGL_BLUE_SIZE, 1,
		EGL_ALPHA_SIZE, 1,
		EGL_DEPTH_SIZE, 1,
		EGL_RENDERABLE_TYPE, EGL_OPENGL_BIT,
		EGL_NONE
	};
	EGLint n = 0;
	if (!eglChooseConfig(dpy, attribs, config, 1, &n)) {
		return EGL_FALSE;
	}
	return n == 1;
}
*/
import "C"

import (
	"unsafe"

	"github.com/gogpu/rx"
)

// waylandArm holds the EGL objects behind a cairo-gl window surface.
type waylandArm struct {
	display C.EGLDisplay
	context C.EGLContext
	eglSurf C.EGLSurface
	window  *C.struct_wl_egl_window
	device  *C.cairo_device_t
	surf    *C.cairo_surface_t
}

func eglError(op string) error {
	return rx.NativeError(Name, op, int64(C.eglGetError()), nil)
}

// newWaylandArm initializes EGL on the window's display and wraps the
// window surface in a cairo-gl surface. Each failing step is reported by
// name and everything created before it is released.
func newWaylandArm(h rx.Handle, width, height int) (_ *waylandArm, err error) {
	a := &waylandArm{}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	a.display = C.eglGetDisplay((C.EGLNativeDisplayType)(unsafe.Pointer(h.WaylandDisplay)))
	if a.display == nil {
		return nil, eglError("eglGetDisplay")
	}
	var major, minor C.EGLint
	if C.eglInitialize(a.display, &major, &minor) == C.EGL_FALSE {
		a.display = nil
		return nil, eglError("eglInitialize")
	}
	rx.Logger().Debug("cairo: EGL initialized", "major", int(major), "minor", int(minor))

	if C.eglBindAPI(C.EGL_OPENGL_API) == C.EGL_FALSE {
		return nil, eglError("eglBindAPI")
	}
	var config C.EGLConfig
	if C.rx_choose_config(a.display, &config) == C.EGL_FALSE {
		return nil, eglError("eglChooseConfig")
	}
	a.context = C.eglCreateContext(a.display, config, nil, nil)
	if a.context == nil {
		return nil, eglError("eglCreateContext")
	}

	a.device = C.cairo_egl_device_create(a.display, a.context)
	if st := C.cairo_device_status(a.device); st != C.CAIRO_STATUS_SUCCESS {
		return nil, statusError("cairo_egl_device_create", st)
	}

	a.window = C.wl_egl_window_create((*C.struct_wl_surface)(unsafe.Pointer(h.WaylandSurface)),
		C.int(width), C.int(height))
	if a.window == nil {
		return nil, rx.NativeError(Name, "wl_egl_window_create", 0, nil)
	}
	a.eglSurf = C.eglCreateWindowSurface(a.display, config, C.EGLNativeWindowType(a.window), nil)
	if a.eglSurf == nil {
		return nil, eglError("eglCreateWindowSurface")
	}

	a.surf = C.cairo_gl_surface_create_for_egl(a.device, a.eglSurf, C.int(width), C.int(height))
	if err := surfaceStatus("cairo_gl_surface_create_for_egl", a.surf); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *waylandArm) resize(width, height int) {
	C.wl_egl_window_resize(a.window, C.int(width), C.int(height), 0, 0)
	C.cairo_gl_surface_set_size(a.surf, C.int(width), C.int(height))
}

func (a *waylandArm) present() error {
	C.cairo_gl_surface_swapbuffers(a.surf)
	return surfaceStatus("cairo_gl_surface_swapbuffers", a.surf)
}

// close releases the objects in reverse order of creation. It tolerates a
// partially initialized arm.
func (a *waylandArm) close() {
	if a.surf != nil {
		C.cairo_surface_destroy(a.surf)
		a.surf = nil
	}
	if a.eglSurf != nil {
		C.eglDestroySurface(a.display, a.eglSurf)
		a.eglSurf = nil
	}
	if a.window != nil {
		C.wl_egl_window_destroy(a.window)
		a.window = nil
	}
	if a.device != nil {
		C.cairo_device_destroy(a.device)
		a.device = nil
	}
	if a.context != nil {
		C.eglDestroyContext(a.display, a.context)
		a.context = nil
	}
	if a.display != nil {
		C.eglTerminate(a.display)
		a.display = nil
	}
}
