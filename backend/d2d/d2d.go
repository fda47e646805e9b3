// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows && amd64

package d2d

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/gogpu/rx"
)

const (
	// Name is the registry name of the engine.
	Name = "d2d"

	// Priority ranks the engine above every portable one.
	Priority = 100
)

var (
	d2d1   = windows.NewLazySystemDLL("d2d1.dll")
	dwrite = windows.NewLazySystemDLL("dwrite.dll")

	procD2D1CreateFactory   = d2d1.NewProc("D2D1CreateFactory")
	procDWriteCreateFactory = dwrite.NewProc("DWriteCreateFactory")
)

var (
	iidD2D1Factory = windows.GUID{
		Data1: 0x06152247, Data2: 0x6f50, Data3: 0x465a,
		Data4: [8]byte{0x92, 0x45, 0x11, 0x8b, 0xfd, 0x3b, 0x60, 0x07},
	}
	iidDWriteFactory = windows.GUID{
		Data1: 0xb859ee5a, Data2: 0xd838, Data3: 0x4b5b,
		Data4: [8]byte{0xa2, 0xe8, 0x1a, 0xdc, 0x7d, 0x93, 0xdb, 0x48},
	}
)

// Native enumerations.
const (
	d2d1FactoryTypeSingleThreaded = 0
	dwriteFactoryTypeShared       = 0

	dxgiFormatB8G8R8A8Unorm    = 87
	d2d1AlphaModePremultiplied = 1

	d2d1DrawTextOptionsEnableColorFont = 4
	dwriteMeasuringModeNatural         = 0

	dwriteFontWeightLight   = 300
	dwriteFontWeightRegular = 400
	dwriteFontWeightBold    = 700

	dwriteFontStyleNormal = 0
	dwriteFontStyleItalic = 2

	dwriteFontStretchNormal = 5

	dwriteWordWrappingWrap = 0

	// d2dErrRecreateTarget is D2DERR_RECREATE_TARGET.
	d2dErrRecreateTarget = 0x8899000C
)

type colorF struct {
	R, G, B, A float32
}

func toColorF(c rx.Color) colorF {
	return colorF{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: float32(c.A)}
}

type rectF struct {
	Left, Top, Right, Bottom float32
}

func toRectF(r rx.Rect) rectF {
	return rectF{
		Left:   float32(r.X),
		Top:    float32(r.Y),
		Right:  float32(r.X + r.W),
		Bottom: float32(r.Y + r.H),
	}
}

type sizeU struct {
	Width, Height uint32
}

type matrix3x2F struct {
	M11, M12, M21, M22, DX, DY float32
}

type pixelFormat struct {
	Format    uint32
	AlphaMode uint32
}

type renderTargetProperties struct {
	Type        uint32
	PixelFormat pixelFormat
	DpiX, DpiY  float32
	Usage       uint32
	MinLevel    uint32
}

type hwndRenderTargetProperties struct {
	Hwnd           windows.HWND
	PixelSize      sizeU
	PresentOptions uint32
}

type textMetrics struct {
	Left, Top                        float32
	Width, WidthIncludingTrailingWSP float32
	Height                           float32
	LayoutWidth, LayoutHeight        float32
	MaxBidiReorderingDepth           uint32
	LineCount                        uint32
}

type hitTestMetrics struct {
	TextPosition uint32
	Length       uint32
	Left, Top    float32
	Width        float32
	Height       float32
	BidiLevel    uint32
	IsText       int32
	IsTrimmed    int32
}

// factories holds the process-wide Direct2D and DirectWrite factories. They
// are created on first use and never released.
type factories struct {
	d2d    *d2dFactory
	dwrite *dwriteFactory
}

var shared = sync.OnceValues(func() (*factories, error) {
	if err := d2d1.Load(); err != nil {
		return nil, rx.NativeError(Name, "load d2d1.dll", 0, err)
	}
	if err := dwrite.Load(); err != nil {
		return nil, rx.NativeError(Name, "load dwrite.dll", 0, err)
	}

	var d *d2dFactory
	hr, _, _ := procD2D1CreateFactory.Call(
		d2d1FactoryTypeSingleThreaded,
		uintptr(unsafe.Pointer(&iidD2D1Factory)),
		0,
		uintptr(unsafe.Pointer(&d)),
	)
	if failed(hr) {
		return nil, hresultError("D2D1CreateFactory", hr)
	}

	var w *dwriteFactory
	hr, _, _ = procDWriteCreateFactory.Call(
		dwriteFactoryTypeShared,
		uintptr(unsafe.Pointer(&iidDWriteFactory)),
		uintptr(unsafe.Pointer(&w)),
	)
	if failed(hr) {
		d.release()
		return nil, hresultError("DWriteCreateFactory", hr)
	}
	rx.Logger().Debug("d2d: factories created")
	return &factories{d2d: d, dwrite: w}, nil
})

// available reports whether Direct2D and DirectWrite can be loaded.
func available() bool {
	_, err := shared()
	return err == nil
}
