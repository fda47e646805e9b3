// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows && amd64

package d2d

import (
	"math"
	"syscall"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/gogpu/rx"
)

// comObject is the memory layout shared by every COM interface: a pointer
// to the vtable.
type comObject struct {
	vtbl *[128]uintptr
}

// IUnknown slots.
const (
	slotAddRef  = 1
	slotRelease = 2
)

// call invokes the method in slot. Pointer arguments must be converted with
// uintptr(unsafe.Pointer(p)) in the argument list itself so that they stay
// alive for the call.
//
//go:uintptrescapes
func (o *comObject) call(slot int, args ...uintptr) uintptr {
	all := make([]uintptr, 0, len(args)+1)
	all = append(all, uintptr(unsafe.Pointer(o)))
	all = append(all, args...)
	r, _, _ := syscall.SyscallN(o.vtbl[slot], all...)
	return r
}

func (o *comObject) addRef() {
	o.call(slotAddRef)
}

func (o *comObject) release() {
	if o != nil {
		o.call(slotRelease)
	}
}

// failed reports whether an HRESULT signals failure.
func failed(hr uintptr) bool {
	return int32(uint32(hr)) < 0
}

func hresultError(op string, hr uintptr) error {
	return rx.NativeError(Name, op, int64(uint32(hr)), windows.Errno(uint32(hr)))
}

func check(op string, hr uintptr) error {
	if failed(hr) {
		return hresultError(op, hr)
	}
	return nil
}

// f32 passes a float argument. The amd64 stdcall trampoline mirrors the
// first four arguments into XMM0-XMM3, and later ones go to the stack.
func f32(v float64) uintptr {
	return uintptr(math.Float32bits(float32(v)))
}

// pair packs two 32-bit fields of an 8-byte struct passed by value.
func pair(lo, hi uint32) uintptr {
	return uintptr(lo) | uintptr(hi)<<32
}

func point2F(p rx.Point) uintptr {
	return pair(math.Float32bits(float32(p.X)), math.Float32bits(float32(p.Y)))
}

func boolArg(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}

// wide converts s to UTF-16 without a terminator. DirectWrite takes
// explicit lengths, so embedded NULs are kept.
func wide(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// first returns a pointer to the first element, or nil for an empty slice.
func first(u []uint16) *uint16 {
	if len(u) == 0 {
		return nil
	}
	return &u[0]
}

// utf16z converts s to a NUL-terminated UTF-16 string.
func utf16z(s string) ([]uint16, error) {
	u, err := windows.UTF16FromString(s)
	if err != nil {
		return nil, rx.NativeError(Name, "UTF16FromString", 0, err)
	}
	return u, nil
}
