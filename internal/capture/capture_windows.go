//go:build windows

// This file backs FrameSource on Windows: it captures the primary display
// through the same GDI BitBlt-into-a-memory-DC sequence any Win32
// screenshot tool uses, with no browser or other rendering surface in the
// path.
package capture

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modUser32 = windows.NewLazySystemDLL("user32.dll")
	modGdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procGetDC            = modUser32.NewProc("GetDC")
	procReleaseDC        = modUser32.NewProc("ReleaseDC")
	procGetSystemMetrics = modUser32.NewProc("GetSystemMetrics")
	procGetCursorPos     = modUser32.NewProc("GetCursorPos")

	procCreateCompatibleDC     = modGdi32.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = modGdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject           = modGdi32.NewProc("SelectObject")
	procBitBlt                 = modGdi32.NewProc("BitBlt")
	procGetDIBits              = modGdi32.NewProc("GetDIBits")
	procDeleteObject           = modGdi32.NewProc("DeleteObject")
	procDeleteDC               = modGdi32.NewProc("DeleteDC")
)

const (
	smCxScreen = 0
	smCyScreen = 1

	srcCopy = 0x00CC0020
	biRGB   = 0
)

type winPoint struct{ X, Y int32 }

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

func screenSize() (int, int) {
	w, _, _ := procGetSystemMetrics.Call(uintptr(smCxScreen))
	h, _, _ := procGetSystemMetrics.Call(uintptr(smCyScreen))
	return int(int32(w)), int(int32(h))
}

func checkDisplay() error {
	w, h := screenSize()
	if w == 0 || h == 0 {
		return fmt.Errorf("no primary display detected")
	}
	return nil
}

// captureDisplay grabs the full primary display into a top-down 32bpp DIB
// and converts it to an image.RGBA, along with the current OS cursor
// position.
func captureDisplay() (image.Image, int, int, error) {
	width, height := screenSize()
	if width == 0 || height == 0 {
		return nil, 0, 0, fmt.Errorf("capture: no primary display")
	}

	hdcScreen, _, _ := procGetDC.Call(0)
	if hdcScreen == 0 {
		return nil, 0, 0, fmt.Errorf("capture: GetDC failed")
	}
	defer procReleaseDC.Call(0, hdcScreen)

	hdcMem, _, _ := procCreateCompatibleDC.Call(hdcScreen)
	if hdcMem == 0 {
		return nil, 0, 0, fmt.Errorf("capture: CreateCompatibleDC failed")
	}
	defer procDeleteDC.Call(hdcMem)

	hBitmap, _, _ := procCreateCompatibleBitmap.Call(hdcScreen, uintptr(width), uintptr(height))
	if hBitmap == 0 {
		return nil, 0, 0, fmt.Errorf("capture: CreateCompatibleBitmap failed")
	}
	defer procDeleteObject.Call(hBitmap)

	prevObj, _, _ := procSelectObject.Call(hdcMem, hBitmap)
	defer procSelectObject.Call(hdcMem, prevObj)

	ok, _, _ := procBitBlt.Call(hdcMem, 0, 0, uintptr(width), uintptr(height), hdcScreen, 0, 0, uintptr(srcCopy))
	if ok == 0 {
		return nil, 0, 0, fmt.Errorf("capture: BitBlt failed")
	}

	hdr := bitmapInfoHeader{
		Size:        uint32(unsafe.Sizeof(bitmapInfoHeader{})),
		Width:       int32(width),
		Height:      -int32(height), // negative: top-down DIB, row 0 first
		Planes:      1,
		BitCount:    32,
		Compression: biRGB,
	}
	raw := make([]byte, width*height*4)
	ret, _, _ := procGetDIBits.Call(
		hdcMem, hBitmap, 0, uintptr(height),
		uintptr(unsafe.Pointer(&raw[0])),
		uintptr(unsafe.Pointer(&hdr)),
		0, // DIB_RGB_COLORS
	)
	if ret == 0 {
		return nil, 0, 0, fmt.Errorf("capture: GetDIBits failed")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		b, g, r := raw[i*4], raw[i*4+1], raw[i*4+2]
		img.Pix[i*4], img.Pix[i*4+1], img.Pix[i*4+2], img.Pix[i*4+3] = r, g, b, 255
	}

	cx, cy := cursorPosition()
	return img, cx, cy, nil
}

func cursorPosition() (int, int) {
	var pt winPoint
	ok, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ok == 0 {
		return 0, 0
	}
	return int(pt.X), int(pt.Y)
}
