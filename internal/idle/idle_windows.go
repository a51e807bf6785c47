//go:build windows

// This file backs Sensor on Windows: GetLastInputInfo is the OS's own
// system-wide idle clock, tracking input across every process and window,
// the same primitive Windows' own screensaver and lock-screen timers use.
package idle

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modUser32   = windows.NewLazySystemDLL("user32.dll")
	modKernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetLastInputInfo = modUser32.NewProc("GetLastInputInfo")
	procGetCursorPos     = modUser32.NewProc("GetCursorPos")
	procGetTickCount     = modKernel32.NewProc("GetTickCount")
)

type lastInputInfo struct {
	Size uint32
	Time uint32
}

type winPoint struct{ X, Y int32 }

// systemIdleDuration compares GetLastInputInfo's timestamp against the
// current tick count. Both are 32-bit millisecond clocks that wrap every
// ~49.7 days; the subtraction wraps the same way and stays correct across
// the rollover.
func systemIdleDuration() (time.Duration, error) {
	info := lastInputInfo{Size: uint32(unsafe.Sizeof(lastInputInfo{}))}
	ok, _, _ := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if ok == 0 {
		return 0, fmt.Errorf("idle: GetLastInputInfo failed")
	}
	now, _, _ := procGetTickCount.Call()
	elapsed := uint32(now) - info.Time
	return time.Duration(elapsed) * time.Millisecond, nil
}

func systemCursorPosition() (int, int, error) {
	var pt winPoint
	ok, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ok == 0 {
		return 0, 0, fmt.Errorf("idle: GetCursorPos failed")
	}
	return int(pt.X), int(pt.Y), nil
}
