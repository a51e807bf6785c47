//go:build windows

// This file backs Synthesizer on Windows: SetCursorPos and the legacy
// mouse_event/keybd_event pair dispatch straight into the same input queue
// a physical mouse or keyboard driver feeds, ahead of any window's own
// message loop.
package input

import (
	"fmt"
	"unicode/utf16"

	"golang.org/x/sys/windows"
)

var (
	modUser32 = windows.NewLazySystemDLL("user32.dll")

	procSetCursorPos = modUser32.NewProc("SetCursorPos")
	procMouseEvent   = modUser32.NewProc("mouse_event")
	procKeybdEvent   = modUser32.NewProc("keybd_event")
	procVkKeyScanW   = modUser32.NewProc("VkKeyScanW")
)

const (
	mouseEventFLeftDown  = 0x0002
	mouseEventFLeftUp    = 0x0004
	mouseEventFRightDown = 0x0008
	mouseEventFRightUp   = 0x0010
	mouseEventFWheel     = 0x0800

	keyEventFKeyUp = 0x0002
)

func moveTo(x, y int) error {
	ok, _, _ := procSetCursorPos.Call(uintptr(int32(x)), uintptr(int32(y)))
	if ok == 0 {
		return fmt.Errorf("input: SetCursorPos failed")
	}
	return nil
}

func mouseDown(b mouseButton) error {
	flag := uintptr(mouseEventFLeftDown)
	if b == buttonRight {
		flag = mouseEventFRightDown
	}
	procMouseEvent.Call(flag, 0, 0, 0, 0)
	return nil
}

func mouseUp(b mouseButton) error {
	flag := uintptr(mouseEventFLeftUp)
	if b == buttonRight {
		flag = mouseEventFRightUp
	}
	procMouseEvent.Call(flag, 0, 0, 0, 0)
	return nil
}

func scrollWheel(delta int) error {
	procMouseEvent.Call(uintptr(mouseEventFWheel), 0, 0, uintptr(uint32(int32(delta))), 0)
	return nil
}

func keyDown(k vkey) error {
	procKeybdEvent.Call(uintptr(k), 0, 0, 0)
	return nil
}

func keyUp(k vkey) error {
	procKeybdEvent.Call(uintptr(k), 0, uintptr(keyEventFKeyUp), 0)
	return nil
}

// typeRune presses and releases the key combination VkKeyScanW reports for
// r, holding shift when the layout needs it to produce that character.
// Runes VkKeyScanW cannot map are silently skipped, matching every other
// Synthesizer method's swallow-per-call-failure contract.
func typeRune(r rune) error {
	units := utf16.Encode([]rune{r})
	if len(units) == 0 {
		return nil
	}
	ret, _, _ := procVkKeyScanW.Call(uintptr(units[0]))
	scan := int16(ret)
	if scan == -1 {
		return nil
	}
	vk := vkey(byte(scan))
	needsShift := byte(scan>>8)&0x01 != 0

	if needsShift {
		_ = keyDown(vkShift)
	}
	_ = keyDown(vk)
	_ = keyUp(vk)
	if needsShift {
		_ = keyUp(vkShift)
	}
	return nil
}
