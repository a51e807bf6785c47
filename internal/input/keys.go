package input

import "strings"

// mouseButton identifies which physical button an action targets.
type mouseButton int

const (
	buttonLeft mouseButton = iota
	buttonRight
)

// vkey mirrors a Windows virtual-key code. Alphanumeric codes equal their
// ASCII uppercase/digit value by design, which lookupVK relies on below.
type vkey uint16

const (
	vkControl = 0x11
	vkShift   = 0x10
	vkMenu    = 0x12
	vkLWin    = 0x5B
	vkReturn  = 0x0D
	vkTab     = 0x09
	vkEscape  = 0x1B
	vkBack    = 0x08
	vkDelete  = 0x2E
	vkInsert  = 0x2D
	vkHome    = 0x24
	vkEnd     = 0x23
	vkPrior   = 0x21
	vkNext    = 0x22
	vkUp      = 0x26
	vkDown    = 0x28
	vkLeft    = 0x25
	vkRight   = 0x27
	vkSpace   = 0x20
	vkF1      = 0x70
)

// lookupVK maps a PressKeys token to its virtual-key code, covering
// modifiers, enter/return, tab, esc/escape, backspace, delete/del,
// insert/ins, home, end, pageup/pagedown, arrow keys, space, f1-f12,
// a-z, 0-9.
func lookupVK(tok string) (vkey, bool) {
	switch tok {
	case "ctrl", "control":
		return vkControl, true
	case "shift":
		return vkShift, true
	case "alt":
		return vkMenu, true
	case "meta", "cmd", "command", "win", "windows":
		return vkLWin, true
	case "enter", "return":
		return vkReturn, true
	case "tab":
		return vkTab, true
	case "esc", "escape":
		return vkEscape, true
	case "backspace":
		return vkBack, true
	case "delete", "del":
		return vkDelete, true
	case "insert", "ins":
		return vkInsert, true
	case "home":
		return vkHome, true
	case "end":
		return vkEnd, true
	case "pageup":
		return vkPrior, true
	case "pagedown":
		return vkNext, true
	case "up", "arrowup":
		return vkUp, true
	case "down", "arrowdown":
		return vkDown, true
	case "left", "arrowleft":
		return vkLeft, true
	case "right", "arrowright":
		return vkRight, true
	case "space":
		return vkSpace, true
	}
	if len(tok) == 2 && tok[0] == 'f' {
		if k, ok := functionVK(tok); ok {
			return k, true
		}
	}
	if len(tok) == 1 {
		c := tok[0]
		if c >= 'a' && c <= 'z' {
			return vkey(strings.ToUpper(tok)[0]), true
		}
		if c >= '0' && c <= '9' {
			return vkey(c), true
		}
	}
	return functionVK(tok)
}

// functionVK handles f1-f12; a two-or-three-character token like "f10".
func functionVK(tok string) (vkey, bool) {
	if len(tok) < 2 || tok[0] != 'f' {
		return 0, false
	}
	var n int
	switch tok {
	case "f1":
		n = 1
	case "f2":
		n = 2
	case "f3":
		n = 3
	case "f4":
		n = 4
	case "f5":
		n = 5
	case "f6":
		n = 6
	case "f7":
		n = 7
	case "f8":
		n = 8
	case "f9":
		n = 9
	case "f10":
		n = 10
	case "f11":
		n = 11
	case "f12":
		n = 12
	default:
		return 0, false
	}
	return vkey(vkF1 + n - 1), true
}
