//go:build linux

package automation

import "golang.design/x/hotkey"

func hotkeyModifiers(c Combo) []hotkey.Modifier {
	var mods []hotkey.Modifier
	if c.Ctrl {
		mods = append(mods, hotkey.ModCtrl)
	}
	if c.Shift {
		mods = append(mods, hotkey.ModShift)
	}
	if c.Alt {
		mods = append(mods, hotkey.Mod1)
	}
	if c.Super {
		mods = append(mods, hotkey.Mod4)
	}
	return mods
}
