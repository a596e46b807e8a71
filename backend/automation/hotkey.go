package automation

import (
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"golang.design/x/hotkey"
)

// A HotkeyHandle is a registered global hotkey. Close unregisters it.
type HotkeyHandle struct {
	hk   *hotkey.Hotkey
	done chan struct{}
}

// ListenHotkey registers combo as a system-wide hotkey and calls fn on
// every key-down event, serially, from a dedicated goroutine. A combo the
// platform cannot register yields an error with code EINVALID.
func ListenHotkey(combo Combo, fn func()) (*HotkeyHandle, error) {
	key, ok := hotkeyKeys[combo.Key]
	if !ok {
		return nil, core.Error(core.EINVALID, "key %q cannot be a hotkey on this platform", combo.Key)
	}
	hk := hotkey.New(hotkeyModifiers(combo), key)
	if err := hk.Register(); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot register hotkey %s", combo)
	}
	tracer().Infof("registered hotkey %s", combo)
	h := &HotkeyHandle{hk: hk, done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-h.done:
				return
			case <-hk.Keydown():
				fn()
			}
		}
	}()
	return h, nil
}

// Close unregisters the hotkey and stops the listening goroutine.
func (h *HotkeyHandle) Close() {
	close(h.done)
	if err := h.hk.Unregister(); err != nil {
		tracer().Errorf("cannot unregister hotkey: %v", err)
	}
}

// hotkeyKeys holds the key names available on all supported platforms.
var hotkeyKeys = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"enter":  hotkey.KeyReturn,
	"space":  hotkey.KeySpace,
	"esc":    hotkey.KeyEscape,
	"escape": hotkey.KeyEscape,
	"tab":    hotkey.KeyTab,
	"f1":     hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3,
	"f4": hotkey.KeyF4, "f5": hotkey.KeyF5, "f6": hotkey.KeyF6,
	"f7": hotkey.KeyF7, "f8": hotkey.KeyF8, "f9": hotkey.KeyF9,
	"f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
}
