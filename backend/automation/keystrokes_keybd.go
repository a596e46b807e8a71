//go:build windows || linux

package automation

import (
	"runtime"
	"time"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"github.com/micmonay/keybd_event"
)

type systemKeystrokes struct{}

// SystemKeystrokes returns the host keystroke sender. On Linux the
// underlying uinput device needs about two seconds to come up, so the
// first call blocks that long.
func SystemKeystrokes() (Keystrokes, error) {
	if _, err := keybd_event.NewKeyBonding(); err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot send keystrokes on this host")
	}
	if runtime.GOOS == "linux" {
		time.Sleep(2 * time.Second)
	}
	return systemKeystrokes{}, nil
}

func (systemKeystrokes) Send(c Combo) error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot send keystrokes")
	}
	vk, ok := vkCodes[c.Key]
	if !ok {
		return core.Error(core.EINVALID, "key %q cannot be sent on this platform", c.Key)
	}
	kb.SetKeys(vk)
	kb.HasCTRL(c.Ctrl)
	kb.HasSHIFT(c.Shift)
	kb.HasALT(c.Alt)
	kb.HasSuper(c.Super)
	tracer().Debugf("sending keystroke %s", c)
	return kb.Launching()
}

var vkCodes = map[string]int{
	"a": keybd_event.VK_A, "b": keybd_event.VK_B, "c": keybd_event.VK_C,
	"d": keybd_event.VK_D, "e": keybd_event.VK_E, "f": keybd_event.VK_F,
	"g": keybd_event.VK_G, "h": keybd_event.VK_H, "i": keybd_event.VK_I,
	"j": keybd_event.VK_J, "k": keybd_event.VK_K, "l": keybd_event.VK_L,
	"m": keybd_event.VK_M, "n": keybd_event.VK_N, "o": keybd_event.VK_O,
	"p": keybd_event.VK_P, "q": keybd_event.VK_Q, "r": keybd_event.VK_R,
	"s": keybd_event.VK_S, "t": keybd_event.VK_T, "u": keybd_event.VK_U,
	"v": keybd_event.VK_V, "w": keybd_event.VK_W, "x": keybd_event.VK_X,
	"y": keybd_event.VK_Y, "z": keybd_event.VK_Z,
	"0": keybd_event.VK_0, "1": keybd_event.VK_1, "2": keybd_event.VK_2,
	"3": keybd_event.VK_3, "4": keybd_event.VK_4, "5": keybd_event.VK_5,
	"6": keybd_event.VK_6, "7": keybd_event.VK_7, "8": keybd_event.VK_8,
	"9": keybd_event.VK_9,
	"enter":  keybd_event.VK_ENTER,
	"space":  keybd_event.VK_SPACE,
	"esc":    keybd_event.VK_ESC,
	"escape": keybd_event.VK_ESC,
	"tab":    keybd_event.VK_TAB,
}
