package automation

import (
	"bytes"
	"strings"
	"time"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core/config"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/engine/render"
	"github.com/disintegration/imaging"
)

// A Session owns one trigger flow: capture the typed text through the
// clipboard, render a page, hand the page back through the clipboard and
// optionally paste and send it. Triggers run serially; a session must not
// be shared across goroutines.
type Session struct {
	cfg  config.Config
	pipe *render.Pipeline
	clip Clipboard
	keys Keystrokes
	gate Gate

	trigger   Combo
	selectAll Combo
	cut       Combo
	paste     Combo
	send      Combo

	skipNext bool // next trigger is our own re-sent key, ignore it
}

// NewSession wires a trigger session. The configured hotkey strings are
// parsed here, so a misconfigured combo surfaces at startup with code
// EINVALID rather than on the first trigger.
func NewSession(cfg config.Config, pipe *render.Pipeline, clip Clipboard, keys Keystrokes, gate Gate) (*Session, error) {
	s := &Session{cfg: cfg, pipe: pipe, clip: clip, keys: keys, gate: gate}
	if gate == nil {
		s.gate = AllowAll()
	}
	var err error
	for _, bind := range []struct {
		combo *Combo
		text  string
		what  string
	}{
		{&s.trigger, cfg.Hotkey, "hotkey"},
		{&s.selectAll, cfg.SelectAllHotkey, "select_all_hotkey"},
		{&s.cut, cfg.CutHotkey, "cut_hotkey"},
		{&s.paste, cfg.PasteHotkey, "paste_hotkey"},
		{&s.send, cfg.SendHotkey, "send_hotkey"},
	} {
		if *bind.combo, err = ParseCombo(bind.text); err != nil {
			return nil, core.WrapError(err, core.EINVALID, "%s is not a valid combo: %s",
				bind.what, bind.text)
		}
	}
	return s, nil
}

// TriggerCombo returns the parsed trigger hotkey, for registration.
func (s *Session) TriggerCombo() Combo {
	return s.trigger
}

// Trigger runs one capture-render-deliver cycle:
//
//  1. the foreground gate is consulted,
//  2. the clipboard text is backed up and the clipboard cleared,
//  3. the typed text is captured via select-all and cut,
//  4. a page is rendered from the text, or from a clipboard image when
//     the input box was empty,
//  5. the page goes to the clipboard and is pasted and sent as configured,
//  6. the clipboard backup is restored.
//
// A failed render hands the captured text back to the input box and leaves
// the expression state untouched. When the configuration does not block
// the hotkey, a trigger over an empty input box or in a non-allowed
// application re-sends the trigger key, so the host application still
// sees the keypress; the re-sent key's own hotkey event is swallowed.
func (s *Session) Trigger() error {
	if s.skipNext {
		s.skipNext = false
		return nil
	}
	if !s.gate() {
		// the key keeps its normal function in non-allowed applications
		if !s.cfg.BlockHotkey {
			s.skipNext = true
			return s.keys.Send(s.trigger)
		}
		return nil
	}
	backup := s.clip.ReadText()
	// clear the clipboard, so the cut result is distinguishable from
	// whatever the user had on it before
	s.clip.WriteText("")
	if err := s.keys.Send(s.selectAll); err != nil {
		return err
	}
	s.pause()
	if err := s.keys.Send(s.cut); err != nil {
		return err
	}
	s.pause()
	text := s.clip.ReadText()

	var res *render.Result
	var err error
	if strings.TrimSpace(text) == "" {
		png := s.clip.ReadImage()
		if len(png) == 0 {
			s.clip.WriteText(backup)
			if !s.cfg.BlockHotkey {
				s.skipNext = true
				return s.keys.Send(s.trigger)
			}
			return nil
		}
		content, derr := imaging.Decode(bytes.NewReader(png))
		if derr != nil {
			s.clip.WriteText(backup)
			return core.WrapError(derr, core.EIMAGE, "clipboard image not decodable")
		}
		res, err = s.pipe.RenderImage(content)
	} else {
		res, err = s.pipe.RenderText(text)
	}
	if err != nil {
		// hand the captured text back to the input box
		if text != "" {
			s.clip.WriteText(text)
			s.pause()
			if kerr := s.keys.Send(s.paste); kerr != nil {
				tracer().Errorf("cannot restore input text: %v", kerr)
			}
			s.pause()
		}
		s.clip.WriteText(backup)
		return err
	}

	s.clip.WriteImage(res.PNG)
	if s.cfg.AutoPasteImage {
		s.pause()
		if err := s.keys.Send(s.paste); err != nil {
			return err
		}
		if s.cfg.AutoSendImage {
			s.pause()
			// a send combo equal to the trigger would fire a spurious
			// cycle, so swallow its hotkey event
			if s.send == s.trigger {
				s.skipNext = true
			}
			if err := s.keys.Send(s.send); err != nil {
				return err
			}
		}
	}
	s.pause()
	s.clip.WriteText(backup)
	return nil
}

// pause waits the configured settle delay between automation steps.
func (s *Session) pause() {
	if s.cfg.Delay > 0 {
		time.Sleep(time.Duration(s.cfg.Delay * float64(time.Second)))
	}
}
