package automation

import (
	"sync"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"golang.design/x/clipboard"
)

// Clipboard reads and writes the system clipboard. Image payloads are
// PNG-encoded bytes, the format the clipboard library exchanges.
type Clipboard interface {
	ReadText() string
	WriteText(text string)
	ReadImage() []byte
	WriteImage(png []byte)
}

type systemClipboard struct{}

var clipInit sync.Once
var clipErr error

// SystemClipboard returns the host clipboard. Initialization happens once;
// a host without a usable clipboard (e.g. a headless session) yields an
// error with code EINTERNAL.
func SystemClipboard() (Clipboard, error) {
	clipInit.Do(func() {
		clipErr = clipboard.Init()
	})
	if clipErr != nil {
		return nil, core.WrapError(clipErr, core.EINTERNAL, "system clipboard not usable")
	}
	return systemClipboard{}, nil
}

func (systemClipboard) ReadText() string {
	return string(clipboard.Read(clipboard.FmtText))
}

func (systemClipboard) WriteText(text string) {
	clipboard.Write(clipboard.FmtText, []byte(text))
}

func (systemClipboard) ReadImage() []byte {
	return clipboard.Read(clipboard.FmtImage)
}

func (systemClipboard) WriteImage(png []byte) {
	clipboard.Write(clipboard.FmtImage, png)
}
