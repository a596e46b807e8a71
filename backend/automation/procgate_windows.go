//go:build windows

package automation

import (
	"unsafe"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
)

// foregroundProcess returns the executable name of the process owning the
// foreground window, e.g. "WeChat.exe".
func foregroundProcess() (string, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return "", core.Error(core.EINTERNAL, "no foreground window")
	}
	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return "", core.Error(core.EINTERNAL, "foreground window has no process")
	}
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return "", core.WrapError(err, core.EINTERNAL, "cannot inspect process %d", pid)
	}
	name, err := p.Name()
	if err != nil {
		return "", core.WrapError(err, core.EINTERNAL, "cannot name process %d", pid)
	}
	return name, nil
}
