//go:build windows

package fs

import (
	"os"
	"time"

	"golang.org/x/sys/windows"
)

func setBirthTime(path string, t time.Time) error {
	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer file.Close()

	creation := windows.NsecToFiletime(t.UnixNano())
	return windows.SetFileTime(windows.Handle(file.Fd()), &creation, nil, nil)
}
