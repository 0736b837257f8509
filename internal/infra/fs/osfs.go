package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/djherbis/times"

	"clipdate/internal/domain"
)

type OSFS struct{}

func (OSFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (OSFS) FileTimes(path string) (domain.FileTimes, error) {
	ts, err := times.Stat(path)
	if err != nil {
		return domain.FileTimes{}, err
	}
	result := domain.FileTimes{Mod: ts.ModTime()}
	if ts.HasBirthTime() {
		result.Birth = ts.BirthTime()
	}
	return result, nil
}

// SetTimes sets the access and modification times of path to t and, where
// the platform exposes a writable creation time, the creation time too.
func (OSFS) SetTimes(path string, t time.Time) error {
	if err := os.Chtimes(path, t, t); err != nil {
		return err
	}
	return setBirthTime(path, t)
}
