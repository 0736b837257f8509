// Package media reads the creation time a file already carries, so that
// files which are already correct can be left alone.
package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"clipdate/internal/domain"
)

var ErrUnsupported = errors.New("no embedded date reader for this file type")

type Inspector struct {
	// Location applies to EXIF dates, which carry no zone.
	Location *time.Location
}

func (i Inspector) RecordedAt(ctx context.Context, path string) (time.Time, error) {
	select {
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	default:
	}

	ext := filepath.Ext(path)
	if !domain.IsQuickTimeExtension(ext) && !domain.IsJpegExtension(ext) {
		return time.Time{}, fmt.Errorf("%s: %w", ext, ErrUnsupported)
	}

	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer file.Close()

	if domain.IsQuickTimeExtension(ext) {
		return movieCreationTime(file)
	}
	loc := i.Location
	if loc == nil {
		loc = time.Local
	}
	return exifDateTimeOriginal(file, loc)
}
