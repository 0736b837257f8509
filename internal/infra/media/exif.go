package media

import (
	"errors"
	"io"
	"time"

	goexif "github.com/rwcarlsen/goexif/exif"
)

// exifDateTimeOriginal reads DateTimeOriginal from a JPEG-based still
// (.jpg, Insta360 .insp), falling back to the generic DateTime tags.
// EXIF dates carry no zone, so they are read in loc.
func exifDateTimeOriginal(r io.Reader, loc *time.Location) (time.Time, error) {
	x, err := goexif.Decode(r)
	if err != nil {
		return time.Time{}, err
	}

	if tag, err := x.Get(goexif.DateTimeOriginal); err == nil {
		if str, err := tag.StringVal(); err == nil {
			parsed, err := time.ParseInLocation("2006:01:02 15:04:05", str, loc)
			if err == nil {
				return parsed, nil
			}
		}
	}

	if parsed, err := x.DateTime(); err == nil {
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(),
			parsed.Hour(), parsed.Minute(), parsed.Second(), 0, loc), nil
	}

	return time.Time{}, errors.New("exif datetime not found")
}
