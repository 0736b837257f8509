package media

import (
	"errors"
	"io"
	"time"

	mp4 "github.com/abema/go-mp4"
)

// QuickTime and ISO-BMFF count seconds from 1904-01-01 UTC.
var mp4Epoch = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)

var errNoMovieHeader = errors.New("movie header not found")

// movieCreationTime returns the creation time stored in moov/mvhd.
func movieCreationTime(r io.ReadSeeker) (time.Time, error) {
	boxes, err := mp4.ExtractBoxWithPayload(r, nil, mp4.BoxPath{mp4.BoxTypeMoov(), mp4.BoxTypeMvhd()})
	if err != nil {
		return time.Time{}, err
	}
	if len(boxes) == 0 {
		return time.Time{}, errNoMovieHeader
	}
	mvhd, ok := boxes[0].Payload.(*mp4.Mvhd)
	if !ok {
		return time.Time{}, errNoMovieHeader
	}

	var seconds uint64
	if mvhd.GetVersion() == 1 {
		seconds = mvhd.CreationTimeV1
	} else {
		seconds = uint64(mvhd.CreationTimeV0)
	}
	if seconds == 0 {
		return time.Time{}, errors.New("movie header has no creation time")
	}
	return mp4Epoch.Add(time.Duration(seconds) * time.Second), nil
}
