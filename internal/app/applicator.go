package app

import (
	"context"
	"errors"
	"time"

	"clipdate/internal/domain"
	appErrors "clipdate/internal/errors"
)

// Applicator writes a recovered timestamp into a file's metadata and onto
// its filesystem entry.
type Applicator struct {
	Metadata MetadataWriter
	Times    TimestampSetter
	Location *time.Location
}

func (a *Applicator) location() *time.Location {
	if a == nil || a.Location == nil {
		return time.Local
	}
	return a.Location
}

// Apply always attempts both steps. The metadata write comes first because
// rewriting the file bumps its modification time.
func (a *Applicator) Apply(ctx context.Context, path string, ts domain.Timestamp) error {
	if a == nil || a.Metadata == nil || a.Times == nil {
		return errors.New("applicator requires Metadata and Times")
	}

	var errs []error
	if err := a.Metadata.WriteDates(ctx, path, ts.ExifStringIn(a.location())); err != nil {
		errs = append(errs, appErrors.Wrap(appErrors.MetadataWriteFailed, "write metadata", path, err))
	}
	if err := a.Times.SetTimes(path, ts.Time(a.location())); err != nil {
		errs = append(errs, appErrors.Wrap(appErrors.TimestampWriteFailed, "set file times", path, err))
	}
	return errors.Join(errs...)
}
