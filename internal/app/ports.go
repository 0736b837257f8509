package app

import (
	"context"
	"io/fs"
	"time"

	"clipdate/internal/domain"
	"clipdate/internal/pattern"
)

type FileSystem interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(path string) (fs.FileInfo, error)
	FileTimes(path string) (domain.FileTimes, error)
}

type DateParser interface {
	Parse(filename string) (pattern.Match, bool)
}

// MetadataWriter rewrites the embedded creation and modification dates.
// value is formatted as YYYY:MM:DD HH:MM:SS+hh:mm.
type MetadataWriter interface {
	WriteDates(ctx context.Context, path, value string) error
}

// TimestampSetter rewrites filesystem timestamps, including creation time
// where the platform allows it.
type TimestampSetter interface {
	SetTimes(path string, t time.Time) error
}

// Inspector reads the creation time currently embedded in a file.
type Inspector interface {
	RecordedAt(ctx context.Context, path string) (time.Time, error)
}

// Observer receives progress events from the walker. Events are delivered
// from the processing goroutine in file order; done counts from 1.
type Observer interface {
	OnStart(dir string, total int)
	OnFileDone(done, total int, outcome domain.Outcome)
	OnFinish(summary domain.Summary)
}
