package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	InvalidConfig        Kind = "invalid_config"
	NotFound             Kind = "not_found"
	MissingDependency    Kind = "missing_dependency"
	NoMatch              Kind = "no_match"
	MetadataWriteFailed  Kind = "metadata_write_failed"
	TimestampWriteFailed Kind = "timestamp_write_failed"
	IOFailure            Kind = "io_failure"
	Internal             Kind = "internal"
)

// ErrNoMatch is wrapped when a filename fits none of the known patterns.
var ErrNoMatch = stderrors.New("filename does not match any known pattern")

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// KindOf returns the Kind of the first AppError in err's chain, or Internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case NotFound:
		return fmt.Sprintf("Path not found: %s", appErr.Path)
	case MissingDependency:
		return fmt.Sprintf("Required tool not found: %v\n"+
			"Install ExifTool and make sure it is on your PATH:\n"+
			"  macOS:   brew install exiftool\n"+
			"  Linux:   apt install libimage-exiftool-perl\n"+
			"  Other:   https://exiftool.org/install.html", appErr.Err)
	case NoMatch:
		return fmt.Sprintf("No date in filename: %s", appErr.Path)
	case MetadataWriteFailed:
		return fmt.Sprintf("Metadata write failed: %s: %v", appErr.Path, appErr.Err)
	case TimestampWriteFailed:
		return fmt.Sprintf("File timestamp update failed: %s: %v", appErr.Path, appErr.Err)
	case IOFailure:
		return fmt.Sprintf("I/O error: %s: %v", appErr.Path, appErr.Err)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
