package exiftool

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	goexiftool "github.com/barasher/go-exiftool"

	"clipdate/internal/domain"
)

// DateFields are the tags video editors read the recording date from.
var DateFields = []string{
	"CreateDate",
	"ModifyDate",
	"MediaCreateDate",
	"MediaModifyDate",
	"TrackCreateDate",
	"TrackModifyDate",
	"QuickTime:CreateDate",
	"QuickTime:ModifyDate",
}

// StillDateFields are written to JPEG-based stills (.jpg, .insp). The
// embedded-date check reads DateTimeOriginal back.
var StillDateFields = []string{
	"DateTimeOriginal",
	"CreateDate",
	"ModifyDate",
}

// session is the part of *goexiftool.Exiftool the writer needs.
type session interface {
	WriteMetadata(fileMetadata []goexiftool.FileMetadata)
	Close() error
}

// Writer keeps one ExifTool process open (-stay_open) for the whole run and
// feeds it one file at a time. Writes overwrite the original without a
// backup copy, and QuickTime dates are stored as UTC.
type Writer struct {
	binary      string
	fields      []string
	stillFields []string
	open          func(binary string) (session, error)
	et     session
}

type WriterOption func(*Writer)

func WithBinary(path string) WriterOption {
	return func(w *Writer) {
		if path != "" {
			w.binary = path
		}
	}
}

func WithFields(fields ...string) WriterOption {
	return func(w *Writer) {
		if len(fields) > 0 {
			w.fields = fields
		}
	}
}

func WithStillFields(fields ...string) WriterOption {
	return func(w *Writer) {
		if len(fields) > 0 {
			w.stillFields = fields
		}
	}
}

func withSession(open func(binary string) (session, error)) WriterOption {
	return func(w *Writer) {
		w.open = open
	}
}

func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		binary:      DefaultBinary,
		fields:      DateFields,
		stillFields: StillDateFields,
		open:        openExiftool,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func openExiftool(binary string) (session, error) {
	et, err := goexiftool.NewExiftool(
		goexiftool.SetExiftoolBinaryPath(binary),
		goexiftool.Api("QuickTimeUTC"),
	)
	if err != nil {
		return nil, err
	}
	return et, nil
}

// WriteDates sets every date field that applies to path to value
// (YYYY:MM:DD HH:MM:SS+hh:mm). The error carries ExifTool's diagnostic.
// When the ExifTool process has gone away the session is dropped so the
// next call starts a new one.
func (w *Writer) WriteDates(ctx context.Context, path, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.et == nil {
		et, err := w.open(w.binary)
		if err != nil {
			return err
		}
		w.et = et
	}

	md := w.metadata(path, value)
	batch := []goexiftool.FileMetadata{md}
	w.et.WriteMetadata(batch)
	if err := batch[0].Err; err != nil {
		if sessionLost(err) {
			_ = w.et.Close()
			w.et = nil
		}
		return err
	}
	return nil
}

// sessionLost reports pipe failures talking to the ExifTool process, as
// opposed to a diagnostic about the file.
func sessionLost(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	return strings.Contains(err.Error(), "stdMergedOut")
}

func (w *Writer) metadata(path, value string) goexiftool.FileMetadata {
	fields := w.fields
	if domain.IsJpegExtension(filepath.Ext(path)) {
		fields = w.stillFields
	}
	md := goexiftool.FileMetadata{
		File:   path,
		Fields: make(map[string]interface{}, len(fields)),
	}
	for _, field := range fields {
		md.SetString(field, value)
	}
	return md
}

// Close stops the ExifTool process if one was started.
func (w *Writer) Close() error {
	if w.et == nil {
		return nil
	}
	err := w.et.Close()
	w.et = nil
	if err != nil {
		return errors.Join(errors.New("closing exiftool"), err)
	}
	return nil
}
