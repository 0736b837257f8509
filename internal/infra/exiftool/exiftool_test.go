package exiftool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"testing"

	goexiftool "github.com/barasher/go-exiftool"

	appErrors "clipdate/internal/errors"
)

type fakeSession struct {
	written []goexiftool.FileMetadata
	fail    error
	closed  bool
}

func (f *fakeSession) WriteMetadata(mds []goexiftool.FileMetadata) {
	for i := range mds {
		mds[i].Err = f.fail
		f.written = append(f.written, mds[i])
	}
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

func TestWriterSetsAllDateFields(t *testing.T) {
	fake := &fakeSession{}
	opened := 0
	w := NewWriter(withSession(func(string) (session, error) {
		opened++
		return fake, nil
	}))

	for i := 0; i < 2; i++ {
		if err := w.WriteDates(context.Background(), "/v/VID_20230815_143022.mp4", "2023:08:15 14:30:22"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if opened != 1 {
		t.Fatalf("expected a single exiftool session, got %d", opened)
	}
	if len(fake.written) != 2 {
		t.Fatalf("expected 2 writes, got %d", len(fake.written))
	}

	md := fake.written[0]
	if md.File != "/v/VID_20230815_143022.mp4" {
		t.Fatalf("unexpected file %q", md.File)
	}
	for _, field := range DateFields {
		got, err := md.GetString(field)
		if err != nil || got != "2023:08:15 14:30:22" {
			t.Fatalf("field %s = %q (%v)", field, got, err)
		}
	}

	if err := w.Close(); err != nil || !fake.closed {
		t.Fatalf("expected session closed, err=%v", err)
	}
}

func TestWriterReturnsExiftoolDiagnostic(t *testing.T) {
	fake := &fakeSession{fail: errors.New("Error: Not a valid MOV")}
	w := NewWriter(withSession(func(string) (session, error) { return fake, nil }))

	err := w.WriteDates(context.Background(), "/v/a.mp4", "2023:08:15 14:30:22")
	if err == nil || err.Error() != "Error: Not a valid MOV" {
		t.Fatalf("expected diagnostic, got %v", err)
	}
}

func TestWriterCustomFields(t *testing.T) {
	fake := &fakeSession{}
	w := NewWriter(
		WithFields("DateTimeOriginal"),
		withSession(func(string) (session, error) { return fake, nil }),
	)
	if err := w.WriteDates(context.Background(), "/v/a.mp4", "2023:08:15 14:30:22+00:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.written[0].Fields) != 1 {
		t.Fatalf("expected one field, got %v", fake.written[0].Fields)
	}
}

func TestWriterUsesStillFieldsForJpegBasedFiles(t *testing.T) {
	fake := &fakeSession{}
	w := NewWriter(withSession(func(string) (session, error) { return fake, nil }))

	for _, path := range []string{"/v/IMG_20230815_143022_00_001.insp", "/v/IMG_20230815_143022.JPG"} {
		if err := w.WriteDates(context.Background(), path, "2023:08:15 14:30:22+09:00"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	for _, md := range fake.written {
		got, err := md.GetString("DateTimeOriginal")
		if err != nil || got != "2023:08:15 14:30:22+09:00" {
			t.Fatalf("%s: DateTimeOriginal = %q (%v)", md.File, got, err)
		}
		if _, ok := md.Fields["MediaCreateDate"]; ok {
			t.Fatalf("%s: video-only tag written to a still", md.File)
		}
	}
}

// scriptedSessions hands out a new fakeSession per open, failing the ones
// listed in fail.
type scriptedSessions struct {
	fail     []error
	sessions []*fakeSession
}

func (s *scriptedSessions) open(string) (session, error) {
	next := &fakeSession{}
	if i := len(s.sessions); i < len(s.fail) {
		next.fail = s.fail[i]
	}
	s.sessions = append(s.sessions, next)
	return next, nil
}

func TestWriterReopensAfterExiftoolExits(t *testing.T) {
	script := &scriptedSessions{fail: []error{errors.New("error while reading stdMergedOut: EOF")}}
	w := NewWriter(withSession(script.open))

	if err := w.WriteDates(context.Background(), "/v/a.mp4", "2023:08:15 14:30:22+00:00"); err == nil {
		t.Fatal("expected the first write to fail")
	}
	if !script.sessions[0].closed {
		t.Fatal("expected the dead session to be closed")
	}
	if err := w.WriteDates(context.Background(), "/v/b.mp4", "2023:08:15 14:30:22+00:00"); err != nil {
		t.Fatalf("expected a fresh session to succeed, got %v", err)
	}
	if len(script.sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(script.sessions))
	}
}

func TestWriterKeepsSessionAfterFileDiagnostic(t *testing.T) {
	script := &scriptedSessions{fail: []error{errors.New("Error: Not a valid MOV")}}
	w := NewWriter(withSession(script.open))

	for _, path := range []string{"/v/a.mp4", "/v/b.mp4"} {
		_ = w.WriteDates(context.Background(), path, "2023:08:15 14:30:22+00:00")
	}
	if len(script.sessions) != 1 {
		t.Fatalf("expected the session to be reused, got %d", len(script.sessions))
	}
}

func TestSessionLost(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("nothing on stdMergedOut"), true},
		{fmt.Errorf("write |1: %w", syscall.EPIPE), true},
		{fmt.Errorf("read: %w", io.EOF), true},
		{os.ErrClosed, true},
		{errors.New("Error: File not found - /v/a.mp4"), false},
	}
	for _, tt := range tests {
		if got := sessionLost(tt.err); got != tt.want {
			t.Fatalf("sessionLost(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestWriterHonoursCancelledContext(t *testing.T) {
	w := NewWriter(withSession(func(string) (session, error) {
		t.Fatalf("session should not be opened")
		return nil, nil
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.WriteDates(ctx, "/v/a.mp4", "2023:08:15 14:30:22"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type fakeRunner struct {
	out  []byte
	err  error
	args []string
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.args = append([]string{name}, args...)
	return f.out, f.err
}

func TestCheckerReportsVersion(t *testing.T) {
	runner := &fakeRunner{out: []byte("12.76\n")}
	c := NewChecker(
		WithCheckerCommandRunner(runner),
		WithLookPath(func(name string) (string, error) { return "/usr/bin/" + name, nil }),
	)

	version, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "12.76" {
		t.Fatalf("expected 12.76, got %q", version)
	}
	if runner.args[0] != "/usr/bin/exiftool" || runner.args[1] != "-ver" {
		t.Fatalf("unexpected invocation %v", runner.args)
	}
}

func TestCheckerMissingBinary(t *testing.T) {
	c := NewChecker(
		WithCheckerBinary("/opt/nowhere/exiftool"),
		WithLookPath(func(string) (string, error) { return "", errors.New("executable file not found") }),
	)
	_, err := c.Check(context.Background())
	if appErrors.KindOf(err) != appErrors.MissingDependency {
		t.Fatalf("expected missing dependency, got %v", err)
	}
}

func TestCheckerUnrunnableBinary(t *testing.T) {
	c := NewChecker(
		WithCheckerCommandRunner(&fakeRunner{err: errors.New("exit status 2")}),
		WithLookPath(func(name string) (string, error) { return name, nil }),
	)
	_, err := c.Check(context.Background())
	if appErrors.KindOf(err) != appErrors.MissingDependency {
		t.Fatalf("expected missing dependency, got %v", err)
	}
}
