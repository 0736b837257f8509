//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"clipdate/internal/app"
	"clipdate/internal/domain"
	"clipdate/internal/infra/fs"
	"clipdate/internal/infra/media"
	"clipdate/internal/logging"
	"clipdate/internal/pattern"
	"clipdate/internal/presentation"
)

// recordingWriter stands in for ExifTool and remembers what it was asked
// to write.
type recordingWriter struct {
	values map[string]string
	fail   error
}

func (w *recordingWriter) WriteDates(ctx context.Context, path, value string) error {
	if w.fail != nil {
		return w.fail
	}
	w.values[filepath.Base(path)] = value
	return nil
}

// fixContext holds test state for date fixing scenarios
type fixContext struct {
	dir     string
	writer  *recordingWriter
	dryRun  bool
	output  *bytes.Buffer
	summary domain.Summary
	err     error
}

// SharedFixContext is reset before each scenario via Before hook
var SharedFixContext *fixContext

func getFixContext() *fixContext {
	return SharedFixContext
}

func InitializeFixScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedFixContext = &fixContext{
			writer: &recordingWriter{values: make(map[string]string)},
			output: &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if f := getFixContext(); f != nil && f.dir != "" {
			os.RemoveAll(f.dir)
		}
		SharedFixContext = nil
		return c, nil
	})

	ctx.Step(`^an empty clip directory$`, anEmptyClipDirectory)
	ctx.Step(`^a clip named "([^"]*)"$`, aFileNamed)
	ctx.Step(`^a file named "([^"]*)"$`, aFileNamed)
	ctx.Step(`^dry run is enabled$`, dryRunIsEnabled)
	ctx.Step(`^the metadata writer fails with "([^"]*)"$`, theMetadataWriterFailsWith)
	ctx.Step(`^I fix the dates$`, iFixTheDates)
	ctx.Step(`^the metadata of "([^"]*)" should be "([^"]*)"$`, theMetadataOfShouldBe)
	ctx.Step(`^no metadata should have been written$`, noMetadataShouldHaveBeenWritten)
	ctx.Step(`^the modification time of "([^"]*)" should be "([^"]*)"$`, theModificationTimeOfShouldBe)
	ctx.Step(`^the summary should report (\d+) updated, (\d+) skipped and (\d+) failed$`, theSummaryShouldReport)
	ctx.Step(`^(\d+) files? should be ignored$`, filesShouldBeIgnored)
	ctx.Step(`^the output should mention "([^"]*)"$`, theOutputShouldMention)
}

func anEmptyClipDirectory() error {
	dir, err := os.MkdirTemp("", "clipdate-features-")
	if err != nil {
		return err
	}
	getFixContext().dir = dir
	return nil
}

func aFileNamed(name string) error {
	f := getFixContext()
	return os.WriteFile(filepath.Join(f.dir, name), []byte("clip"), 0o644)
}

func dryRunIsEnabled() error {
	getFixContext().dryRun = true
	return nil
}

func theMetadataWriterFailsWith(msg string) error {
	getFixContext().writer.fail = errors.New(msg)
	return nil
}

func iFixTheDates() error {
	f := getFixContext()
	filesystem := fs.OSFS{}

	walker := &app.Walker{
		FS:     filesystem,
		Parser: pattern.Default(),
		Applicator: &app.Applicator{
			Metadata: f.writer,
			Times:    filesystem,
			Location: time.UTC,
		},
		Inspector: media.Inspector{Location: time.UTC},
		DryRun:    f.dryRun,
		Logger:    logging.New(f.output, false),
		Observer:  presentation.Printer{Writer: f.output},
	}

	f.summary, f.err = walker.Run(context.Background(), f.dir)
	if f.err != nil {
		return fmt.Errorf("unexpected error: %v", f.err)
	}
	return nil
}

func theMetadataOfShouldBe(name, want string) error {
	got, ok := getFixContext().writer.values[name]
	if !ok {
		return fmt.Errorf("no metadata written for %s", name)
	}
	if got != want {
		return fmt.Errorf("expected %q, got %q", want, got)
	}
	return nil
}

func noMetadataShouldHaveBeenWritten() error {
	if values := getFixContext().writer.values; len(values) != 0 {
		return fmt.Errorf("expected no writes, got %v", values)
	}
	return nil
}

func theModificationTimeOfShouldBe(name, want string) error {
	f := getFixContext()
	expected, err := time.ParseInLocation("2006-01-02 15:04:05", want, time.UTC)
	if err != nil {
		return err
	}
	info, err := os.Stat(filepath.Join(f.dir, name))
	if err != nil {
		return err
	}
	if !info.ModTime().Equal(expected) {
		return fmt.Errorf("expected mtime %v, got %v", expected, info.ModTime().UTC())
	}
	return nil
}

func theSummaryShouldReport(updated, skipped, failed int) error {
	s := getFixContext().summary
	if s.Updated != updated || s.Skipped != skipped || s.Failed != failed {
		return fmt.Errorf("expected %d/%d/%d updated/skipped/failed, got %d/%d/%d",
			updated, skipped, failed, s.Updated, s.Skipped, s.Failed)
	}
	return nil
}

func filesShouldBeIgnored(count int) error {
	if got := getFixContext().summary.Ignored; got != count {
		return fmt.Errorf("expected %d ignored, got %d", count, got)
	}
	return nil
}

func theOutputShouldMention(text string) error {
	output := getFixContext().output.String()
	if !strings.Contains(output, text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, output)
	}
	return nil
}
