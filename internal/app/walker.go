package app

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"clipdate/internal/domain"
	appErrors "clipdate/internal/errors"
	"clipdate/internal/logging"
	"clipdate/internal/pattern"
)

type ScanResult struct {
	Dir        string
	Candidates []domain.Candidate
	Ignored    int
}

// Walker enumerates candidate files in a directory and drives the parser
// and applicator over them, one file at a time.
type Walker struct {
	FS         FileSystem
	Parser     DateParser
	Applicator *Applicator
	Inspector  Inspector
	Extensions domain.ExtensionSet
	Recursive  bool
	DryRun     bool
	Force      bool
	Logger     logging.Logger
	Observer   Observer
}

func (w *Walker) Run(ctx context.Context, dir string) (domain.Summary, error) {
	scan, err := w.Scan(ctx, dir)
	if err != nil {
		return domain.Summary{}, err
	}
	return w.Process(ctx, scan), nil
}

// Scan lists regular files under dir in lexical order. Files whose
// extension is not in w.Extensions, symlinks and other non-regular entries
// are counted as ignored; hidden files are left out entirely.
func (w *Walker) Scan(ctx context.Context, dir string) (ScanResult, error) {
	if w.FS == nil {
		return ScanResult{}, errors.New("walker requires FS")
	}

	stop := w.Logger.Measure("Scanning directory")
	defer stop()

	extensions := w.Extensions
	if len(extensions) == 0 {
		extensions = domain.NewExtensionSet(domain.DefaultExtensions)
	}

	result := ScanResult{Dir: dir}
	err := w.FS.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == dir {
				return walkErr
			}
			w.Logger.Warnf("cannot read %s: %v", path, walkErr)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if !w.Recursive || strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if !d.Type().IsRegular() {
			w.Logger.Verbosef("%s: not a regular file (%s), ignoring", path, d.Type())
			result.Ignored++
			return nil
		}
		if !extensions.Contains(filepath.Ext(name)) {
			result.Ignored++
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = name
		}
		result.Candidates = append(result.Candidates, domain.NewCandidate(path, rel))
		return nil
	})
	if err != nil {
		return ScanResult{}, err
	}

	w.Logger.Verbosef("Found %d candidate files in %s (%d ignored)", len(result.Candidates), dir, result.Ignored)
	return result, nil
}

// Process handles the scanned files sequentially. Per-file failures are
// recorded in the summary and never abort the run. A cancelled context
// stops before the next file.
func (w *Walker) Process(ctx context.Context, scan ScanResult) domain.Summary {
	stop := w.Logger.Measure("Processing files")
	defer stop()

	summary := domain.Summary{
		Dir:     scan.Dir,
		DryRun:  w.DryRun,
		Ignored: scan.Ignored,
	}
	total := len(scan.Candidates)
	if w.Observer != nil {
		w.Observer.OnStart(scan.Dir, total)
	}

	for i, candidate := range scan.Candidates {
		if err := ctx.Err(); err != nil {
			w.Logger.Warnf("stopped after %d of %d files: %v", i, total, err)
			break
		}
		outcome := w.processFile(ctx, candidate)
		summary.Record(outcome)
		if w.Observer != nil {
			w.Observer.OnFileDone(i+1, total, outcome)
		}
	}

	if w.Observer != nil {
		w.Observer.OnFinish(summary)
	}
	return summary
}

func (w *Walker) processFile(ctx context.Context, c domain.Candidate) domain.Outcome {
	outcome := domain.Outcome{Candidate: c}

	match, ok := w.parser().Parse(c.Name)
	if !ok {
		w.Logger.Warnf("%s: no recording date in filename, skipping", c.RelativePath)
		w.explain(c)
		outcome.Status = domain.StatusSkipped
		outcome.Err = appErrors.Wrap(appErrors.NoMatch, "parse", c.Path, appErrors.ErrNoMatch)
		return outcome
	}
	outcome.Rule = match.Rule
	outcome.Timestamp = match.Timestamp
	w.Logger.Verbosef("%s: parsed %s (%s)", c.RelativePath, match.Timestamp, match.Rule)

	if !w.Force && w.isCurrent(ctx, c, match.Timestamp.Time(w.location())) {
		w.Logger.Verbosef("%s: already carries %s", c.RelativePath, match.Timestamp)
		outcome.Status = domain.StatusUnchanged
		return outcome
	}

	if w.DryRun {
		outcome.Status = domain.StatusPlanned
		return outcome
	}

	if err := w.Applicator.Apply(ctx, c.Path, match.Timestamp); err != nil {
		w.Logger.Errorf("%s: %s", c.RelativePath, appErrors.UserMessage(err))
		outcome.Status = domain.StatusFailed
		outcome.Err = err
		return outcome
	}
	outcome.Status = domain.StatusUpdated
	return outcome
}

// isCurrent reports whether both the embedded creation time and the file's
// modification time already equal target.
func (w *Walker) isCurrent(ctx context.Context, c domain.Candidate, target time.Time) bool {
	if w.Inspector == nil {
		return false
	}
	embedded, err := w.Inspector.RecordedAt(ctx, c.Path)
	if err != nil {
		w.Logger.Verbosef("%s: embedded date unavailable: %v", c.RelativePath, err)
		return false
	}
	if !embedded.Equal(target) {
		w.Logger.Verbosef("%s: embedded date is %s", c.RelativePath, embedded.In(target.Location()).Format(time.DateTime))
		return false
	}
	times, err := w.FS.FileTimes(c.Path)
	if err != nil {
		return false
	}
	return times.Mod.Truncate(time.Second).Equal(target)
}

// explain logs each rule's verdict in verbose mode.
func (w *Walker) explain(c domain.Candidate) {
	if !w.Logger.Verbose {
		return
	}
	explainer, ok := w.parser().(interface {
		Explain(filename string) []pattern.Attempt
	})
	if !ok {
		return
	}
	for _, attempt := range explainer.Explain(c.Name) {
		w.Logger.Verbosef("%s: rule %s: %v", c.RelativePath, attempt.Rule, attempt.Err)
	}
}

func (w *Walker) location() *time.Location {
	return w.Applicator.location()
}

func (w *Walker) parser() DateParser {
	if w.Parser == nil {
		return pattern.Default()
	}
	return w.Parser
}
