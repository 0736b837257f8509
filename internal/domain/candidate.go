package domain

import (
	"path/filepath"
	"strings"
	"time"
)

type Candidate struct {
	Path         string
	RelativePath string
	Name         string
	Ext          string
}

func NewCandidate(path, relativePath string) Candidate {
	name := filepath.Base(path)
	return Candidate{
		Path:         path,
		RelativePath: relativePath,
		Name:         name,
		Ext:          strings.ToLower(filepath.Ext(name)),
	}
}

// DefaultExtensions are the video containers processed when no
// extension list is configured.
var DefaultExtensions = []string{
	".mp4", ".mov", ".insv", ".lrv", ".m4v", ".avi", ".mkv", ".3gp", ".mts",
}

// ExtensionSet matches file extensions case-insensitively.
type ExtensionSet map[string]bool

func NewExtensionSet(exts []string) ExtensionSet {
	set := make(ExtensionSet, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

func (s ExtensionSet) Contains(ext string) bool {
	return s[strings.ToLower(ext)]
}

// IsQuickTimeExtension reports whether ext is an ISO-BMFF / QuickTime
// container that carries a movie header.
func IsQuickTimeExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp4", ".mov", ".m4v", ".insv", ".lrv", ".3gp":
		return true
	default:
		return false
	}
}

func IsJpegExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".insp":
		return true
	default:
		return false
	}
}

// FileTimes holds the filesystem timestamps of a file. Birth is zero when
// the platform does not report one.
type FileTimes struct {
	Mod   time.Time
	Birth time.Time
}
