//go:build !windows && !darwin

package fs

import "time"

// Linux and the BSDs have no call for rewriting a file's birth time.
func setBirthTime(string, time.Time) error {
	return nil
}
