//go:build darwin

package fs

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// SetFile ships with the Xcode command line tools. Without it only the
// modification time can be changed.
const setFileBinary = "SetFile"

func setBirthTime(path string, t time.Time) error {
	bin, err := exec.LookPath(setFileBinary)
	if err != nil {
		return nil
	}
	stamp := t.Local().Format("01/02/2006 15:04:05")
	out, err := exec.Command(bin, "-d", stamp, "-m", stamp, path).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", setFileBinary, err, strings.TrimSpace(string(out)))
	}
	return nil
}
