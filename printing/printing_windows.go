//go:build windows

package printing

import (
	"fmt"
	"os/exec"
)

// submit asks the shell to run the "print" verb of the file's associated
// application, which spools to the default printer.
func submit(path string) error {
	cmd := exec.Command("powershell", "-NoProfile", "-Command", "Start-Process", "-FilePath", path, "-Verb", "Print")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %v: %s", ErrPrintDispatch, err, out)
	}
	return nil
}
