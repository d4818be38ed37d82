//go:build !windows

package printing

import (
	"errors"
	"fmt"
	"os/exec"
)

// submit spools via CUPS, preferring lp and falling back to lpr.
func submit(path string) error {
	err := run("lp", path)
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		err = run("lpr", path)
		if err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrPrintDispatch, err)
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%s: %v: %s", name, err, out)
	}
	return nil
}
