package cmdrun

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Synchronously invoke a command, passing both stdout and stderr.
func RunCmdSync(cmdName string, args ...string) error {
	cmd := exec.Command(cmdName, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("error running %s %s: %w", cmdName, strings.Join(args, " "), err)
	}

	return nil
}

// Synchronously invoke a command, returning its trimmed stdout. Stderr is
// passed through.
func RunCmdCaptured(cmdName string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := exec.Command(cmdName, args...)
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running %s %s: %w", cmdName, strings.Join(args, " "), err)
	}

	return strings.TrimSpace(out.String()), nil
}
