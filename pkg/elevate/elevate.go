// Package elevate decides whether the current process holds
// administrative rights and, when it does not, relaunches the program
// through an elevation-requesting PowerShell invocation. The relaunched
// copy performs the actual installation; the original invocation stops.
package elevate

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Status is the outcome of the capability check.
type Status int

const (
	// StatusElevated means the process already holds administrative
	// rights and may proceed.
	StatusElevated Status = iota
	// StatusRelaunch means rights are missing but the program can be
	// relaunched elevated.
	StatusRelaunch
	// StatusFatal means rights are missing and a relaunch is not
	// possible.
	StatusFatal
)

// Runner executes an external command and reports only whether it
// exited successfully. It exists so tests can fake the probe and
// capture the relaunch invocation.
type Runner interface {
	Run(name string, args ...string) error
}

// ExecRunner runs commands through os/exec with output discarded.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

// The probe succeeds only in an elevated console. A non-zero exit and a
// missing command both mean "not elevated".
var probeCommand = []string{"net", "session"}

// Decide probes for administrative rights. When rights are missing it
// also resolves the executable path a relaunch would use; failure to
// resolve it makes the situation fatal.
func Decide(r Runner) (Status, string) {
	if err := r.Run(probeCommand[0], probeCommand[1:]...); err == nil {
		return StatusElevated, ""
	}
	exe, err := os.Executable()
	if err != nil {
		return StatusFatal, ""
	}
	return StatusRelaunch, exe
}

// Relaunch starts an elevated copy of exe with the given arguments. It
// does not wait for the copy to finish; the caller is expected to stop
// after a successful relaunch.
func Relaunch(r Runner, exe string, args []string) error {
	if err := r.Run("powershell", "-NoProfile", "-Command", relaunchCommand(exe, args)); err != nil {
		return errors.Wrap(err, "failed to relaunch with elevation")
	}
	return nil
}

// relaunchCommand builds the Start-Process command line that requests
// elevation and carries the original arguments through.
func relaunchCommand(exe string, args []string) string {
	var b strings.Builder
	b.WriteString("Start-Process -FilePath ")
	b.WriteString(psQuote(exe))
	if len(args) > 0 {
		quoted := make([]string, len(args))
		for i, a := range args {
			quoted[i] = psQuote(a)
		}
		b.WriteString(" -ArgumentList ")
		b.WriteString(strings.Join(quoted, ","))
	}
	b.WriteString(" -Verb RunAs")
	return b.String()
}

// psQuote single-quotes a value for PowerShell, doubling embedded
// quotes.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
