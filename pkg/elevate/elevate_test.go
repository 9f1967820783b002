package elevate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records every invocation and fails those matching failOn.
type fakeRunner struct {
	calls  [][]string
	failOn func(name string) bool
}

func (r *fakeRunner) Run(name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	if r.failOn != nil && r.failOn(name) {
		return fmt.Errorf("exit status 2")
	}
	return nil
}

func TestDecideElevated(t *testing.T) {
	runner := &fakeRunner{}

	status, exe := Decide(runner)

	assert.Equal(t, StatusElevated, status)
	assert.Empty(t, exe)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"net", "session"}, runner.calls[0])
}

func TestDecideRelaunch(t *testing.T) {
	runner := &fakeRunner{failOn: func(name string) bool { return name == "net" }}

	status, exe := Decide(runner)

	assert.Equal(t, StatusRelaunch, status)
	assert.NotEmpty(t, exe, "relaunch needs the current executable path")
}

func TestRelaunchCarriesArguments(t *testing.T) {
	runner := &fakeRunner{}

	err := Relaunch(runner, `C:\tools\zshup.exe`, []string{"--verbose", "--config", "a b.yml"})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1, "exactly one relaunch invocation")
	call := runner.calls[0]
	assert.Equal(t, "powershell", call[0])
	assert.Equal(t, "-NoProfile", call[1])
	assert.Equal(t, "-Command", call[2])

	cmdline := call[3]
	assert.Contains(t, cmdline, `Start-Process -FilePath 'C:\tools\zshup.exe'`)
	assert.Contains(t, cmdline, "-ArgumentList '--verbose','--config','a b.yml'")
	assert.True(t, strings.HasSuffix(cmdline, "-Verb RunAs"))
}

func TestRelaunchWithoutArguments(t *testing.T) {
	runner := &fakeRunner{}

	require.NoError(t, Relaunch(runner, `C:\zshup.exe`, nil))

	cmdline := runner.calls[0][3]
	assert.NotContains(t, cmdline, "-ArgumentList")
}

func TestRelaunchFailurePropagates(t *testing.T) {
	runner := &fakeRunner{failOn: func(name string) bool { return name == "powershell" }}

	err := Relaunch(runner, `C:\zshup.exe`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to relaunch with elevation")
}

func TestPSQuote(t *testing.T) {
	assert.Equal(t, "'plain'", psQuote("plain"))
	assert.Equal(t, "'it''s'", psQuote("it's"))
}
