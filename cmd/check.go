package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/zsh-install/zshup/pkg/elevate"
	"github.com/zsh-install/zshup/pkg/gitbash"
	"github.com/zsh-install/zshup/pkg/spec"
)

// CheckCommand reports what an install run would do without touching
// anything: the resolved config, the candidate roots, and whether the
// process holds administrative rights.
var CheckCommand = &cobra.Command{
	Use:   "check",
	Short: "Report the environment zshup would install into",
	Long: `Checks the installation environment without changing it:
- Resolves and prints the effective config
- Probes each candidate root for a Git for Windows installation
- Probes for administrative rights`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	installSpec, err := loadSpec(configFile)
	if err != nil {
		return err
	}
	if gitRootArg != "" {
		installSpec.GitRoot = spec.StringPtr(gitRootArg)
	}
	if err := installSpec.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	out := cmd.OutOrStdout()

	yamlData, err := yaml.Marshal(installSpec)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	fmt.Fprintln(out, "Resolved config:")
	fmt.Fprintln(out, string(yamlData))

	candidates := locateCandidates()
	if root := spec.StringValue(installSpec.GitRoot); root != "" {
		candidates = []string{root}
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CANDIDATE\tMARKER")
	located := ""
	for _, root := range candidates {
		status := "missing"
		if _, err := gitbash.Locate([]string{root}); err == nil {
			status = "found"
			if located == "" {
				located = root
			}
		}
		fmt.Fprintf(w, "%s\t%s\n", root, status)
	}
	w.Flush()

	if located == "" {
		fmt.Fprintln(out, "Git for Windows: not found")
	} else {
		fmt.Fprintf(out, "Git for Windows: %s\n", located)
	}

	if status, _ := elevate.Decide(elevateRunner); status == elevate.StatusElevated {
		fmt.Fprintln(out, "Administrative rights: yes")
	} else if spec.BoolValue(installSpec.Elevate) {
		fmt.Fprintln(out, "Administrative rights: no (install will relaunch elevated)")
	} else {
		fmt.Fprintln(out, "Administrative rights: no")
	}
	return nil
}
