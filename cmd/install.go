package cmd

import (
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/zsh-install/zshup/pkg/archive"
	"github.com/zsh-install/zshup/pkg/elevate"
	"github.com/zsh-install/zshup/pkg/fetch"
	"github.com/zsh-install/zshup/pkg/gitbash"
	"github.com/zsh-install/zshup/pkg/httpclient"
	"github.com/zsh-install/zshup/pkg/install"
	"github.com/zsh-install/zshup/pkg/spec"
)

// Collaborators behind variables so tests can fake the privilege probe,
// the candidate roots, and the relaunch arguments.
var (
	elevateRunner    elevate.Runner = elevate.ExecRunner{}
	locateCandidates                = gitbash.DefaultCandidates
	relaunchArgs                    = func() []string { return os.Args[1:] }
	newHTTPClient                   = httpclient.New
)

// InstallCommand is the explicit form of the default action.
var InstallCommand = &cobra.Command{
	Use:   "install",
	Short: "Download the Zsh distribution and install it into Git for Windows",
	Long: `Performs the full installation sequence: check privileges (when the
variant requires elevation), locate Git for Windows, download the
distribution archive, extract it, and merge its files into the Git tree.`,
	Example: `  # Install with built-in defaults
  zshup install

  # Install from a specific config
  zshup install --config my-zshup.yml

  # Install into an explicit Git for Windows tree
  zshup install --git-root "D:\Tools\Git"`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

// runInstall is the whole provisioning sequence. Every stage error
// returns here, gets logged once by the CLI harness, and stops the run;
// a missing Git for Windows installation is the one early return that
// is not a failure.
func runInstall(cmd *cobra.Command, args []string) error {
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

	if spec.BoolValue(installSpec.Elevate) {
		status, exe := elevate.Decide(elevateRunner)
		switch status {
		case elevate.StatusElevated:
			log.Debug("already running with administrative rights")
		case elevate.StatusRelaunch:
			log.Info("administrative rights required, relaunching elevated")
			if err := elevate.Relaunch(elevateRunner, exe, relaunchArgs()); err != nil {
				return err
			}
			log.Info("elevated instance launched, leaving the rest to it")
			return nil
		case elevate.StatusFatal:
			return errors.New("administrative rights required but relaunch is not possible")
		}
	}

	gitRoot := spec.StringValue(installSpec.GitRoot)
	if gitRoot == "" {
		gitRoot, err = gitbash.Locate(locateCandidates())
		if errors.Is(err, gitbash.ErrNotFound) {
			log.Warn("Git for Windows not found, nothing to install")
			return nil
		}
		if err != nil {
			return err
		}
	}
	log.Infof("installing into %s", gitRoot)

	url := spec.StringValue(installSpec.URL)
	archivePath := installSpec.ArchivePath()
	log.Infof("downloading %s", url)
	if err := fetch.DownloadWithProgress(newHTTPClient(), url, archivePath, spec.Int64Value(installSpec.MinSize), downloadProgress()); err != nil {
		return errors.Wrap(err, "download failed")
	}

	extractDir := installSpec.ExtractDir()
	log.Infof("extracting to %s", extractDir)
	if err := archive.Extract(archivePath, extractDir, spec.IntValue(installSpec.StripComponents)); err != nil {
		return errors.Wrap(err, "extraction failed")
	}

	log.Infof("copying %s into the Git tree", strings.Join(installSpec.Dirs, ", "))
	if err := install.InstallDirs(extractDir, gitRoot, spec.StringValue(installSpec.Prefix), installSpec.Dirs); err != nil {
		return errors.Wrap(err, "install failed")
	}

	log.Info("done, open Git Bash and run 'zsh'")
	return nil
}

// downloadProgress renders a byte progress bar unless --quiet is set.
// The bar is created on the first callback, when the total is known.
func downloadProgress() fetch.ProgressFunc {
	if quiet {
		return nil
	}
	var bar *progressbar.ProgressBar
	return func(downloaded, total int64) {
		if bar == nil {
			bar = progressbar.DefaultBytes(total, "downloading")
		}
		_ = bar.Set64(downloaded)
	}
}
