package cmd

import (
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
	"github.com/zsh-install/zshup/pkg/config"
)

var (
	// Global flags
	configFile string
	gitRootArg string
	verbose    bool
	quiet      bool
)

// RootCmd represents the base command when called without any subcommands.
// Running it with no arguments performs the full installation.
var RootCmd = &cobra.Command{
	Use:   "zshup",
	Short: "Install the Zsh shell into Git for Windows",
	Long: `zshup downloads a prebuilt Zsh distribution and merges it into an
existing Git for Windows installation, so zsh can be started from Git Bash.

Run it with no arguments to perform the full sequence: locate Git for
Windows, download the distribution archive, extract it, and copy its
files into the Git tree.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetHandler(cli.Default)
		if verbose {
			log.SetLevel(log.DebugLevel)
			log.Debugf("Verbose logging enabled")
		} else if quiet {
			log.SetLevel(log.ErrorLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	},
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	// Disable automatic command sorting to maintain semantic order
	cobra.EnableCommandSorting = false

	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file (default: "+config.DefaultConfigPathYML+")")
	RootCmd.PersistentFlags().StringVar(&gitRootArg, "git-root", "", "Path to the Git for Windows installation (skips auto-detection)")
	RootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Increase log verbosity")
	RootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress progress output")

	RootCmd.AddGroup(&cobra.Group{
		ID:    "workflow",
		Title: "Workflow Commands:",
	})
	RootCmd.AddGroup(&cobra.Group{
		ID:    "utility",
		Title: "Utility Commands:",
	})
	RootCmd.SetHelpCommandGroupID("utility")
	RootCmd.SetCompletionCommandGroupID("utility")

	InstallCommand.GroupID = "workflow"
	CheckCommand.GroupID = "workflow"
	InitCommand.GroupID = "utility"

	RootCmd.AddCommand(InstallCommand) // Explicit form of the default action
	RootCmd.AddCommand(CheckCommand)   // Report the target environment
	RootCmd.AddCommand(InitCommand)    // Write a default config file
}
