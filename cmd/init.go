package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/zsh-install/zshup/pkg/config"
	"github.com/zsh-install/zshup/pkg/spec"
)

var (
	// Flags for init command
	initVariant    string
	initOutputFile string
	initForce      bool
)

// promptForConfirmation prompts the user for confirmation and returns true if they confirm
func promptForConfirmation(message string) bool {
	fmt.Printf("%s (y/N): ", message)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// InitCommand writes a default config file for one of the distribution
// variants, as a starting point for overrides.
var InitCommand = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Example: `  # Write the defaults for the zip release
  zshup init

  # Write the defaults for the tar.gz release
  zshup init --variant tar.gz

  # Write to a custom location, overwriting without confirmation
  zshup init -o zshup.yml --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default(spec.Variant(initVariant))
		if err := cfg.Validate(); err != nil {
			return errors.Wrap(err, "invalid --variant")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config")
		}

		outputFile := initOutputFile
		if outputFile == "" {
			outputFile = config.DefaultConfigPathYML
		}

		if _, err := os.Stat(outputFile); err == nil && !initForce {
			if !promptForConfirmation(fmt.Sprintf("%s already exists. Overwrite?", outputFile)) {
				log.Info("aborted")
				return nil
			}
		}

		if dir := filepath.Dir(outputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrap(err, "failed to create config directory")
			}
		}
		if err := os.WriteFile(outputFile, yamlData, 0644); err != nil {
			return errors.Wrapf(err, "failed to write config file: %s", outputFile)
		}

		log.Infof("wrote %s", outputFile)
		return nil
	},
}

func init() {
	InitCommand.Flags().StringVar(&initVariant, "variant", string(spec.VariantZip), "Distribution variant (zip or tar.gz)")
	InitCommand.Flags().StringVarP(&initOutputFile, "output", "o", "", "Output path (default: "+config.DefaultConfigPathYML+")")
	InitCommand.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file without confirmation")
}
