package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hookgate/hookgate/internal/config"
	"github.com/hookgate/hookgate/internal/constants"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new hookgate rule file",
	Long: `Initialize creates a new hookgate rule file with commented example rules.

The rule file is written to .claude/hooks-rules.toml in the current
directory (or the path given with --config).

Use --force to overwrite an existing rule file.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing rule file")
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("rule file already exists at %s (use --force to overwrite)", configPath)
	}

	if dir := filepath.Dir(configPath); dir != "" {
		if err := os.MkdirAll(dir, constants.DirMode); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(configPath, config.DefaultRules(), constants.FileMode); err != nil {
		return fmt.Errorf("failed to write rule file: %w", err)
	}

	fmt.Printf("Rule file written to: %s\n", configPath)
	fmt.Println("Run 'hookgate validate' to verify your rules.")

	return nil
}
