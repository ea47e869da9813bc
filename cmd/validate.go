package cmd

import (
	"fmt"

	"github.com/hookgate/hookgate/internal/config"
	"github.com/hookgate/hookgate/internal/hook"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the rule file and show compiled rules",
	Long: `Validate loads the hookgate rule file, compiles every rule, and displays
them in evaluation order.

This is useful for:
- Checking that your rule file syntax is correct
- Seeing the exact order rules are evaluated in
- Debugging matcher and when-condition regexes`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	file, err := config.Load(configPath)
	if err != nil {
		return err
	}

	rules, err := hook.CompileRules(file.Rules)
	if err != nil {
		return err
	}

	fmt.Printf("Configuration valid: %d rules\n", len(rules))
	for _, r := range rules {
		fmt.Println()
		fmt.Printf("%s (priority %d)\n", r.Name, r.Priority)
		fmt.Printf("  event:   %s\n", r.Event)
		fmt.Printf("  matcher: %s\n", r.Matcher.String())
		fmt.Printf("  action:  %s\n", r.Action)
		if r.When != nil {
			for _, re := range r.When.Command {
				fmt.Printf("  when.command:   %s\n", re.String())
			}
			for _, re := range r.When.FilePath {
				fmt.Printf("  when.file_path: %s\n", re.String())
			}
			for _, branch := range r.When.Branch {
				fmt.Printf("  when.branch:    %s\n", branch)
			}
		}
		switch r.Action {
		case hook.ActionTransform:
			fmt.Printf("  transform: s/%s/%s/\n", r.Transform.Pattern.String(), r.Transform.Replacement)
		case hook.ActionRun:
			fmt.Printf("  command:     %s\n", r.RunCommand)
			fmt.Printf("  working_dir: %s\n", r.WorkingDir)
		case hook.ActionLog:
			fmt.Printf("  log_file: %s\n", r.LogFile)
		}
	}

	return nil
}
