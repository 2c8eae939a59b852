package main

import (
	"strings"

	"github.com/jacksmith/daily/internal/cli"
	"github.com/jacksmith/daily/internal/model"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for daily.

To load completions:

Bash:
  $ source <(daily completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ daily completion bash > /etc/bash_completion.d/daily
  # macOS:
  $ daily completion bash > $(brew --prefix)/etc/bash_completion.d/daily

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ daily completion zsh > "${fpath[1]}/_daily"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ daily completion fish | source
  # To load completions for each session, execute once:
  $ daily completion fish > ~/.config/fish/completions/daily.fish
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Long:  "Generate the autocompletion script for bash.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(out)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Long:  "Generate the autocompletion script for zsh.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(out)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Long:  "Generate the autocompletion script for fish.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(out, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeTaskIDs completes the IDs of pending tasks.
func completeTaskIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeIDs(func(t model.Task) bool { return !t.Completed }, toComplete)
}

// completeDoneTaskIDs completes the IDs of completed tasks.
func completeDoneTaskIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeIDs(func(t model.Task) bool { return t.Completed }, toComplete)
}

// completeAllTaskIDs completes the IDs of every task.
func completeAllTaskIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeIDs(func(model.Task) bool { return true }, toComplete)
}

// completeIDs offers full IDs of the tasks keep accepts, described by name.
func completeIDs(keep func(model.Task) bool, toComplete string) ([]string, cobra.ShellCompDirective) {
	a, err := openApp()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer a.close()

	var completions []string
	for _, t := range a.store.List() {
		if !keep(t) {
			continue
		}
		id := model.FormatID(t.ID)
		if strings.HasPrefix(id, toComplete) {
			completions = append(completions, id+"\t"+cli.Truncate(t.Name, 40))
		}
	}

	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completePriorities completes priority names.
func completePriorities(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, p := range model.Priorities {
		if strings.HasPrefix(string(p), strings.ToLower(toComplete)) {
			completions = append(completions, string(p))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
