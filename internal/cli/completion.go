package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/amterp/ra"
	"github.com/samber/lo"
)

// completeConfigKeys returns config keys matching the given prefix.
func completeConfigKeys(toComplete string) ([]string, ra.CompletionDirective) {
	names := lo.Map(configKeys, func(k configKey, _ int) string { return k.Name })
	return lo.Filter(names, func(name string, _ int) bool {
		return strings.HasPrefix(name, toComplete)
	}), ra.CompletionDirectiveNoFileComp
}

// registerCompletion adds the "swatch completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}
