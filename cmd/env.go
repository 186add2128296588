package cmd

import (
	"os"

	"github.com/anikatalog/anikatalog/config"
	"github.com/anikatalog/anikatalog/style"
	"github.com/anikatalog/anikatalog/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

type envVar struct {
	name   string
	legacy string
}

func envVars() []envVar {
	vars := lo.Map(config.EnvExposed, func(k string, _ int) envVar {
		return envVar{name: config.EnvName(k), legacy: config.LegacyEnv[k]}
	})
	vars = append(vars, envVar{name: where.EnvConfigPath})

	slices.SortFunc(vars, func(a, b envVar) int {
		switch {
		case a.name < b.name:
			return -1
		case a.name > b.name:
			return 1
		}
		return 0
	})

	return vars
}

// envCmd displays the current process values for all supported environment variables.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long:  `Display the collection of supported environment variables and their current process values.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		for _, env := range envVars() {
			value, present := os.LookupEnv(env.name)
			if !present && env.legacy != "" {
				value, present = os.LookupEnv(env.legacy)
			}

			if (!present && setOnly) || (present && unsetOnly) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(style.Accent).Render(env.name))
			cmd.Print("=")

			if present {
				cmd.Print(style.Fg(style.Good)(value))
			} else {
				cmd.Print(style.Fg(style.Bad)("unset"))
			}

			if env.legacy != "" {
				cmd.Print(" ", style.Faint("(or "+env.legacy+")"))
			}

			cmd.Println()
		}
	},
}
