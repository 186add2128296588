package cmd

import (
	"fmt"

	"github.com/anikatalog/anikatalog/icon"
	"github.com/anikatalog/anikatalog/key"
	"github.com/anikatalog/anikatalog/provider"
	"github.com/anikatalog/anikatalog/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(providersCmd)
}

var providersCmd = &cobra.Command{
	Use:     "providers",
	Short:   "Manage catalog providers",
	Aliases: []string{"sources"},
}

func init() {
	providersCmd.AddCommand(providersListCmd)
	providersListCmd.Flags().BoolP("raw", "r", false, "Print only the provider identifiers")
}

type providerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available catalog providers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		selected, _ := provider.Get(viper.GetString(key.ProvidersDefault))

		infos := lo.Map(provider.Builtins(), func(p *provider.Provider, _ int) providerInfo {
			return providerInfo{
				ID:      p.ID.String(),
				Name:    p.Name,
				Default: selected != nil && selected.ID == p.ID,
			}
		})

		if asJson(cmd) {
			handleErr(printJson(cmd.OutOrStdout(), infos))
			return
		}

		raw := lo.Must(cmd.Flags().GetBool("raw"))
		for _, info := range infos {
			if raw {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), info.ID)
				continue
			}

			mark := " "
			if info.Default {
				mark = style.Fg(style.Good)(icon.Get(icon.Success))
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", mark, style.Bold(info.Name), style.Faint(info.ID))
		}
	},
}
