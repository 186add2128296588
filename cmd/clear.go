package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/anikatalog/anikatalog/icon"
	"github.com/anikatalog/anikatalog/style"
	"github.com/anikatalog/anikatalog/util"
	"github.com/anikatalog/anikatalog/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// artifact is something on disk the application can recreate on demand.
type artifact struct {
	flag, short string
	what        string
	path        func() string
}

var artifacts = []artifact{
	{flag: "cache", short: "c", what: "cache directory", path: where.Cache},
	{flag: "queries", short: "q", what: "search history", path: where.Queries},
	{flag: "version", what: "release record", path: where.Version},
}

// selectArtifacts returns the artifacts whose flag is set, or all of them when every is true.
func selectArtifacts(every bool, isSet func(flag string) bool) []artifact {
	if every {
		return artifacts
	}

	return lo.Filter(artifacts, func(a artifact, _ int) bool {
		return isSet(a.flag)
	})
}

// removeArtifacts deletes each artifact and reports how many existed.
func removeArtifacts(out io.Writer, selected []artifact) (int, error) {
	var removed int
	for _, a := range selected {
		err := util.Delete(a.path())
		switch {
		case errors.Is(err, os.ErrNotExist):
			_, _ = fmt.Fprintf(out, "%s %s %s\n", style.Faint("·"), a.what, style.Faint("already absent"))
		case err != nil:
			return removed, fmt.Errorf("%s: %w", a.what, err)
		default:
			removed++
			_, _ = fmt.Fprintf(out, "%s %s removed\n", style.Fg(style.Good)(icon.Get(icon.Success)), a.what)
		}
	}
	return removed, nil
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolP("all", "a", false, "Remove everything listed below")

	for _, a := range artifacts {
		help := "Remove the " + a.what
		if a.short != "" {
			clearCmd.Flags().BoolP(a.flag, a.short, false, help)
		} else {
			clearCmd.Flags().Bool(a.flag, false, help)
		}
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached data from disk",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		selected := selectArtifacts(lo.Must(cmd.Flags().GetBool("all")), func(flag string) bool {
			return lo.Must(cmd.Flags().GetBool(flag))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		removed, err := removeArtifacts(cmd.OutOrStdout(), selected)
		handleErr(err)

		if len(selected) > 1 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), style.Faint(util.Quantify(removed, "item", "items")+" removed"))
		}
	},
}
