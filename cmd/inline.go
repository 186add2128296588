package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/anikatalog/anikatalog/filesystem"
	"github.com/anikatalog/anikatalog/inline"
	"github.com/anikatalog/anikatalog/log"
	"github.com/anikatalog/anikatalog/query"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to execute for anime discovery")
	inlineCmd.Flags().StringP("anime", "a", "", "Criteria for selecting specific anime from the search results")
	inlineCmd.Flags().StringP("episodes", "e", "", "Criteria for selecting specific episodes from the chosen anime")
	inlineCmd.Flags().BoolP("include-streams", "S", false, "Resolve the stream mirrors of the selected episodes")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))
	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Search the catalog, pick animes and episodes, and print them without any prompts.

Anime selectors:
  first - first anime in the list
  last - last anime in the list
  exact - anime whose title equals the query
  [number] - select anime by index (starting from 0)

Episode selectors:
  first - first episode in the list
  last - last episode in the list
  all - all episodes in the list
  [number] - select episode by index (starting from 0)
  [from]-[to] - select episodes by range
  @[substring]@ - select episodes by name substring

When using the json flag anime selector could be omitted. That way, it will select all animes`,
	Example: "anikatalog inline -q \"one piece\" -a first -e last -S",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if !asJson(cmd) && !cmd.Flags().Changed("anime") {
			return errors.New(`required flag "anime" not set`)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		src, opt := catalog(cmd)
		q := lo.Must(cmd.Flags().GetString("query"))

		if err := query.Remember(q, 1); err != nil {
			log.Warnf("could not remember query %q: %s", q, err)
		}

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		animePicker := mo.None[inline.AnimePicker]()
		if animeFlag := lo.Must(cmd.Flags().GetString("anime")); animeFlag != "" {
			fn, err := inline.ParseAnimePicker(animeFlag, q)
			handleErr(err)
			animePicker = mo.Some(fn)
		}

		episodesFilter := mo.None[inline.EpisodesFilter]()
		if episodeFlag := lo.Must(cmd.Flags().GetString("episodes")); episodeFlag != "" {
			fn, err := inline.ParseEpisodesFilter(episodeFlag)
			handleErr(err)
			episodesFilter = mo.Some(fn)
		}

		options := &inline.Options{
			Out:            writer,
			Source:         src,
			Option:         opt,
			Json:           asJson(cmd),
			Query:          q,
			AnimePicker:    animePicker,
			EpisodesFilter: episodesFilter,
			Streams:        lo.Must(cmd.Flags().GetBool("include-streams")),
		}

		handleErr(inline.Run(cmd.Context(), options))
	},
}
