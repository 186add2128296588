package cmd

import (
	"fmt"
	"strings"

	"github.com/anikatalog/anikatalog/key"
	"github.com/anikatalog/anikatalog/log"
	"github.com/anikatalog/anikatalog/query"
	"github.com/anikatalog/anikatalog/source"
	"github.com/anikatalog/anikatalog/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(animesCmd)

	animesCmd.Flags().IntP("page", "P", 1, "Result page")
	animesCmd.Flags().StringP("sort", "s", "", "Sort order (update, popular, rating, latest, title)")
	animesCmd.Flags().StringSliceP("genre", "g", nil, "Filter by genre slug")
	animesCmd.Flags().StringSlice("season", nil, "Filter by season slug")
	animesCmd.Flags().StringSliceP("character", "c", nil, "Filter by character type slug")
	animesCmd.Flags().String("status", "", "Filter by airing status")
	animesCmd.Flags().StringP("type", "t", "", "Filter by anime type")

	lo.Must0(animesCmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"update", "popular", "rating", "latest", "title"}, cobra.ShellCompDirectiveNoFileComp
	}))
}

var animesCmd = &cobra.Command{
	Use:     "animes [query]",
	Short:   "List or search the catalog",
	Aliases: []string{"search", "ls"},
	Example: "anikatalog animes --sort popular\nanikatalog animes one piece --genre action",
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if !viper.GetBool(key.SearchShowQuerySuggestions) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		return query.SuggestMany(strings.Join(append(args, toComplete), " ")), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		src, opt := catalog(cmd)

		params := &source.AnimesParams{
			Search:         strings.Join(args, " "),
			Page:           lo.Must(cmd.Flags().GetInt("page")),
			Sort:           lo.Must(cmd.Flags().GetString("sort")),
			Genres:         lo.Must(cmd.Flags().GetStringSlice("genre")),
			Seasons:        lo.Must(cmd.Flags().GetStringSlice("season")),
			CharacterTypes: lo.Must(cmd.Flags().GetStringSlice("character")),
			Status:         lo.Must(cmd.Flags().GetString("status")),
			Type:           lo.Must(cmd.Flags().GetString("type")),
		}

		if params.Search != "" {
			if err := query.Remember(params.Search, 1); err != nil {
				log.Warnf("could not remember query %q: %s", params.Search, err)
			}
		}

		page := src.ListAnimes(cmd.Context(), params, opt)
		if asJson(cmd) {
			handleErr(printJson(cmd.OutOrStdout(), page))
			return
		}

		renderPage(cmd.OutOrStdout(), page, params.Page)
	},
}

func init() {
	rootCmd.AddCommand(animeCmd)
}

var animeCmd = &cobra.Command{
	Use:     "anime <slug>",
	Short:   "Show the details of an anime",
	Aliases: []string{"detail", "info"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, opt := catalog(cmd)

		detail, ok := src.GetAnimeDetail(cmd.Context(), args[0], opt).Get()
		if !ok {
			handleErr(fmt.Errorf("anime %q not found on %s", args[0], src.Name()))
		}

		if asJson(cmd) {
			handleErr(printJson(cmd.OutOrStdout(), detail))
			return
		}

		renderDetail(cmd.OutOrStdout(), detail)
	},
}

func init() {
	rootCmd.AddCommand(streamsCmd)
}

var streamsCmd = &cobra.Command{
	Use:     "streams <episode-slug>",
	Short:   "List the stream mirrors of an episode",
	Aliases: []string{"watch"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, opt := catalog(cmd)

		streams := src.GetStreams(cmd.Context(), args[0], opt)
		if asJson(cmd) {
			handleErr(printJson(cmd.OutOrStdout(), streams))
			return
		}

		renderStreams(cmd.OutOrStdout(), streams)
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the genres known to the provider",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		src, opt := catalog(cmd)

		genres := src.ListGenres(cmd.Context(), opt)
		if asJson(cmd) {
			handleErr(printJson(cmd.OutOrStdout(), genres))
			return
		}

		renderTags(cmd.OutOrStdout(), genres)
	},
}

func init() {
	rootCmd.AddCommand(charactersCmd)
}

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "List the character types known to the provider",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		src, opt := catalog(cmd)

		characters := src.ListCharacterTypes(cmd.Context(), opt)
		if asJson(cmd) {
			handleErr(printJson(cmd.OutOrStdout(), characters))
			return
		}

		renderTags(cmd.OutOrStdout(), characters)
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [day]",
	Short: "Show the weekly release schedule",
	Long:  "Show the weekly release schedule, or only the titles released on the given day.",
	Args:  cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		return lo.Map(source.Days(), func(d source.Day, _ int) string {
			return string(d)
		}), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		src, opt := catalog(cmd)

		if len(args) == 0 {
			schedules := src.GetWeeklySchedule(cmd.Context(), opt)
			if asJson(cmd) {
				handleErr(printJson(cmd.OutOrStdout(), schedules))
				return
			}

			renderSchedule(cmd.OutOrStdout(), schedules)
			return
		}

		day, err := source.ParseDay(args[0])
		handleErr(err)

		animes := src.ListAnimesByDay(cmd.Context(), day, opt)
		if asJson(cmd) {
			handleErr(printJson(cmd.OutOrStdout(), animes))
			return
		}

		renderAnimes(cmd.OutOrStdout(), animes)
	},
}

func init() {
	rootCmd.AddCommand(alphabetCmd)
	alphabetCmd.Flags().IntP("page", "P", 1, "Result page")
}

var alphabetCmd = &cobra.Command{
	Use:   "alphabet <letter>",
	Short: "Browse the A-Z index",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, opt := catalog(cmd)

		page := util.Max(lo.Must(cmd.Flags().GetInt("page")), 1)
		result := src.ListAnimesByAlphabet(cmd.Context(), args[0], page, opt)
		if asJson(cmd) {
			handleErr(printJson(cmd.OutOrStdout(), result))
			return
		}

		renderPage(cmd.OutOrStdout(), result, page)
	},
}
