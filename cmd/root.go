// Package cmd implements the command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/anikatalog/anikatalog/constant"
	"github.com/anikatalog/anikatalog/icon"
	"github.com/anikatalog/anikatalog/internal/app"
	"github.com/anikatalog/anikatalog/key"
	"github.com/anikatalog/anikatalog/log"
	"github.com/anikatalog/anikatalog/provider"
	"github.com/anikatalog/anikatalog/source"
	"github.com/anikatalog/anikatalog/style"
	"github.com/anikatalog/anikatalog/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("provider", "p", "", "Catalog provider to query")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("provider", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(provider.Builtins(), func(p *provider.Provider, _ int) string {
			return p.ID.String()
		}), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.ProvidersDefault, rootCmd.PersistentFlags().Lookup("provider")))

	rootCmd.PersistentFlags().BoolP("no-cache", "n", false, "Bypass the in-memory cache and always fetch")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Format the command output as JSON")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.Anikatalog,
	Short: "Browse anime catalogs from the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(style.Brand).Render("    - Browse anime catalogs from the terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	application.Close()

	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// lazyApp builds the application on first use. Close tears it down only if it was built.
type lazyApp struct {
	once     sync.Once
	build    func() *app.App
	instance *app.App
}

func (l *lazyApp) Get() *app.App {
	l.once.Do(func() { l.instance = l.build() })
	return l.instance
}

func (l *lazyApp) Close() {
	l.once.Do(func() {})
	if l.instance != nil {
		l.instance.Close()
	}
}

var application = &lazyApp{build: app.New}

// catalog resolves the selected provider and the per-call options from the global flags.
func catalog(cmd *cobra.Command) (source.Source, source.Option) {
	src, err := application.Get().Source(viper.GetString(key.ProvidersDefault))
	handleErr(err)

	return src, source.Option{
		NoCache: lo.Must(cmd.Flags().GetBool("no-cache")),
	}
}

func asJson(cmd *cobra.Command) bool {
	return lo.Must(cmd.Flags().GetBool("json"))
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		application.Close()
		os.Exit(1)
	}
}
