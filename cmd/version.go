package cmd

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/anikatalog/anikatalog/constant"
	"github.com/anikatalog/anikatalog/network"
	"github.com/anikatalog/anikatalog/style"
	"github.com/anikatalog/anikatalog/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type buildInfo struct {
	Version  string `json:"version"`
	Revision string `json:"revision"`
	BuiltAt  string `json:"builtAt"`
	BuiltBy  string `json:"builtBy"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
	Latest   string `json:"latest,omitempty"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:  constant.Version,
		Revision: constant.Revision,
		BuiltAt:  strings.TrimSpace(constant.BuiltAt),
		BuiltBy:  constant.BuiltBy,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func renderBuild(out io.Writer, b buildInfo) {
	_, _ = fmt.Fprintf(out, "%s %s\n\n", style.Fg(style.Accent)("▇▇▇"), style.Fg(style.Accent)(constant.Anikatalog))

	field(out, "Version", style.Bold(b.Version))
	field(out, "Revision", b.Revision)
	field(out, "Built", fmt.Sprintf("%s by %s", b.BuiltAt, b.BuiltBy))
	field(out, "Go", b.Go)
	field(out, "Platform", b.Platform)
	field(out, "Latest", b.Latest)
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Print the version string only")
	versionCmd.Flags().BoolP("check", "c", false, "Look up the latest released version")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		if lo.Must(cmd.Flags().GetBool("short")) {
			_, _ = fmt.Fprintln(out, constant.Version)
			return
		}

		b := currentBuild()
		if lo.Must(cmd.Flags().GetBool("check")) {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			latest, err := version.Latest(ctx, network.NewFetcher(nil))
			cancel()
			handleErr(err)
			b.Latest = latest
		}

		if asJson(cmd) {
			handleErr(printJson(out, b))
			return
		}

		renderBuild(out, b)
		if b.Latest == "" {
			version.Notify()
		}
	},
}
