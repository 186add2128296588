package version

import (
	"context"
	"fmt"
	"time"

	"github.com/anikatalog/anikatalog/constant"
	"github.com/anikatalog/anikatalog/icon"
	"github.com/anikatalog/anikatalog/key"
	"github.com/anikatalog/anikatalog/network"
	"github.com/anikatalog/anikatalog/style"
	"github.com/anikatalog/anikatalog/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release than the running one exists.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx, network.NewFetcher(nil))
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(style.Good)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/anikatalog/anikatalog/releases/tag/v"+latest),
	)
}
