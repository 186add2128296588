// Package main is the entry point for the anikatalog application.
package main

import (
	"github.com/anikatalog/anikatalog/cmd"
	"github.com/anikatalog/anikatalog/config"
	"github.com/anikatalog/anikatalog/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
