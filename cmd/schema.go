package cmd

import (
	"fmt"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/anikatalog/anikatalog/inline"
	"github.com/anikatalog/anikatalog/source"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// schemaTargets maps every structured output of the CLI to a value of its type.
var schemaTargets = map[string]any{
	"animes":     source.ResponsePagination{},
	"anime":      source.AnimeDetail{},
	"streams":    []source.Stream{},
	"genres":     []source.Genre{},
	"characters": []source.Character{},
	"schedule":   source.Schedules{},
	"inline":     inline.Output{},
}

func schemaTargetNames() []string {
	names := lo.Keys(schemaTargets)
	sort.Strings(names)
	return names
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringP("target", "t", "inline", "Output to describe ("+strings.Join(schemaTargetNames(), ", ")+")")
	lo.Must0(schemaCmd.RegisterFlagCompletionFunc("target", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return schemaTargetNames(), cobra.ShellCompDirectiveNoFileComp
	}))
}

func newReflector() *jsonschema.Reflector {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "anime", "episode", "output":
			return filepath.Base(t.PkgPath()) + "." + name
		}

		return name
	}
	reflector.Mapper = func(t reflect.Type) *jsonschema.Schema {
		if t != reflect.TypeOf(source.Status(0)) {
			return nil
		}

		return &jsonschema.Schema{
			Type: "string",
			Enum: lo.Map(source.Statuses(), func(s source.Status, _ int) any {
				return s.String()
			}),
		}
	}

	return reflector
}

// schemaCmd generates JSON schemas for the structured outputs.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of a structured command output",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		target := lo.Must(cmd.Flags().GetString("target"))

		value, ok := schemaTargets[target]
		if !ok {
			handleErr(fmt.Errorf("unknown schema target %q, expected one of %s", target, strings.Join(schemaTargetNames(), ", ")))
		}

		handleErr(printJson(cmd.OutOrStdout(), newReflector().Reflect(value)))
	},
}
