package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/anikatalog/anikatalog/config"
	"github.com/anikatalog/anikatalog/icon"
	"github.com/anikatalog/anikatalog/style"
	"github.com/anikatalog/anikatalog/util"
	"github.com/muesli/reflow/indent"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Without(config.EnvExposed, args...), cobra.ShellCompDirectiveNoFileComp
}

// lookupFields resolves keys to fields, or every field when keys is empty.
func lookupFields(keys []string) ([]config.Field, error) {
	if len(keys) == 0 {
		return config.Fields(), nil
	}

	fields := make([]config.Field, 0, len(keys))
	for _, k := range keys {
		f, err := config.Lookup(k)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// saveConfig writes the in-memory settings, creating the file on first use.
func saveConfig() error {
	err := viper.WriteConfig()
	if errors.As(err, new(viper.ConfigFileNotFoundError)) {
		return viper.SafeWriteConfig()
	}
	return err
}

func renderValue(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(style.Good)("true")
		}
		return style.Fg(style.Bad)("false")
	case string:
		if value == "" {
			return style.Faint(`""`)
		}
		return style.Fg(style.Value)(value)
	default:
		return style.Fg(style.Value)(fmt.Sprint(value))
	}
}

func renderField(out io.Writer, f config.Field) {
	value := renderValue(f.Current())
	if f.Unit != "" {
		value += " " + style.Faint(f.Unit)
	}
	if !f.IsDefault() {
		value += " " + style.Faint("(default "+fmt.Sprint(f.Value)+")")
	}

	_, _ = fmt.Fprintf(out, "%s = %s\n", style.Fg(style.Accent)(f.Key), value)

	details := []string{f.Description, "env " + f.Env()}
	if len(f.Choices) > 0 {
		details = append(details, "one of "+strings.Join(f.Choices, ", "))
	}
	if min, ok := f.Min.Get(); ok {
		details = append(details, fmt.Sprintf("at least %d", min))
	}

	_, _ = fmt.Fprintln(out, style.Faint(indent.String(strings.Join(details, "\n"), 2)))
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change settings",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key...]",
	Short:             "Show settings grouped by section, with their constraints",
	Aliases:           []string{"list", "ls"},
	ValidArgsFunction: completeConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		fields, err := lookupFields(args)
		handleErr(err)

		if asJson(cmd) {
			handleErr(printJson(cmd.OutOrStdout(), fields))
			return
		}

		out := cmd.OutOrStdout()
		for i, f := range fields {
			if i == 0 || fields[i-1].Section() != f.Section() {
				if i > 0 {
					_, _ = fmt.Fprintln(out)
				}
				_, _ = fmt.Fprintln(out, style.Tag(style.Ink, style.Section)(f.Section()))
			}
			renderField(out, f)
		}
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the effective value of a setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		f, err := config.Lookup(args[0])
		handleErr(err)

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), f.Current())
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

var configSetCmd = &cobra.Command{
	Use:     "set <key> <value...>",
	Short:   "Validate and persist a new value",
	Example: "anikatalog config set cache.ttl 15\nanikatalog config set providers.animasu.base_url https://mirror.example/",
	Args:    cobra.MinimumNArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		switch len(args) {
		case 0:
			return completeConfigKeys(cmd, args, toComplete)
		case 1:
			if f, err := config.Lookup(args[0]); err == nil && len(f.Choices) > 0 {
				return f.Choices, cobra.ShellCompDirectiveNoFileComp
			}
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		f, err := config.Lookup(args[0])
		handleErr(err)

		value, err := f.Parse(args[1:])
		handleErr(err)

		viper.Set(f.Key, value)
		handleErr(saveConfig())

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", style.Fg(style.Good)(icon.Get(icon.Success)), style.Fg(style.Accent)(f.Key), renderValue(value))
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every setting")
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key...]",
	Short:             "Restore settings to their defaults",
	ValidArgsFunction: completeConfigKeys,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && !lo.Must(cmd.Flags().GetBool("all")) {
			return errors.New("name the keys to reset or pass --all")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fields, err := lookupFields(args)
		handleErr(err)

		for _, f := range fields {
			viper.Set(f.Key, f.Value)
		}
		handleErr(saveConfig())

		for _, f := range fields {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", style.Fg(style.Good)(icon.Get(icon.Success)), style.Fg(style.Accent)(f.Key), renderValue(f.Value))
		}
	},
}

func init() {
	configCmd.AddCommand(configCheckCmd)
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the effective settings from file and environment",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		errs := config.Check()
		if len(errs) == 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s valid\n", style.Fg(style.Good)(icon.Get(icon.Success)), util.Quantify(len(config.Fields()), "setting", "settings"))
			return
		}

		for _, err := range errs {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", style.Fg(style.Bad)(icon.Get(icon.Fail)), err)
		}
		handleErr(fmt.Errorf("%s invalid", util.Quantify(len(errs), "setting is", "settings are")))
	},
}
