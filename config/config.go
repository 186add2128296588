// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"strings"

	"github.com/anikatalog/anikatalog/constant"
	"github.com/anikatalog/anikatalog/filesystem"
	"github.com/anikatalog/anikatalog/key"
	"github.com/anikatalog/anikatalog/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// LegacyEnv maps configuration keys to environment variables that predate the ANIKATALOG_ prefix.
// They are consulted after the prefixed variable.
var LegacyEnv = map[string]string{
	key.ProvidersAnimasuBaseURL: "ANIMASU_BASE_URL",
}

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.Anikatalog)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Anikatalog)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		if legacy, ok := LegacyEnv[env]; ok {
			viper.MustBindEnv(env, EnvName(env), legacy)
			continue
		}
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// EnvName returns the prefixed environment variable bound to a configuration key.
func EnvName(k string) string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(k))
	prefix := strings.ToUpper(constant.Anikatalog + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}
