package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/anikatalog/anikatalog/icon"
	"github.com/anikatalog/anikatalog/key"
	"github.com/anikatalog/anikatalog/source"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Field is a registered configuration key with its default and the constraints on its value.
type Field struct {
	Key         string
	Value       any
	Description string

	// Unit names what an int value counts, e.g. minutes.
	Unit string
	// Choices lists the accepted values of a string field. Empty means free-form.
	Choices []string
	// Min is the smallest accepted value of an int field.
	Min mo.Option[int]

	check func(any) error
}

// Section is the first segment of the key, e.g. "cache" for "cache.ttl".
func (f Field) Section() string {
	section, _, _ := strings.Cut(f.Key, ".")
	return section
}

// Env returns the environment variable name for this field.
func (f Field) Env() string {
	return EnvName(f.Key)
}

// Current returns the effective value.
func (f Field) Current() any {
	return viper.Get(f.Key)
}

// IsDefault reports whether the effective value equals the registered default.
func (f Field) IsDefault() bool {
	return fmt.Sprint(f.Current()) == fmt.Sprint(f.Value)
}

// TypeName is the name of the value type as shown to users.
func (f Field) TypeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Parse converts command-line arguments to the field's type and validates the result.
func (f Field) Parse(raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: missing value", f.Key)
	}

	var value any
	switch f.Value.(type) {
	case string:
		value = raw[0]
	case int:
		n, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", f.Key, raw[0])
		}
		value = n
	case bool:
		b, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a boolean", f.Key, raw[0])
		}
		value = b
	case []string:
		value = raw
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", f.Key, f.Value)
	}

	if err := f.Validate(value); err != nil {
		return nil, err
	}

	return value, nil
}

// Validate checks value against the field's choices, minimum and custom rule.
func (f Field) Validate(value any) error {
	if s, ok := value.(string); ok && len(f.Choices) > 0 && !lo.Contains(f.Choices, s) {
		return fmt.Errorf("%s: %q is not one of %s", f.Key, s, strings.Join(f.Choices, ", "))
	}

	if n, ok := value.(int); ok {
		if min, ok := f.Min.Get(); ok && n < min {
			return fmt.Errorf("%s: %d is below the minimum of %d", f.Key, n, min)
		}
	}

	if f.check != nil {
		if err := f.check(value); err != nil {
			return fmt.Errorf("%s: %w", f.Key, err)
		}
	}

	return nil
}

// MarshalJSON includes the effective value next to the default and the constraints.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		Section     string   `json:"section"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		Unit        string   `json:"unit,omitempty"`
		Choices     []string `json:"choices,omitempty"`
		Min         *int     `json:"min,omitempty"`
		Env         string   `json:"env"`
	}{
		Key:         f.Key,
		Section:     f.Section(),
		Value:       f.Current(),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.TypeName(),
		Unit:        f.Unit,
		Choices:     f.Choices,
		Min:         f.Min.ToPointer(),
		Env:         f.Env(),
	})
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables, in registration order.
var EnvExposed []string

// Fields returns every registered field in registration order, which groups them by section.
func Fields() []Field {
	return lo.Map(EnvExposed, func(k string, _ int) Field {
		return Default[k]
	})
}

// Lookup returns the field registered under k.
func Lookup(k string) (Field, error) {
	if f, ok := Default[k]; ok {
		return f, nil
	}

	return Field{}, fmt.Errorf("unknown key %s, did you mean %s?", k, Closest(k))
}

// Closest returns the registered key with the smallest edit distance to k.
func Closest(k string) string {
	return lo.MinBy(EnvExposed, func(a, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})
}

// Check validates every effective value and returns one error per invalid field.
func Check() []error {
	var errs []error
	for _, f := range Fields() {
		if err := f.Validate(f.Current()); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

type option func(*Field)

func unit(u string) option {
	return func(f *Field) { f.Unit = u }
}

func atLeast(min int) option {
	return func(f *Field) { f.Min = mo.Some(min) }
}

func oneOf(choices ...string) option {
	return func(f *Field) { f.Choices = choices }
}

func httpURL(value any) error {
	raw, _ := value.(string)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%q is not an http(s) address", raw)
	}
	return nil
}

func init() {
	register := func(k string, v any, desc string, opts ...option) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}

		f := Field{Key: k, Value: v, Description: desc}
		for _, opt := range opts {
			opt(&f)
		}

		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	providers := lo.Map(source.ProviderIDs(), func(id source.ProviderID, _ int) string {
		return id.String()
	})
	// logrus prints WarnLevel as "warning" but parses "warn" too
	levels := append(lo.Map(logrus.AllLevels, func(l logrus.Level, _ int) string {
		return l.String()
	}), "warn")

	register(key.ProvidersDefault, source.Animasu.String(), "Provider used when --provider is not given", oneOf(providers...))
	register(key.ProvidersAnimasuBaseURL, "https://v0.animasu.app/", "Base address of the Animasu site.\nANIMASU_BASE_URL is honoured as well", func(f *Field) { f.check = httpURL })

	register(key.CacheTTL, 60, "How long a fetched result stays in the in-memory cache", unit("minutes"), atLeast(1))
	register(key.CacheSize, 512, "Maximum number of cached results. 0 means unbounded", unit("entries"), atLeast(0))

	register(key.NetworkTimeout, 60, "HTTP timeout for every remote fetch", unit("seconds"), atLeast(1))
	register(key.NetworkTLSFingerprint, false, "Use a Chrome TLS fingerprint for remote fetches.\nHelps with sites sitting behind anti-bot proxies")
	register(key.NetworkRateLimit, 0, "Maximum requests sent to a provider. 0 means unlimited", unit("requests/second"), atLeast(0))

	register(key.EventsLog, false, "Log every notification published on the event bus")

	register(key.SearchShowQuerySuggestions, true, "Suggest previous search queries during shell completion")
	register(key.SearchRememberQueries, true, "Remember search queries for later suggestions")

	register(key.IconsVariant, "plain", "Icons variant. nerd requires a nerd font", oneOf(icon.AvailableVariants()...))

	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Minimum level of written logs", oneOf(levels...))
	register(key.LogsJson, false, "Use json format for logs")

	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}
