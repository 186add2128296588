// Package icon renders status and feedback symbols in the configured variant.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/anikatalog/anikatalog/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Ongoing
	Complete
	Upcoming
	Stream
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "✖",
		kaomoji: "(×﹏×)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "…",
		kaomoji: "(・_・ヾ",
		squares: "🟦",
	},
	Ongoing: {
		emoji:   "🔥",
		nerd:    "",
		plain:   "~",
		kaomoji: "(ง •̀_•́)ง",
		squares: "🟧",
	},
	Complete: {
		emoji:   "✅",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(￣▽￣)ノ",
		squares: "🟩",
	},
	Upcoming: {
		emoji:   "📅",
		nerd:    "",
		plain:   "?",
		kaomoji: "(・・?)",
		squares: "⬜",
	},
	Stream: {
		emoji:   "📺",
		nerd:    "",
		plain:   ">",
		kaomoji: "(っ▀¯▀)つ",
		squares: "🟪",
	},
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns i in the configured variant, or "" for an unknown icon or variant.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.Get()
}
