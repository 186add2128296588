package style

import "github.com/charmbracelet/lipgloss"

// Palette roles. Most are ANSI indexes so output follows the terminal theme.
var (
	Brand   = lipgloss.Color("9")
	Heading = lipgloss.Color("13")
	Accent  = lipgloss.Color("5")
	Value   = lipgloss.Color("3")
	Good    = lipgloss.Color("2")
	Bad     = lipgloss.Color("1")
	Info    = lipgloss.Color("4")
	Section = lipgloss.Color("6")
	Ink     = lipgloss.Color("8")
)

// Airing status colors.
var (
	Ongoing  = Value
	Complete = Good
	Upcoming = Info
)

var (
	titleFg = lipgloss.Color("230")
	titleBg = lipgloss.Color("62")
)
