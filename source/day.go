package source

import (
	"fmt"
	"strings"
)

// Day is a schedule key: a weekday in the source locale or Random for
// titles updated on no fixed day.
type Day string

const (
	Senin  Day = "senin"
	Selasa Day = "selasa"
	Rabu   Day = "rabu"
	Kamis  Day = "kamis"
	Jumat  Day = "jumat"
	Sabtu  Day = "sabtu"
	Minggu Day = "minggu"
	Random Day = "random"
)

// Days returns the eight schedule keys in canonical order.
func Days() []Day {
	return []Day{Senin, Selasa, Rabu, Kamis, Jumat, Sabtu, Minggu, Random}
}

// Valid reports whether d is one of the eight schedule keys.
func (d Day) Valid() bool {
	for _, day := range Days() {
		if d == day {
			return true
		}
	}
	return false
}

// ParseDay validates a user supplied day key.
func ParseDay(s string) (Day, error) {
	d := Day(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown day %q", s)
	}
	return d, nil
}

// Schedules maps every schedule key to the titles released on it.
type Schedules map[Day][]AnimeSimple

// NewSchedules returns a schedule with all eight keys present and empty.
func NewSchedules() Schedules {
	s := make(Schedules, len(Days()))
	for _, d := range Days() {
		s[d] = []AnimeSimple{}
	}
	return s
}
