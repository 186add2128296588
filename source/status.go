package source

import (
	"encoding/json"
	"fmt"
)

// Status is the airing state of an anime. The zero value is StatusUpcoming.
type Status int

const (
	StatusUpcoming Status = iota
	StatusOngoing
	StatusComplete
)

var statusNames = map[Status]string{
	StatusUpcoming: "UPCOMING",
	StatusOngoing:  "ONGOING",
	StatusComplete: "COMPLETE",
}

// Statuses returns every status in declaration order.
func Statuses() []Status {
	return []Status{StatusUpcoming, StatusOngoing, StatusComplete}
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[StatusUpcoming]
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	for status, n := range statusNames {
		if n == name {
			*s = status
			return nil
		}
	}

	return fmt.Errorf("unknown status %q", name)
}
