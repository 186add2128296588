package inline

import (
	"encoding/json"

	"github.com/anikatalog/anikatalog/source"
)

type Episode struct {
	source.Episode
	// Streams is only filled when streams were requested.
	Streams []source.Stream `json:"streams,omitempty"`
}

type Anime struct {
	// Source is the name of the provider.
	Source   string             `json:"source"`
	Anime    source.AnimeDetail `json:"anime"`
	Episodes []Episode          `json:"episodes"`
}

type Output struct {
	Query  string   `json:"query"`
	Result []*Anime `json:"result"`
}

func asJson(result []*Anime, query string) ([]byte, error) {
	if result == nil {
		result = []*Anime{}
	}

	return json.Marshal(&Output{
		Query:  query,
		Result: result,
	})
}
