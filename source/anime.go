package source

// Unknown is the sentinel for detail fields that could not be extracted.
const Unknown = "Unknown"

// AnimeSimple is a catalog list item.
type AnimeSimple struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Image   string `json:"image"`
	Type    string `json:"type"`
	Episode string `json:"episode"`
	Status  Status `json:"status"`
}

func (a AnimeSimple) String() string {
	return a.Title
}

// AnimeDetail is a full catalog entry.
type AnimeDetail struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Synonym        string      `json:"synonym"`
	Synopsis       string      `json:"synopsis"`
	Image          string      `json:"image"`
	Rating         float64     `json:"rating"`
	Author         string      `json:"author"`
	Studio         string      `json:"studio"`
	Season         string      `json:"season"`
	Genres         []Genre     `json:"genres"`
	CharacterTypes []Character `json:"characterTypes"`
	Status         Status      `json:"status"`
	Aired          string      `json:"aired"`
	Type           string      `json:"type"`
	Episode        string      `json:"episode"`
	Duration       string      `json:"duration"`
	Trailer        string      `json:"trailer"`
	UpdatedAt      string      `json:"updateAt"`
	Episodes       []Episode   `json:"episodes"`
	Batches        []Batch     `json:"batches"`
}

func (a AnimeDetail) String() string {
	return a.Title
}

// Episode references a single episode page.
type Episode struct {
	Episode string `json:"episode"`
	Slug    string `json:"slug"`
}

func (e Episode) String() string {
	return e.Episode
}

// Batch is a bulk-download mirror for one resolution.
type Batch struct {
	Name       string `json:"name"`
	Resolution string `json:"resolution"`
	URL        string `json:"url"`
}

// Character is a character-type tag.
type Character struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Genre is a genre tag.
type Genre struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Stream is a playable mirror of an episode.
type Stream struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// String returns the mirror name, or the URL when the mirror is unnamed.
func (s Stream) String() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}

// ResponsePagination is one page of a paged listing.
type ResponsePagination struct {
	Data    []AnimeSimple `json:"data"`
	HasNext bool          `json:"hasNext"`
}

// EmptyPage is the safe default for paged listings.
func EmptyPage() ResponsePagination {
	return ResponsePagination{Data: []AnimeSimple{}, HasNext: false}
}
