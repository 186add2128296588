package event

import "github.com/anikatalog/anikatalog/source"

// Topic names a stream of notifications.
type Topic string

const (
	TopicGetAnimes      Topic = "get-animes"
	TopicGetAnimeDetail Topic = "get-anime-detail"
	// TopicNewUpdate is reserved for new-episode notifications. Nothing publishes it yet.
	TopicNewUpdate Topic = "on-new-update"
)

// Topics returns every known topic.
func Topics() []Topic {
	return []Topic{TopicGetAnimes, TopicGetAnimeDetail, TopicNewUpdate}
}

func (t Topic) String() string {
	return string(t)
}

// AnimesPayload is published on TopicGetAnimes.
type AnimesPayload struct {
	Provider source.ProviderID    `json:"provider"`
	Animes   []source.AnimeSimple `json:"animes"`
}

// AnimeDetailPayload is published on TopicGetAnimeDetail.
type AnimeDetailPayload struct {
	Provider source.ProviderID  `json:"provider"`
	Anime    source.AnimeDetail `json:"anime"`
}

// NewUpdatePayload is published on TopicNewUpdate.
type NewUpdatePayload struct {
	Provider source.ProviderID  `json:"provider"`
	Anime    source.AnimeDetail `json:"anime"`
	Episode  source.Episode     `json:"episode"`
}
