package version

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/anikatalog/anikatalog/filesystem"
	"github.com/anikatalog/anikatalog/network"
	"github.com/anikatalog/anikatalog/where"
	"github.com/metafates/gache"
)

// ReleasesURL is the endpoint describing the latest published release.
const ReleasesURL = "https://api.github.com/repos/anikatalog/anikatalog/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       where.Version(),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the newest released version, without the "v" prefix.
// The answer is cached on disk for two days.
func Latest(ctx context.Context, fetcher network.Fetcher) (string, error) {
	cached, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && cached != "" {
		return cached, nil
	}

	body, err := fetcher.Fetch(ctx, ReleasesURL, nil)
	if err != nil {
		return "", err
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err := json.Unmarshal(body, &release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	_ = versionCacher.Set(latest)
	return latest, nil
}
