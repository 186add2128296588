// Package app wires the shared collaborators of one running instance.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/anikatalog/anikatalog/event"
	"github.com/anikatalog/anikatalog/internal/cache"
	"github.com/anikatalog/anikatalog/key"
	"github.com/anikatalog/anikatalog/log"
	"github.com/anikatalog/anikatalog/network"
	"github.com/anikatalog/anikatalog/provider"
	"github.com/anikatalog/anikatalog/source"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

// App owns the cache store, the event bus and the fetcher that sources share.
type App struct {
	services *provider.Services

	mu      sync.Mutex
	sources map[source.ProviderID]source.Source
}

// New builds an App from the current configuration.
func New() *App {
	client := network.NewClient(
		time.Duration(viper.GetInt(key.NetworkTimeout))*time.Second,
		viper.GetBool(key.NetworkTLSFingerprint),
	)

	fetcher := network.NewFetcher(client)
	if rps := viper.GetInt(key.NetworkRateLimit); rps > 0 {
		fetcher.Limiter = rate.NewLimiter(rate.Limit(rps), rps)
	}

	return NewWith(&provider.Services{
		Cache:   cache.New(viper.GetInt(key.CacheSize), time.Duration(viper.GetInt(key.CacheTTL))*time.Minute),
		Bus:     event.NewBus(),
		Fetcher: fetcher,
	})
}

// NewWith builds an App around existing services.
func NewWith(services *provider.Services) *App {
	a := &App{
		services: services,
		sources:  make(map[source.ProviderID]source.Source),
	}

	if viper.GetBool(key.EventsLog) {
		a.logEvents()
	}

	return a
}

// Bus returns the shared event bus.
func (a *App) Bus() *event.Bus {
	return a.services.Bus
}

// Cache returns the shared cache store.
func (a *App) Cache() *cache.Store {
	return a.services.Cache
}

// Source returns the source of the named provider, creating it on first use.
// An empty name selects the configured default provider.
func (a *App) Source(name string) (source.Source, error) {
	if name == "" {
		name = viper.GetString(key.ProvidersDefault)
	}

	p, ok := provider.Get(name)
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", name)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if src, ok := a.sources[p.ID]; ok {
		return src, nil
	}

	src := p.CreateSource(a.services)
	a.sources[p.ID] = src
	return src, nil
}

// Close detaches every subscriber and drops cached results.
func (a *App) Close() {
	a.services.Bus.Close()
	a.services.Cache.Purge()
}

func (a *App) logEvents() {
	event.On(a.services.Bus, event.TopicGetAnimes, func(p event.AnimesPayload) error {
		log.WithFields(log.Fields{
			"topic":    event.TopicGetAnimes,
			"provider": p.Provider,
			"animes":   len(p.Animes),
		}).Info("event")
		return nil
	})

	event.On(a.services.Bus, event.TopicGetAnimeDetail, func(p event.AnimeDetailPayload) error {
		log.WithFields(log.Fields{
			"topic":    event.TopicGetAnimeDetail,
			"provider": p.Provider,
			"slug":     p.Anime.Slug,
		}).Info("event")
		return nil
	})

	event.On(a.services.Bus, event.TopicNewUpdate, func(p event.NewUpdatePayload) error {
		log.WithFields(log.Fields{
			"topic":    event.TopicNewUpdate,
			"provider": p.Provider,
			"slug":     p.Anime.Slug,
			"episode":  p.Episode.Slug,
		}).Info("event")
		return nil
	})
}
