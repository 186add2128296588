// Package provider manages the built-in catalog providers.
package provider

import (
	"strings"

	"github.com/anikatalog/anikatalog/event"
	"github.com/anikatalog/anikatalog/internal/cache"
	"github.com/anikatalog/anikatalog/key"
	"github.com/anikatalog/anikatalog/network"
	"github.com/anikatalog/anikatalog/provider/animasu"
	"github.com/anikatalog/anikatalog/source"
	"github.com/spf13/viper"
)

// Services are the collaborators shared by every source of one application instance.
type Services struct {
	Cache   *cache.Store
	Bus     *event.Bus
	Fetcher network.Fetcher
}

// Provider represents a source provider.
type Provider struct {
	ID           source.ProviderID
	Name         string
	CreateSource func(*Services) source.Source
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns built-in providers.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:   source.Animasu,
			Name: animasu.Name,
			CreateSource: func(s *Services) source.Source {
				return animasu.New(viper.GetString(key.ProvidersAnimasuBaseURL), s.Cache, s.Bus, s.Fetcher)
			},
		},
	}
}

// Get finds a provider by name or ID, case-insensitively.
func Get(name string) (*Provider, bool) {
	for _, p := range Builtins() {
		if strings.EqualFold(p.Name, name) || strings.EqualFold(p.ID.String(), name) {
			return p, true
		}
	}
	return nil, false
}
