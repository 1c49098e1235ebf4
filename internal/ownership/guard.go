// Package ownership resolves maps and sprinklers on behalf of a principal.
//
// A resource that does not exist and a resource owned by somebody else are
// reported the same way, so callers cannot probe for foreign ids.
package ownership

import (
	"errors"

	"ecodrip-server/internal/model"
	platformservice "ecodrip-server/internal/platform/service"

	"gorm.io/gorm"
)

const (
	MapNotFoundMessage       = "Map not found or access denied"
	SprinklerNotFoundMessage = "Sprinkler not found or access denied"
)

type MapFinder interface {
	FindByID(id string) (*model.MapImage, error)
}

type SprinklerFinder interface {
	FindByID(id string) (*model.Sprinkler, error)
}

type Guard struct {
	maps       MapFinder
	sprinklers SprinklerFinder
}

func NewGuard(maps MapFinder, sprinklers SprinklerFinder) *Guard {
	return &Guard{maps: maps, sprinklers: sprinklers}
}

// Map returns the map when principal owns it.
func (g *Guard) Map(mapID, principal string) (*model.MapImage, error) {
	if mapID == "" || principal == "" {
		return nil, platformservice.NewNotFoundError(MapNotFoundMessage)
	}
	m, err := g.maps.FindByID(mapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError(MapNotFoundMessage)
		}
		return nil, platformservice.WrapInternal("Failed to load map", err)
	}
	if m.OwnerID != principal {
		return nil, platformservice.NewNotFoundError(MapNotFoundMessage)
	}
	return m, nil
}

// Sprinkler returns the sprinkler and its parent map when principal owns the map.
func (g *Guard) Sprinkler(id, principal string) (*model.Sprinkler, *model.MapImage, error) {
	if id == "" || principal == "" {
		return nil, nil, platformservice.NewNotFoundError(SprinklerNotFoundMessage)
	}
	s, err := g.sprinklers.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, platformservice.NewNotFoundError(SprinklerNotFoundMessage)
		}
		return nil, nil, platformservice.WrapInternal("Failed to load sprinkler", err)
	}
	m, err := g.Map(s.MapID, principal)
	if err != nil {
		if se, ok := platformservice.AsServiceError(err); ok && se.Code == platformservice.ErrorCodeNotFound {
			return nil, nil, platformservice.NewNotFoundError(SprinklerNotFoundMessage)
		}
		return nil, nil, err
	}
	return s, m, nil
}
