package service

import (
	"context"
	"errors"

	"github.com/askboard-dev/askboard/internal/assets"
	"github.com/askboard-dev/askboard/internal/domain"
	internal_errors "github.com/askboard-dev/askboard/internal/errors"
	"github.com/askboard-dev/askboard/internal/geo"
	"github.com/askboard-dev/askboard/internal/logger"
)

type LocationService interface {
	Update(ctx context.Context, actor *domain.User, targetId domain.UserId, locationText string) error
}

// Location enriches a free-text location with a static map snapshot.
// External-service trouble degrades the update (name persisted, map step
// skipped) but never fails it.
type Location struct {
	storage   LocationStorage
	authority *Authority
	geocoder  geo.Geocoder
	maps      geo.MapFetcher
	assets    *assets.Store
}

type LocationStorage interface {
	User(id domain.UserId) (domain.User, error)
	SetLocation(id domain.UserId, name string, imageKey domain.BlobKey) error
	SetLocationName(id domain.UserId, name string) error
}

func NewLocation(storage LocationStorage, authority *Authority, geocoder geo.Geocoder, maps geo.MapFetcher, assets *assets.Store) *Location {
	return &Location{storage, authority, geocoder, maps, assets}
}

func (l *Location) Update(ctx context.Context, actor *domain.User, targetId domain.UserId, locationText string) error {
	target, err := l.storage.User(targetId)
	if err != nil {
		return err
	}
	if err := l.authority.Can(actor, Action{Kind: ActionEditProfile, TargetUser: &target}); err != nil {
		return err
	}

	// Empty input clears the snapshot entirely.
	if locationText == "" {
		if err := l.storage.SetLocation(targetId, "", ""); err != nil {
			return err
		}
		l.assets.Release(target.LocationImage)
		return nil
	}

	result, err := l.geocoder.Geocode(ctx, locationText)
	if err != nil {
		if errors.Is(err, internal_errors.ExternalServiceUnavailable) {
			// Keep whatever map the user already has.
			logger.Log.Warn("geocode unavailable, location saved without map", "error", err)
			return l.storage.SetLocationName(targetId, locationText)
		}
		return err
	}

	// The provider answered but knows no such place: the user's text is
	// preserved verbatim, the map is cleared since no coordinates exist.
	if !result.Found {
		if err := l.storage.SetLocation(targetId, locationText, ""); err != nil {
			return err
		}
		l.assets.Release(target.LocationImage)
		return nil
	}

	mapImage, err := l.maps.FetchMap(ctx, result.Coords, result.Box)
	if err != nil || len(mapImage) == 0 {
		logger.Log.Warn("static map fetch failed, location saved without map", "error", err)
		return l.storage.SetLocationName(targetId, locationText)
	}

	_, err = l.assets.Replace(target.LocationImage, mapImage, ".png", func(newKey string) error {
		return l.storage.SetLocation(targetId, locationText, newKey)
	})
	return err
}
