package impl

import (
	"context"
	"log/slog"
	"math"
	"slices"

	"hbnb/config"
	deliverycontext "hbnb/internal/delivery/context"
	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/errors"
	"hbnb/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"go.uber.org/fx"
)

const (
	defaultSearchRadiusKm = 10
	metersPerKm           = 1000
)

type placeService struct {
	storage         repository.Storage
	logger          *slog.Logger
	defaultRadiusKm float64
	maxRadiusKm     float64
}

// PlaceServiceParams holds dependencies for PlaceService, injected by Fx.
type PlaceServiceParams struct {
	fx.In

	Storage repository.Storage
	Config  *config.Config `optional:"true"`
	Logger  *slog.Logger
}

// NewPlaceService creates a new place service instance
func NewPlaceService(params PlaceServiceParams) usecase.PlaceUsecase {
	svc := &placeService{
		storage:         params.Storage,
		logger:          params.Logger,
		defaultRadiusKm: defaultSearchRadiusKm,
		maxRadiusKm:     math.Inf(1),
	}
	if params.Config != nil && params.Config.Search != nil {
		svc.defaultRadiusKm = params.Config.Search.DefaultRadiusKm
		svc.maxRadiusKm = params.Config.Search.MaxRadiusKm
	}

	return svc
}

func (s *placeService) ListPlaces(_ context.Context, cityID string) ([]*entity.Place, error) {
	if _, err := repository.GetAs[*entity.City](s.storage, cityID); err != nil {
		return nil, err
	}

	places, err := repository.AllAs[*entity.Place](s.storage)
	if err != nil {
		return nil, err
	}

	return filter(places, func(p *entity.Place) bool { return p.CityID == cityID }), nil
}

func (s *placeService) GetPlace(_ context.Context, placeID string) (*entity.Place, error) {
	return repository.GetAs[*entity.Place](s.storage, placeID)
}

// CreatePlace requires the city, an existing host and a name, checked in that order.
func (s *placeService) CreatePlace(ctx context.Context, cityID string, attrs usecase.Attrs) (*entity.Place, error) {
	if _, err := repository.GetAs[*entity.City](s.storage, cityID); err != nil {
		return nil, err
	}

	attrs = sanitize(attrs, "city_id", "amenity_ids")
	userID, err := requireString(attrs, "user_id")
	if err != nil {
		return nil, err
	}
	if _, err := repository.GetAs[*entity.User](s.storage, userID); err != nil {
		return nil, err
	}
	if _, err := requireString(attrs, "name"); err != nil {
		return nil, err
	}
	attrs["city_id"] = cityID

	place, err := create[*entity.Place](ctx, s.storage, attrs)
	if err != nil {
		return nil, err
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Place created",
		slog.String("place_id", place.ID),
		slog.String("city_id", cityID),
		slog.String("user_id", userID),
	)

	return place, nil
}

func (s *placeService) UpdatePlace(ctx context.Context, placeID string, attrs usecase.Attrs) (*entity.Place, error) {
	return update[*entity.Place](ctx, s.storage, placeID, attrs, "user_id", "city_id")
}

func (s *placeService) DeletePlace(ctx context.Context, placeID string) error {
	return remove[*entity.Place](ctx, s.storage, placeID)
}

// ListPlaceAmenities returns the linked amenities in link order. Links to
// deleted amenities are skipped.
func (s *placeService) ListPlaceAmenities(_ context.Context, placeID string) ([]*entity.Amenity, error) {
	place, err := repository.GetAs[*entity.Place](s.storage, placeID)
	if err != nil {
		return nil, err
	}

	amenities := make([]*entity.Amenity, 0, len(place.AmenityIDs))
	for _, amenityID := range place.AmenityIDs {
		amenity, err := repository.GetAs[*entity.Amenity](s.storage, amenityID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		amenities = append(amenities, amenity)
	}

	return amenities, nil
}

func (s *placeService) LinkAmenity(ctx context.Context, placeID, amenityID string) (*entity.Amenity, bool, error) {
	place, amenity, err := s.placeAndAmenity(placeID, amenityID)
	if err != nil {
		return nil, false, err
	}

	if !place.LinkAmenity(amenityID) {
		return amenity, false, nil
	}

	if err := entity.Save(ctx, place, s.storage); err != nil {
		return nil, false, err
	}

	return amenity, true, nil
}

func (s *placeService) UnlinkAmenity(ctx context.Context, placeID, amenityID string) error {
	place, _, err := s.placeAndAmenity(placeID, amenityID)
	if err != nil {
		return err
	}

	if !place.UnlinkAmenity(amenityID) {
		return errors.Wrapf(repository.ErrNotFound, "amenity %s is not linked to place %s", amenityID, placeID)
	}

	return entity.Save(ctx, place, s.storage)
}

func (s *placeService) placeAndAmenity(placeID, amenityID string) (*entity.Place, *entity.Amenity, error) {
	place, err := repository.GetAs[*entity.Place](s.storage, placeID)
	if err != nil {
		return nil, nil, err
	}

	amenity, err := repository.GetAs[*entity.Amenity](s.storage, amenityID)
	if err != nil {
		return nil, nil, err
	}

	return place, amenity, nil
}

// SearchPlaces matches every place when no state or city is given. Otherwise
// it takes the places of the listed cities and of every city of the listed
// states. Unknown ids match nothing.
func (s *placeService) SearchPlaces(_ context.Context, input usecase.PlaceSearchInput) ([]*entity.Place, error) {
	places, err := repository.AllAs[*entity.Place](s.storage)
	if err != nil {
		return nil, err
	}

	if len(input.States) > 0 || len(input.Cities) > 0 {
		cityIDs, err := s.searchCities(input)
		if err != nil {
			return nil, err
		}
		places = filter(places, func(p *entity.Place) bool {
			_, ok := cityIDs[p.CityID]

			return ok
		})
	}

	if len(input.Amenities) > 0 {
		places = filter(places, func(p *entity.Place) bool {
			for _, amenityID := range input.Amenities {
				if !p.HasAmenity(amenityID) {
					return false
				}
			}

			return true
		})
	}

	if input.Latitude != nil && input.Longitude != nil {
		places = s.withinRadius(places, *input.Latitude, *input.Longitude, input.RadiusKm)
	}

	return places, nil
}

func (s *placeService) searchCities(input usecase.PlaceSearchInput) (map[string]struct{}, error) {
	cityIDs := make(map[string]struct{}, len(input.Cities))
	for _, cityID := range input.Cities {
		cityIDs[cityID] = struct{}{}
	}

	if len(input.States) == 0 {
		return cityIDs, nil
	}

	cities, err := repository.AllAs[*entity.City](s.storage)
	if err != nil {
		return nil, err
	}
	for _, city := range cities {
		if slices.Contains(input.States, city.StateID) {
			cityIDs[city.ID] = struct{}{}
		}
	}

	return cityIDs, nil
}

// withinRadius keeps places whose great-circle distance from the center is
// at most the radius. The radius defaults and is capped by configuration.
func (s *placeService) withinRadius(places []*entity.Place, lat, lng float64, radiusKm *float64) []*entity.Place {
	radius := s.defaultRadiusKm
	if radiusKm != nil && *radiusKm > 0 {
		radius = *radiusKm
	}
	radius = math.Min(radius, s.maxRadiusKm)

	center := orb.Point{lng, lat}
	meters := radius * metersPerKm
	bound := geo.NewBoundAroundPoint(center, meters)

	return filter(places, func(p *entity.Place) bool {
		point := orb.Point{p.Longitude, p.Latitude}
		if !bound.Contains(point) {
			return false
		}

		return geo.Distance(center, point) <= meters
	})
}
