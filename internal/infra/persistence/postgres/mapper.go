package postgres

import (
	"time"

	"hbnb/internal/domain/entity"
	"hbnb/internal/infra/persistence/model"
)

// --- Mapper Functions ---

// toBase rebuilds the shared bookkeeping. Timestamps come back in the
// connection's zone and are normalized to UTC.
func toBase(id string, createdAt, updatedAt time.Time) entity.Base {
	return entity.Base{
		ID:        id,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}
}

func toStateDomain(data *model.StateModel) *entity.State {
	return &entity.State{
		Base: toBase(data.ID, data.CreatedAt, data.UpdatedAt),
		Name: data.Name,
	}
}

func fromStateDomain(data *entity.State) *model.StateModel {
	return &model.StateModel{
		ID:        data.ID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toCityDomain(data *model.CityModel) *entity.City {
	return &entity.City{
		Base:    toBase(data.ID, data.CreatedAt, data.UpdatedAt),
		StateID: data.StateID,
		Name:    data.Name,
	}
}

func fromCityDomain(data *entity.City) *model.CityModel {
	return &model.CityModel{
		ID:        data.ID,
		StateID:   data.StateID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toUserDomain(data *model.UserModel) *entity.User {
	return &entity.User{
		Base:      toBase(data.ID, data.CreatedAt, data.UpdatedAt),
		Email:     data.Email,
		Password:  data.Password,
		FirstName: data.FirstName,
		LastName:  data.LastName,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:        data.ID,
		Email:     data.Email,
		Password:  data.Password,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toAmenityDomain(data *model.AmenityModel) *entity.Amenity {
	return &entity.Amenity{
		Base: toBase(data.ID, data.CreatedAt, data.UpdatedAt),
		Name: data.Name,
	}
}

func fromAmenityDomain(data *entity.Amenity) *model.AmenityModel {
	return &model.AmenityModel{
		ID:        data.ID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toPlaceDomain(data *model.PlaceModel, amenityIDs []string) *entity.Place {
	return &entity.Place{
		Base:            toBase(data.ID, data.CreatedAt, data.UpdatedAt),
		CityID:          data.CityID,
		UserID:          data.UserID,
		Name:            data.Name,
		Description:     data.Description,
		NumberRooms:     data.NumberRooms,
		NumberBathrooms: data.NumberBathrooms,
		MaxGuest:        data.MaxGuest,
		PriceByNight:    data.PriceByNight,
		Latitude:        data.Latitude,
		Longitude:       data.Longitude,
		AmenityIDs:      amenityIDs,
	}
}

func fromPlaceDomain(data *entity.Place) *model.PlaceModel {
	return &model.PlaceModel{
		ID:              data.ID,
		CityID:          data.CityID,
		UserID:          data.UserID,
		Name:            data.Name,
		Description:     data.Description,
		NumberRooms:     data.NumberRooms,
		NumberBathrooms: data.NumberBathrooms,
		MaxGuest:        data.MaxGuest,
		PriceByNight:    data.PriceByNight,
		Latitude:        data.Latitude,
		Longitude:       data.Longitude,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromPlaceAmenities(data *entity.Place) []model.PlaceAmenityModel {
	links := make([]model.PlaceAmenityModel, 0, len(data.AmenityIDs))
	for i, amenityID := range data.AmenityIDs {
		links = append(links, model.PlaceAmenityModel{
			PlaceID:   data.ID,
			AmenityID: amenityID,
			Position:  i,
		})
	}

	return links
}

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	return &entity.Review{
		Base:    toBase(data.ID, data.CreatedAt, data.UpdatedAt),
		PlaceID: data.PlaceID,
		UserID:  data.UserID,
		Text:    data.Text,
	}
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	return &model.ReviewModel{
		ID:        data.ID,
		PlaceID:   data.PlaceID,
		UserID:    data.UserID,
		Text:      data.Text,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
