// Package postgres contains the relational store adapter, using GORM and PostgreSQL.
package postgres

import (
	"context"
	"log/slog"
	"sync"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/errors"
	"hbnb/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ repository.StoreAdapter = (*Store)(nil)

// Store maps every kind onto its own table.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewStore is the constructor for Store.
func NewStore(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{db: db, logger: logger}
}

// Migrate creates or updates every table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.check(); err != nil {
		return err
	}

	return errors.Wrap(s.db.WithContext(ctx).AutoMigrate(model.All()...), "failed to migrate schema")
}

// LoadAll reads every table and reconstructs each row as its kind.
func (s *Store) LoadAll(ctx context.Context) (map[entity.Key]entity.Entity, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	out := make(map[entity.Key]entity.Entity)

	var states []*model.StateModel
	if err := db.Find(&states).Error; err != nil {
		return nil, dbError(err, "failed to load states")
	}
	for _, m := range states {
		if err := accept(out, toStateDomain(m)); err != nil {
			return nil, err
		}
	}

	var cities []*model.CityModel
	if err := db.Find(&cities).Error; err != nil {
		return nil, dbError(err, "failed to load cities")
	}
	for _, m := range cities {
		if err := accept(out, toCityDomain(m)); err != nil {
			return nil, err
		}
	}

	var users []*model.UserModel
	if err := db.Find(&users).Error; err != nil {
		return nil, dbError(err, "failed to load users")
	}
	for _, m := range users {
		if err := accept(out, toUserDomain(m)); err != nil {
			return nil, err
		}
	}

	var amenities []*model.AmenityModel
	if err := db.Find(&amenities).Error; err != nil {
		return nil, dbError(err, "failed to load amenities")
	}
	for _, m := range amenities {
		if err := accept(out, toAmenityDomain(m)); err != nil {
			return nil, err
		}
	}

	var links []*model.PlaceAmenityModel
	if err := db.Order("place_id, position").Find(&links).Error; err != nil {
		return nil, dbError(err, "failed to load place amenities")
	}
	linksByPlace := make(map[string][]string)
	for _, link := range links {
		linksByPlace[link.PlaceID] = append(linksByPlace[link.PlaceID], link.AmenityID)
	}

	var places []*model.PlaceModel
	if err := db.Find(&places).Error; err != nil {
		return nil, dbError(err, "failed to load places")
	}
	for _, m := range places {
		if err := accept(out, toPlaceDomain(m, linksByPlace[m.ID])); err != nil {
			return nil, err
		}
	}

	var reviews []*model.ReviewModel
	if err := db.Find(&reviews).Error; err != nil {
		return nil, dbError(err, "failed to load reviews")
	}
	for _, m := range reviews {
		if err := accept(out, toReviewDomain(m)); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("Postgres store loaded", slog.Int("records", len(out)))

	return out, nil
}

// Persist upserts each entity into its table.
func (s *Store) Persist(ctx context.Context, entities []entity.Entity) error {
	if err := s.check(); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	for _, e := range entities {
		if err := s.persistOne(db, e); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) persistOne(db *gorm.DB, e entity.Entity) error {
	switch v := e.(type) {
	case *entity.State:
		return upsert(db, fromStateDomain(v), v)
	case *entity.City:
		return upsert(db, fromCityDomain(v), v)
	case *entity.User:
		return upsert(db, fromUserDomain(v), v)
	case *entity.Amenity:
		return upsert(db, fromAmenityDomain(v), v)
	case *entity.Review:
		return upsert(db, fromReviewDomain(v), v)
	case *entity.Place:
		return db.Transaction(func(tx *gorm.DB) error {
			if err := upsert(tx, fromPlaceDomain(v), v); err != nil {
				return err
			}
			if err := tx.Where("place_id = ?", v.ID).Delete(&model.PlaceAmenityModel{}).Error; err != nil {
				return dbError(err, "failed to reset place amenities")
			}

			links := fromPlaceAmenities(v)
			if len(links) == 0 {
				return nil
			}

			return dbError(tx.Create(&links).Error, "failed to link place amenities")
		})
	default:
		return errors.Wrapf(repository.ErrUnknownKind, "%T", e)
	}
}

// Remove deletes one row. Deleting a place also drops its amenity links.
func (s *Store) Remove(ctx context.Context, kind entity.Kind, id string) error {
	if err := s.check(); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)

	var target any
	switch kind {
	case entity.KindState:
		target = &model.StateModel{}
	case entity.KindCity:
		target = &model.CityModel{}
	case entity.KindUser:
		target = &model.UserModel{}
	case entity.KindAmenity:
		target = &model.AmenityModel{}
	case entity.KindReview:
		target = &model.ReviewModel{}
	case entity.KindPlace:
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("place_id = ?", id).Delete(&model.PlaceAmenityModel{}).Error; err != nil {
				return dbError(err, "failed to unlink place amenities")
			}

			return dbError(tx.Where("id = ?", id).Delete(&model.PlaceModel{}).Error, "failed to delete place")
		})
	default:
		return errors.Wrapf(repository.ErrUnknownKind, "%q", kind)
	}

	return dbError(db.Where("id = ?", id).Delete(target).Error, "failed to delete "+string(kind))
}

// Close closes the underlying connection pool. It is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	return errors.Wrap(sqlDB.Close(), "failed to close PostgreSQL")
}

func (s *Store) check() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.Wrap(repository.ErrAdapterUnavailable, "postgres store closed")
	}

	return nil
}

func upsert(db *gorm.DB, row any, e entity.Entity) error {
	err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error

	return dbError(err, "failed to save "+entity.KeyOf(e).String())
}

// accept validates a reconstructed row the same way a decoded record is validated.
func accept(out map[entity.Key]entity.Entity, e entity.Entity) error {
	key := entity.KeyOf(e)
	if err := entity.Validate(e); err != nil {
		return errors.Wrapf(repository.ErrMalformedRecord, "%s: %v", key, err)
	}
	if meta := e.Meta(); meta.UpdatedAt.Before(meta.CreatedAt) {
		return errors.Wrapf(repository.ErrMalformedRecord, "%s updated_at precedes created_at", key)
	}
	out[key] = e

	return nil
}
