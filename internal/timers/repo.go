package timers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sartorlabs/sartor-backend/pkg/db/models"
)

// Repository exposes timer persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a timers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a timer by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Timer, error) {
	var timer models.Timer
	if err := r.db.WithContext(ctx).First(&timer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &timer, nil
}

// FindOpen returns the running timer for the pair, if any.
func (r *Repository) FindOpen(ctx context.Context, clientID, tailorID uuid.UUID) (*models.Timer, error) {
	var timer models.Timer
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND tailor_id = ? AND end_time IS NULL", clientID, tailorID).
		First(&timer).Error
	if err != nil {
		return nil, err
	}
	return &timer, nil
}

// ListByClient returns all timers logged against the client, newest first.
func (r *Repository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Timer, error) {
	var rows []models.Timer
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("start_time DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByClientAndTailor returns the tailor's own timers for the client,
// newest first.
func (r *Repository) ListByClientAndTailor(ctx context.Context, clientID, tailorID uuid.UUID) ([]models.Timer, error) {
	var rows []models.Timer
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND tailor_id = ?", clientID, tailorID).
		Order("start_time DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new timer row.
func (r *Repository) Create(ctx context.Context, timer *models.Timer) error {
	return r.db.WithContext(ctx).Create(timer).Error
}

// Save persists the full timer row.
func (r *Repository) Save(ctx context.Context, timer *models.Timer) error {
	return r.db.WithContext(ctx).Save(timer).Error
}
