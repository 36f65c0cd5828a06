package appointments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sartorlabs/sartor-backend/pkg/db/models"
)

// Repository exposes appointment persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an appointments repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads an appointment by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

// ListByClient returns the client's appointments ordered by ascending date.
func (r *Repository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Appointment, error) {
	var rows []models.Appointment
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new appointment row.
func (r *Repository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

// Save persists the full appointment row.
func (r *Repository) Save(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}
