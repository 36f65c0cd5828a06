package measurements

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sartorlabs/sartor-backend/pkg/db/models"
)

// Repository exposes measurement persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a measurements repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByClientID loads the single measurement row for a client relationship.
func (r *Repository) FindByClientID(ctx context.Context, clientID uuid.UUID) (*models.Measurement, error) {
	var row models.Measurement
	if err := r.db.WithContext(ctx).First(&row, "client_id = ?", clientID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByUserID loads the single self-scoped measurement row for a user.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Measurement, error) {
	var row models.Measurement
	if err := r.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertByClientID writes the row atomically against the client_id unique
// index. On conflict only the provided assignments are applied, so omitted
// fields keep their stored values.
func (r *Repository) UpsertByClientID(ctx context.Context, insert *models.Measurement, assignments map[string]any) (*models.Measurement, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(insert).Error
	if err != nil {
		return nil, err
	}
	return r.FindByClientID(ctx, *insert.ClientID)
}

// Create inserts a new measurement row.
func (r *Repository) Create(ctx context.Context, row *models.Measurement) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Save persists the full measurement row.
func (r *Repository) Save(ctx context.Context, row *models.Measurement) error {
	return r.db.WithContext(ctx).Save(row).Error
}
