package clients

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sartorlabs/sartor-backend/pkg/db/models"
)

// Repository exposes client-relationship persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a clients repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads the bare client row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindDetailed loads the client with its linked account, measurement and
// upcoming appointments.
func (r *Repository) FindDetailed(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Preload("ClientUser").
		Preload("Measurements").
		Preload("Appointments", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("status = ?", "scheduled").Order("date ASC")
		}).
		First(&client, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByClientUserID loads the client row linked to a registered account.
func (r *Repository) FindByClientUserID(ctx context.Context, userID uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "client_user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// ListByTailor returns the tailor's book ordered by most recently touched.
func (r *Repository) ListByTailor(ctx context.Context, tailorID uuid.UUID) ([]models.Client, error) {
	var rows []models.Client
	err := r.db.WithContext(ctx).
		Preload("ClientUser").
		Preload("Measurements").
		Preload("Appointments", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("status = ?", "scheduled").Order("date ASC")
		}).
		Where("tailor_id = ?", tailorID).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new client row.
func (r *Repository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// CreateForUser inserts an unassigned client profile linked to a registered
// account. Used when a client-role account self-registers.
func (r *Repository) CreateForUser(ctx context.Context, userID uuid.UUID) (*models.Client, error) {
	client := &models.Client{ClientUserID: &userID}
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// Save persists the full client row.
func (r *Repository) Save(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}
