package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainSchool "device-checkout/internal/domain/school"
	"device-checkout/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

// SchoolRepository implements the school domain repository.
type SchoolRepository struct {
	db *DB
}

// NewSchoolRepository creates a new school repository
func NewSchoolRepository(db *DB) domainSchool.Repository {
	return &SchoolRepository{db: db}
}

func (r *SchoolRepository) GetByID(ctx context.Context, id string) (*domainSchool.School, error) {
	var dbModel models.SchoolModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainSchool.ErrSchoolNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get school: %w", err)
	}

	return toSchoolEntity(&dbModel), nil
}

func (r *SchoolRepository) List(ctx context.Context) ([]*domainSchool.School, error) {
	var dbModels []models.SchoolModel
	err := r.db.DB.WithContext(ctx).
		Order("name").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}

	schools := make([]*domainSchool.School, 0, len(dbModels))
	for i := range dbModels {
		schools = append(schools, toSchoolEntity(&dbModels[i]))
	}
	return schools, nil
}

func (r *SchoolRepository) Update(ctx context.Context, s *domainSchool.School) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.SchoolModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"name":              s.Name,
			"allow_new_devices": s.AllowNewDevices,
			"logo_url":          s.LogoURL,
			"address":           s.Address,
			"contact":           s.Contact,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update school: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainSchool.ErrSchoolNotFound
	}

	return nil
}

func (r *SchoolRepository) UpdateLogo(ctx context.Context, id string, logoURL string) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.SchoolModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"logo_url":   logoURL,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update school logo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainSchool.ErrSchoolNotFound
	}

	return nil
}

func toSchoolEntity(m *models.SchoolModel) *domainSchool.School {
	return &domainSchool.School{
		ID:              m.ID,
		Name:            m.Name,
		AllowNewDevices: m.AllowNewDevices,
		LogoURL:         m.LogoURL,
		Address:         m.Address,
		Contact:         m.Contact,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
