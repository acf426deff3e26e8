package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainDevice "device-checkout/internal/domain/device"
	"device-checkout/internal/domain/devicelog"
	"device-checkout/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceRepository implements the device domain repository.
type DeviceRepository struct {
	db *DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *DB) domainDevice.Repository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) Create(ctx context.Context, d *domainDevice.Device) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	d.Status = domainDevice.StatusAvailable

	dbModel := toDeviceModel(d)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKeyError(err) {
			return domainDevice.ErrDuplicateAssetTag
		}
		return fmt.Errorf("failed to create device: %w", err)
	}

	return nil
}

func (r *DeviceRepository) GetByID(ctx context.Context, deviceID uuid.UUID) (*domainDevice.Device, error) {
	var dbModel models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", deviceID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDevice.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return toDeviceEntity(&dbModel), nil
}

func (r *DeviceRepository) GetByAssetTag(ctx context.Context, assetTag string) (*domainDevice.Device, error) {
	var dbModel models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Where("asset_tag = ?", assetTag).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDevice.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return toDeviceEntity(&dbModel), nil
}

func (r *DeviceRepository) ListBySchool(ctx context.Context, schoolID string) ([]*domainDevice.Device, error) {
	var dbModels []models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	devices := make([]*domainDevice.Device, 0, len(dbModels))
	for i := range dbModels {
		devices = append(devices, toDeviceEntity(&dbModels[i]))
	}
	return devices, nil
}

// CheckOut flips an available device to checked_out and appends the
// checkout log row in the same transaction. The status mutation is a
// guarded single-row update, so two concurrent checkouts of the same
// device cannot both succeed.
func (r *DeviceRepository) CheckOut(ctx context.Context, assetTag string, a domainDevice.Assignment) (*domainDevice.Device, error) {
	var out *domainDevice.Device
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.DeviceModel
		if err := tx.Where("asset_tag = ?", assetTag).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainDevice.ErrDeviceNotFound
			}
			return fmt.Errorf("failed to get device: %w", err)
		}
		if m.Status == string(domainDevice.StatusCheckedOut) {
			return domainDevice.ErrAlreadyCheckedOut
		}

		now := time.Now()
		reason := nilIfEmpty(a.Reason)
		teacher := nilIfEmpty(a.HomeroomTeacher)

		result := tx.Model(&models.DeviceModel{}).
			Where("asset_tag = ? AND status = ?", assetTag, string(domainDevice.StatusAvailable)).
			Updates(map[string]interface{}{
				"status":           string(domainDevice.StatusCheckedOut),
				"assigned_to_name": a.HolderName,
				"assigned_at":      now,
				"assigned_reason":  reason,
				"homeroom_teacher": teacher,
				"updated_at":       now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to check out device: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainDevice.ErrAlreadyCheckedOut
		}

		logRow := models.DeviceLogModel{
			ID:              uuid.New(),
			DeviceID:        m.ID,
			AssetTag:        m.AssetTag,
			Action:          string(devicelog.ActionCheckout),
			UserName:        a.HolderName,
			Reason:          reason,
			HomeroomTeacher: teacher,
			SchoolID:        m.SchoolID,
			CreatedAt:       now,
		}
		if err := tx.Create(&logRow).Error; err != nil {
			return fmt.Errorf("failed to append device log: %w", err)
		}

		m.Status = string(domainDevice.StatusCheckedOut)
		m.AssignedToName = &a.HolderName
		m.AssignedAt = &now
		m.AssignedReason = reason
		m.HomeroomTeacher = teacher
		m.UpdatedAt = now
		out = toDeviceEntity(&m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CheckIn returns a checked-out device to available, clears the
// assignment and appends the checkin log row naming the previous holder
// ("Unknown" if the assignment carried no name).
func (r *DeviceRepository) CheckIn(ctx context.Context, assetTag string) (*domainDevice.Device, error) {
	var out *domainDevice.Device
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.DeviceModel
		if err := tx.Where("asset_tag = ?", assetTag).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainDevice.ErrDeviceNotFound
			}
			return fmt.Errorf("failed to get device: %w", err)
		}
		if m.Status == string(domainDevice.StatusAvailable) {
			return domainDevice.ErrAlreadyAvailable
		}

		holder := "Unknown"
		if m.AssignedToName != nil && *m.AssignedToName != "" {
			holder = *m.AssignedToName
		}

		now := time.Now()
		result := tx.Model(&models.DeviceModel{}).
			Where("asset_tag = ? AND status = ?", assetTag, string(domainDevice.StatusCheckedOut)).
			Updates(map[string]interface{}{
				"status":           string(domainDevice.StatusAvailable),
				"assigned_to_name": nil,
				"assigned_at":      nil,
				"assigned_reason":  nil,
				"homeroom_teacher": nil,
				"updated_at":       now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to check in device: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainDevice.ErrAlreadyAvailable
		}

		logRow := models.DeviceLogModel{
			ID:        uuid.New(),
			DeviceID:  m.ID,
			AssetTag:  m.AssetTag,
			Action:    string(devicelog.ActionCheckin),
			UserName:  holder,
			SchoolID:  m.SchoolID,
			CreatedAt: now,
		}
		if err := tx.Create(&logRow).Error; err != nil {
			return fmt.Errorf("failed to append device log: %w", err)
		}

		m.Status = string(domainDevice.StatusAvailable)
		m.AssignedToName = nil
		m.AssignedAt = nil
		m.AssignedReason = nil
		m.HomeroomTeacher = nil
		m.UpdatedAt = now
		out = toDeviceEntity(&m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the device row unconditionally. Log rows referencing
// the device are left in place, that is the retention policy.
func (r *DeviceRepository) Delete(ctx context.Context, deviceID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", deviceID).
		Delete(&models.DeviceModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete device: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainDevice.ErrDeviceNotFound
	}

	return nil
}

func toDeviceModel(d *domainDevice.Device) *models.DeviceModel {
	return &models.DeviceModel{
		ID:              d.ID,
		AssetTag:        d.AssetTag,
		Serial:          d.Serial,
		Model:           d.Model,
		Status:          string(d.Status),
		SchoolID:        d.SchoolID,
		AssignedToName:  d.AssignedToName,
		AssignedAt:      d.AssignedAt,
		AssignedReason:  d.AssignedReason,
		HomeroomTeacher: d.HomeroomTeacher,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func toDeviceEntity(m *models.DeviceModel) *domainDevice.Device {
	return &domainDevice.Device{
		ID:              m.ID,
		AssetTag:        m.AssetTag,
		Serial:          m.Serial,
		Model:           m.Model,
		Status:          domainDevice.Status(m.Status),
		SchoolID:        m.SchoolID,
		AssignedToName:  m.AssignedToName,
		AssignedAt:      m.AssignedAt,
		AssignedReason:  m.AssignedReason,
		HomeroomTeacher: m.HomeroomTeacher,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
