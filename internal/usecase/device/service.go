package device

import (
	"context"
	"errors"

	domainDevice "device-checkout/internal/domain/device"
	domainSchool "device-checkout/internal/domain/school"
	"device-checkout/internal/logger"
	appErrors "device-checkout/pkg/errors"
	"device-checkout/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultModel is assumed for devices created implicitly during a kiosk
// checkout of an unrecognized asset tag.
const DefaultModel = "chromebook"

// Service is the device lifecycle manager. Every successful checkout or
// check-in commits exactly one status mutation plus one audit-log row;
// the repository guarantees the pairing is atomic.
type Service struct {
	deviceRepo domainDevice.Repository
	schoolRepo domainSchool.Repository
}

// NewService creates a new device lifecycle service
func NewService(deviceRepo domainDevice.Repository, schoolRepo domainSchool.Repository) *Service {
	return &Service{
		deviceRepo: deviceRepo,
		schoolRepo: schoolRepo,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterDeviceRequest) (*DeviceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.schoolRepo.GetByID(ctx, req.SchoolID); err != nil {
		return nil, err
	}

	d := &domainDevice.Device{
		AssetTag: utils.SanitizeString(req.AssetTag),
		Model:    req.Model,
		SchoolID: req.SchoolID,
		Serial:   req.Serial,
		Status:   domainDevice.StatusAvailable,
	}
	if err := s.deviceRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	logger.Info("Device registered",
		zap.String("device_id", d.ID.String()),
		zap.String("asset_tag", d.AssetTag),
		zap.String("school_id", d.SchoolID),
		zap.String("event", "device_registered"),
	)

	return ToDeviceResponse(d), nil
}

func (s *Service) ListBySchool(ctx context.Context, schoolID string) ([]*DeviceResponse, error) {
	devices, err := s.deviceRepo.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	return ToDeviceResponseList(devices), nil
}

// CheckOut moves a device from available to checked_out. An unknown
// asset tag is registered on the fly when the request names a school
// whose settings permit it.
func (s *Service) CheckOut(ctx context.Context, assetTag string, req *CheckOutRequest) (*DeviceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.deviceRepo.GetByAssetTag(ctx, assetTag); err != nil {
		if !errors.Is(err, domainDevice.ErrDeviceNotFound) {
			return nil, err
		}
		if err := s.autoRegister(ctx, assetTag, req.SchoolID); err != nil {
			return nil, err
		}
	}

	assignment := domainDevice.Assignment{
		HolderName:      utils.SanitizeString(req.UserName),
		Reason:          utils.SanitizeString(req.Reason),
		HomeroomTeacher: utils.SanitizeString(req.HomeroomTeacher),
	}
	d, err := s.deviceRepo.CheckOut(ctx, assetTag, assignment)
	if err != nil {
		return nil, err
	}

	logger.Info("Device checked out",
		zap.String("asset_tag", d.AssetTag),
		zap.String("holder", assignment.HolderName),
		zap.String("school_id", d.SchoolID),
		zap.String("event", "device_checked_out"),
	)

	return ToDeviceResponse(d), nil
}

// CheckIn returns a device to available. The unknown-tag path mirrors
// CheckOut: the device is registered first, then the check-in proceeds
// and reports the device as already available.
func (s *Service) CheckIn(ctx context.Context, assetTag string, req *CheckInRequest) (*DeviceResponse, error) {
	if _, err := s.deviceRepo.GetByAssetTag(ctx, assetTag); err != nil {
		if !errors.Is(err, domainDevice.ErrDeviceNotFound) {
			return nil, err
		}
		schoolID := ""
		if req != nil {
			schoolID = req.SchoolID
		}
		if err := s.autoRegister(ctx, assetTag, schoolID); err != nil {
			return nil, err
		}
	}

	d, err := s.deviceRepo.CheckIn(ctx, assetTag)
	if err != nil {
		return nil, err
	}

	logger.Info("Device checked in",
		zap.String("asset_tag", d.AssetTag),
		zap.String("school_id", d.SchoolID),
		zap.String("event", "device_checked_in"),
	)

	return ToDeviceResponse(d), nil
}

// Remove deletes the device row unconditionally, even while checked out.
// Audit-log rows are retained.
func (s *Service) Remove(ctx context.Context, deviceID uuid.UUID) error {
	if err := s.deviceRepo.Delete(ctx, deviceID); err != nil {
		return err
	}

	logger.Info("Device removed",
		zap.String("device_id", deviceID.String()),
		zap.String("event", "device_removed"),
	)

	return nil
}

// autoRegister creates a device for an unrecognized asset tag when the
// named school allows it; otherwise the original not-found stands.
func (s *Service) autoRegister(ctx context.Context, assetTag, schoolID string) error {
	if schoolID == "" {
		return domainDevice.ErrDeviceNotFound
	}

	sch, err := s.schoolRepo.GetByID(ctx, schoolID)
	if err != nil {
		return err
	}
	if !sch.AllowNewDevices {
		return domainDevice.ErrDeviceNotFound
	}

	d := &domainDevice.Device{
		AssetTag: utils.SanitizeString(assetTag),
		Model:    DefaultModel,
		SchoolID: sch.ID,
		Status:   domainDevice.StatusAvailable,
	}
	if err := s.deviceRepo.Create(ctx, d); err != nil {
		return err
	}

	logger.Info("Device auto-registered during lifecycle operation",
		zap.String("asset_tag", assetTag),
		zap.String("school_id", sch.ID),
		zap.String("event", "device_auto_registered"),
	)

	return nil
}
