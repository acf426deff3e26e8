package school

import (
	"context"

	domainSchool "device-checkout/internal/domain/school"
	"device-checkout/internal/logger"
	appErrors "device-checkout/pkg/errors"
	"device-checkout/pkg/utils"

	"go.uber.org/zap"
)

// Service covers school configuration: listing and settings edits. The
// device lifecycle never mutates schools.
type Service struct {
	schoolRepo domainSchool.Repository
}

// NewService creates a new school service
func NewService(schoolRepo domainSchool.Repository) *Service {
	return &Service{schoolRepo: schoolRepo}
}

func (s *Service) List(ctx context.Context) ([]*SchoolResponse, error) {
	schools, err := s.schoolRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*SchoolResponse, 0, len(schools))
	for _, sch := range schools {
		out = append(out, ToSchoolResponse(sch))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*SchoolResponse, error) {
	sch, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSchoolResponse(sch), nil
}

func (s *Service) Update(ctx context.Context, id string, req *UpdateSchoolRequest) (*SchoolResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	sch := &domainSchool.School{
		ID:              id,
		Name:            utils.SanitizeString(req.Name),
		AllowNewDevices: req.AllowNewDevices,
		LogoURL:         req.LogoURL,
		Address:         req.Address,
		Contact:         req.Contact,
	}
	if err := s.schoolRepo.Update(ctx, sch); err != nil {
		return nil, err
	}

	logger.Info("School settings updated",
		zap.String("school_id", id),
		zap.Bool("allow_new_devices", req.AllowNewDevices),
		zap.String("event", "school_updated"),
	)

	return s.Get(ctx, id)
}

func (s *Service) UpdateLogo(ctx context.Context, id string, req *UpdateLogoRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := s.schoolRepo.UpdateLogo(ctx, id, req.LogoURL); err != nil {
		return err
	}

	logger.Info("School logo updated",
		zap.String("school_id", id),
		zap.String("event", "school_logo_updated"),
	)

	return nil
}
