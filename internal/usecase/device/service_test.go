package device

import (
	"context"
	"fmt"
	"testing"
	"time"

	domainDevice "device-checkout/internal/domain/device"
	"device-checkout/internal/infrastructure/database/postgres"
	"device-checkout/internal/infrastructure/database/postgres/models"
	"device-checkout/internal/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func newTestDB(t *testing.T) *postgres.DB {
	t.Helper()
	logger.InitNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := postgres.NewWithDialector(sqlite.Open(dsn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestService(t *testing.T) (*Service, *postgres.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewService(postgres.NewDeviceRepository(db), postgres.NewSchoolRepository(db))
	return svc, db
}

func seedSchool(t *testing.T, db *postgres.DB, id string, allowNew bool) {
	t.Helper()
	err := db.DB.Create(&models.SchoolModel{
		ID:              id,
		Name:            "Test School " + id,
		AllowNewDevices: allowNew,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}).Error
	require.NoError(t, err)
}

func countLogs(t *testing.T, db *postgres.DB, assetTag string) int64 {
	t.Helper()
	var n int64
	err := db.DB.Model(&models.DeviceLogModel{}).Where("asset_tag = ?", assetTag).Count(&n).Error
	require.NoError(t, err)
	return n
}

func TestRegisterAndListDevices(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "kossman", false)

	ctx := context.Background()

	created, err := svc.Register(ctx, &RegisterDeviceRequest{
		AssetTag: "CB-1001",
		Model:    "chromebook",
		SchoolID: "kossman",
	})
	require.NoError(t, err)
	assert.Equal(t, "CB-1001", created.AssetTag)
	assert.Equal(t, string(domainDevice.StatusAvailable), created.Status)

	devices, err := svc.ListBySchool(ctx, "kossman")
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, created.ID, devices[0].ID)
}

func TestRegisterRejectsUnknownSchool(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), &RegisterDeviceRequest{
		AssetTag: "CB-1001",
		Model:    "chromebook",
		SchoolID: "nowhere",
	})
	require.Error(t, err)
}

func TestRegisterRejectsInvalidModel(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "kossman", false)

	_, err := svc.Register(context.Background(), &RegisterDeviceRequest{
		AssetTag: "CB-1001",
		Model:    "toaster",
		SchoolID: "kossman",
	})
	require.Error(t, err)
}

func TestDuplicateAssetTagAcrossSchools(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "kossman", false)
	seedSchool(t, db, "flocktown", false)

	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterDeviceRequest{
		AssetTag: "CB-1001", Model: "chromebook", SchoolID: "kossman",
	})
	require.NoError(t, err)

	// Asset tags are unique district-wide, not per school.
	_, err = svc.Register(ctx, &RegisterDeviceRequest{
		AssetTag: "CB-1001", Model: "chromebook", SchoolID: "flocktown",
	})
	assert.ErrorIs(t, err, domainDevice.ErrDuplicateAssetTag)
}

func TestCheckOutAndCheckIn(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "kossman", false)

	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterDeviceRequest{
		AssetTag: "CB-1001", Model: "chromebook", SchoolID: "kossman",
	})
	require.NoError(t, err)

	out, err := svc.CheckOut(ctx, "CB-1001", &CheckOutRequest{
		UserName:        "Jamie Rivera",
		Reason:          "left at home",
		HomeroomTeacher: "Ms. Park",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domainDevice.StatusCheckedOut), out.Status)
	require.NotNil(t, out.AssignedToName)
	assert.Equal(t, "Jamie Rivera", *out.AssignedToName)
	require.NotNil(t, out.AssignedAt)
	require.NotNil(t, out.AssignedReason)
	assert.Equal(t, "left at home", *out.AssignedReason)

	assert.EqualValues(t, 1, countLogs(t, db, "CB-1001"))

	in, err := svc.CheckIn(ctx, "CB-1001", nil)
	require.NoError(t, err)
	assert.Equal(t, string(domainDevice.StatusAvailable), in.Status)
	assert.Nil(t, in.AssignedToName)
	assert.Nil(t, in.AssignedAt)
	assert.Nil(t, in.AssignedReason)
	assert.Nil(t, in.HomeroomTeacher)

	assert.EqualValues(t, 2, countLogs(t, db, "CB-1001"))

	var logRow models.DeviceLogModel
	err = db.DB.Where("asset_tag = ? AND action = ?", "CB-1001", "checkin").First(&logRow).Error
	require.NoError(t, err)
	assert.Equal(t, "Jamie Rivera", logRow.UserName)
}

func TestCheckOutConflictLeavesStateUntouched(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "kossman", false)

	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterDeviceRequest{
		AssetTag: "CB-1001", Model: "chromebook", SchoolID: "kossman",
	})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, "CB-1001", &CheckOutRequest{UserName: "First Holder"})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, "CB-1001", &CheckOutRequest{UserName: "Second Holder"})
	assert.ErrorIs(t, err, domainDevice.ErrAlreadyCheckedOut)

	// The losing attempt writes nothing: assignment and trail are intact.
	var m models.DeviceModel
	require.NoError(t, db.DB.Where("asset_tag = ?", "CB-1001").First(&m).Error)
	require.NotNil(t, m.AssignedToName)
	assert.Equal(t, "First Holder", *m.AssignedToName)
	assert.EqualValues(t, 1, countLogs(t, db, "CB-1001"))
}

func TestCheckInAvailableDevice(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "kossman", false)

	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterDeviceRequest{
		AssetTag: "CB-1001", Model: "chromebook", SchoolID: "kossman",
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, "CB-1001", nil)
	assert.ErrorIs(t, err, domainDevice.ErrAlreadyAvailable)
	assert.EqualValues(t, 0, countLogs(t, db, "CB-1001"))
}

func TestCheckInUnknownHolderFallback(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "kossman", false)

	// A checked-out row with no holder name, as legacy data can leave it.
	err := db.DB.Create(&models.DeviceModel{
		ID:        uuid.New(),
		AssetTag:  "CB-2002",
		Model:     "chromebook",
		Status:    "checked_out",
		SchoolID:  "kossman",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}).Error
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), "CB-2002", nil)
	require.NoError(t, err)

	var logRow models.DeviceLogModel
	require.NoError(t, db.DB.Where("asset_tag = ?", "CB-2002").First(&logRow).Error)
	assert.Equal(t, "Unknown", logRow.UserName)
}

func TestCheckOutUnknownTagAutoRegisters(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "flocktown", true)

	out, err := svc.CheckOut(context.Background(), "CB-3003", &CheckOutRequest{
		UserName: "Sam Lee",
		SchoolID: "flocktown",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domainDevice.StatusCheckedOut), out.Status)
	assert.Equal(t, DefaultModel, out.Model)
	assert.Equal(t, "flocktown", out.SchoolID)
	assert.EqualValues(t, 1, countLogs(t, db, "CB-3003"))
}

func TestCheckOutUnknownTagRejectedWhenSchoolDisallows(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "kossman", false)

	ctx := context.Background()

	_, err := svc.CheckOut(ctx, "CB-3003", &CheckOutRequest{
		UserName: "Sam Lee",
		SchoolID: "kossman",
	})
	assert.ErrorIs(t, err, domainDevice.ErrDeviceNotFound)

	// Without a school hint there is nothing to register against either.
	_, err = svc.CheckOut(ctx, "CB-3003", &CheckOutRequest{UserName: "Sam Lee"})
	assert.ErrorIs(t, err, domainDevice.ErrDeviceNotFound)
}

func TestCheckInUnknownTagAutoRegistersThenReportsAvailable(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "flocktown", true)

	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "CB-4004", &CheckInRequest{SchoolID: "flocktown"})
	assert.ErrorIs(t, err, domainDevice.ErrAlreadyAvailable)

	// The device now exists and is available for the next checkout.
	var m models.DeviceModel
	require.NoError(t, db.DB.Where("asset_tag = ?", "CB-4004").First(&m).Error)
	assert.Equal(t, "available", m.Status)
}

func TestRemoveRetainsAuditTrail(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "kossman", false)

	ctx := context.Background()

	created, err := svc.Register(ctx, &RegisterDeviceRequest{
		AssetTag: "CB-1001", Model: "chromebook", SchoolID: "kossman",
	})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, "CB-1001", &CheckOutRequest{UserName: "Jamie Rivera"})
	require.NoError(t, err)

	deviceID := uuid.MustParse(created.ID)

	// Removal is unconditional, checked-out devices go too.
	require.NoError(t, svc.Remove(ctx, deviceID))

	_, err = svc.ListBySchool(ctx, "kossman")
	require.NoError(t, err)
	var n int64
	require.NoError(t, db.DB.Model(&models.DeviceModel{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)

	assert.EqualValues(t, 1, countLogs(t, db, "CB-1001"))

	assert.ErrorIs(t, svc.Remove(ctx, deviceID), domainDevice.ErrDeviceNotFound)
}
