package school

import (
	"context"
	"fmt"
	"testing"
	"time"

	domainSchool "device-checkout/internal/domain/school"
	"device-checkout/internal/infrastructure/database/postgres"
	"device-checkout/internal/infrastructure/database/postgres/models"
	"device-checkout/internal/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func newTestService(t *testing.T) (*Service, *postgres.DB) {
	t.Helper()
	logger.InitNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := postgres.NewWithDialector(sqlite.Open(dsn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewService(postgres.NewSchoolRepository(db)), db
}

func seedSchool(t *testing.T, db *postgres.DB, id, name string) {
	t.Helper()
	require.NoError(t, db.DB.Create(&models.SchoolModel{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}).Error)
}

func TestListAndGet(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "kossman", "Benedict A. Kossman Elementary")
	seedSchool(t, db, "flocktown", "Flocktown-Kossman School")

	ctx := context.Background()

	schools, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, schools, 2)

	got, err := svc.Get(ctx, "kossman")
	require.NoError(t, err)
	assert.Equal(t, "Benedict A. Kossman Elementary", got.Name)
	assert.False(t, got.AllowNewDevices)

	_, err = svc.Get(ctx, "nowhere")
	assert.ErrorIs(t, err, domainSchool.ErrSchoolNotFound)
}

func TestUpdateSettings(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "kossman", "Benedict A. Kossman Elementary")

	ctx := context.Background()

	addr := "50 West Mill Road"
	updated, err := svc.Update(ctx, "kossman", &UpdateSchoolRequest{
		Name:            "Kossman Elementary",
		AllowNewDevices: true,
		Address:         &addr,
	})
	require.NoError(t, err)
	assert.Equal(t, "Kossman Elementary", updated.Name)
	assert.True(t, updated.AllowNewDevices)
	require.NotNil(t, updated.Address)
	assert.Equal(t, addr, *updated.Address)

	_, err = svc.Update(ctx, "nowhere", &UpdateSchoolRequest{Name: "Ghost School"})
	assert.ErrorIs(t, err, domainSchool.ErrSchoolNotFound)
}

func TestUpdateLogo(t *testing.T) {
	svc, db := newTestService(t)
	seedSchool(t, db, "kossman", "Benedict A. Kossman Elementary")

	ctx := context.Background()

	err := svc.UpdateLogo(ctx, "kossman", &UpdateLogoRequest{LogoURL: "/uploads/kossman.png"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "kossman")
	require.NoError(t, err)
	require.NotNil(t, got.LogoURL)
	assert.Equal(t, "/uploads/kossman.png", *got.LogoURL)

	err = svc.UpdateLogo(ctx, "nowhere", &UpdateLogoRequest{LogoURL: "/uploads/x.png"})
	assert.ErrorIs(t, err, domainSchool.ErrSchoolNotFound)
}
