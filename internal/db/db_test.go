package db

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/internal/config"
	"github.com/diewo77/go-hebergement/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   "file:" + t.Name() + "?mode=memory&cache=shared",
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	return conn
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, zerolog.Nop())
	assert.ErrorContains(t, err, "oracle")
}

func TestSeed_Idempotent(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, Seed(conn))
	require.NoError(t, Seed(conn))

	var perms, profiles, templates int64
	conn.Model(&models.Permission{}).Count(&perms)
	conn.Model(&models.Profile{}).Count(&profiles)
	conn.Model(&models.DocumentTemplate{}).Count(&templates)
	assert.EqualValues(t, len(permissionSeeds), perms)
	assert.EqualValues(t, 3, profiles)
	assert.EqualValues(t, 4, templates)

	var operateur models.Profile
	require.NoError(t, conn.Preload("Permissions").Where("name = ?", "operateur").First(&operateur).Error)
	assert.Contains(t, operateur.Codes(), "document:*")
	assert.NotContains(t, operateur.Codes(), "*:*")
}

func TestSeedTemplates_KeepsVariableOrder(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, SeedTemplates(conn))

	var rec models.DocumentTemplate
	require.NoError(t, conn.Preload("Variables", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Where("code = ?", "facture").First(&rec).Error)

	tpl := rec.Template()
	require.NotEmpty(t, tpl.Variables)
	assert.Equal(t, "numero_facture", tpl.Variables[0].Name)
	assert.NoError(t, tpl.Check())
}

func TestSeedDemo(t *testing.T) {
	conn := openTestDB(t)
	require.Error(t, SeedDemo(conn), "profiles are required")

	require.NoError(t, SeedProfiles(conn))
	require.NoError(t, SeedDemo(conn))
	require.NoError(t, SeedDemo(conn))

	var hotels, reservations int64
	conn.Model(&models.Hotel{}).Count(&hotels)
	conn.Model(&models.Reservation{}).Count(&reservations)
	assert.EqualValues(t, 2, hotels)
	assert.EqualValues(t, 3, reservations)

	var admin models.User
	require.NoError(t, conn.Preload("Profile").Where("email = ?", "admin@hebergement.example").First(&admin).Error)
	require.NotNil(t, admin.Profile)
	assert.Equal(t, "admin", admin.Profile.Name)
}
