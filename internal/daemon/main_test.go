package daemon

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offering-catalog/catalog-api/internal/config"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/directory"
)

func testConfig() *config.Config {
	return &config.Config{
		Title: "Offering Catalog API",
		Webserver: config.Webserver{
			Port:      8000,
			URL:       "http://localhost:8000",
			APIPrefix: "/api/v1",
			Session:   config.Session{ExpiryTime: time.Hour, SameSite: "Lax"},
		},
		Frontend: config.Frontend{URL: "http://localhost:3000", LandingPath: "/catalog", LoginPath: "/login"},
		Directory: config.Directory{
			Kind:                   directory.KindStatic,
			AdminGroup:             "admins",
			SolutionArchitectGroup: "architects",
		},
		DB: config.DB{GormEngine: "sqlite"},
	}
}

func TestNew(t *testing.T) {
	d, err := New(testConfig())
	require.NoError(t, err)

	var countries int64
	require.NoError(t, d.db.Model(&models.Country{}).Count(&countries).Error)
	assert.Equal(t, int64(len(defaultCountries)), countries)

	// seeding twice keeps the table as is
	require.NoError(t, seed(d.db))
	require.NoError(t, d.db.Model(&models.Country{}).Count(&countries).Error)
	assert.Equal(t, int64(len(defaultCountries)), countries)

	resp, err := d.App().Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestNewErrors(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrConfigNil)

	cfg := testConfig()
	cfg.Directory.Static.AllowAll = true

	_, err = New(cfg)
	require.ErrorIs(t, err, directory.ErrAllowAllRequiresDevMode)

	cfg.DevMode = true

	_, err = New(cfg)
	require.NoError(t, err)

	cfg = testConfig()
	cfg.DB.GormEngine = "oracle"

	_, err = OpenDB(cfg)
	require.ErrorIs(t, err, config.ErrUnknownGormEngine)
}
