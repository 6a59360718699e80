package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklane-hq/hr-backoffice-go/internal/fixtures"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	// Empty values fall through to the built-in defaults.
	t.Setenv("APP_PORT", "")
	t.Setenv("WEEKLY_OFF_DAY", "")
	t.Setenv("ATTENDANCE_AUTO_CLOSE_AFTER", "")
	t.Setenv("CLEARANCE_DEPARTMENTS", "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, time.Sunday, cfg.Workflow.WeeklyOffDay)
	assert.Equal(t, 24*time.Hour, cfg.Workflow.AttendanceAutoCloseAt)
	assert.Equal(t, fixtures.DefaultClearanceDepartments, cfg.Workflow.ClearanceDepartments)
}

func TestLoad_ClearanceDepartmentsOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CLEARANCE_DEPARTMENTS", "HR, Security ,Facilities")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"HR", "Security", "Facilities"}, cfg.Workflow.ClearanceDepartments)
}

func TestLoad_InvalidWeeklyOffDay(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WEEKLY_OFF_DAY", "Funday")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}
