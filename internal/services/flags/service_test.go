// File: internal/services/flags/service_test.go
package flags

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/launchkit/launchkit/internal/domain"
	"github.com/launchkit/launchkit/internal/repository/flag"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...any)  {}
func (nopLogger) Error(msg string, keysAndValues ...any) {}
func (nopLogger) Debug(msg string, keysAndValues ...any) {}
func (nopLogger) Warn(msg string, keysAndValues ...any)  {}

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.FeatureFlag{}))

	svc, err := NewService(flag.NewFlagRepository(db), nopLogger{})
	require.NoError(t, err)
	return svc
}

func TestUnknownFlagIsDisabled(t *testing.T) {
	svc := newTestService(t)

	assert.False(t, svc.IsEnabled(context.Background(), "never_created"))
}

func TestSetAndEvaluate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "new_onboarding", true, "rollout of the new onboarding flow"))
	assert.True(t, svc.IsEnabled(ctx, "new_onboarding"))

	require.NoError(t, svc.Set(ctx, "new_onboarding", false, ""))
	assert.False(t, svc.IsEnabled(ctx, "new_onboarding"))
}

func TestSetRejectsBadKey(t *testing.T) {
	svc := newTestService(t)

	assert.Error(t, svc.Set(context.Background(), "bad key with spaces", true, ""))
}

func TestAll(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "flag_a", true, ""))
	require.NoError(t, svc.Set(ctx, "flag_b", false, ""))

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
