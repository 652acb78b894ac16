package runtime

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven/mocks"
)

func TestServicesRewriteLifecycle(t *testing.T) {
	config := domain.NewRuntimeConfig("redis")
	services := NewServices(config)

	assert.Nil(t, services.RewriteService(), "no rewrite service initially")
	assert.False(t, config.RewriteAvailable())

	svc := mocks.NewMockRewriteService()
	services.SetRewriteService(svc)

	assert.NotNil(t, services.RewriteService())
	assert.True(t, config.RewriteAvailable())

	services.SetRewriteService(nil)
	assert.Nil(t, services.RewriteService())
	assert.False(t, config.RewriteAvailable())
}

func TestServicesValidateAndSetRewrite(t *testing.T) {
	config := domain.NewRuntimeConfig("redis")
	services := NewServices(config)

	healthy := mocks.NewMockRewriteService()
	require.NoError(t, services.ValidateAndSetRewrite(context.Background(), healthy))
	assert.True(t, config.RewriteAvailable())

	broken := mocks.NewMockRewriteService()
	broken.Err = errors.New("connection refused")
	require.Error(t, services.ValidateAndSetRewrite(context.Background(), broken))

	// The healthy service stays installed after a failed swap.
	assert.NotNil(t, services.RewriteService(), "previous service should remain after failed validation")
}

func TestServicesClose(t *testing.T) {
	config := domain.NewRuntimeConfig("postgres")
	services := NewServices(config)
	services.SetRewriteService(mocks.NewMockRewriteService())

	require.NoError(t, services.Close())
	assert.Nil(t, services.RewriteService())
	assert.False(t, config.RewriteAvailable())
}
