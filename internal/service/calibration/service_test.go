package calibration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petokpredict/server/internal/domain/models"
)

type fakeRepo struct {
	mu      sync.Mutex
	stored  *models.AdvancedSettings
	loadErr error
	saveErr error
	saves   int
}

func (r *fakeRepo) LoadSettings(_ context.Context, _ string) (*models.AdvancedSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.stored, nil
}

func (r *fakeRepo) SaveSettings(_ context.Context, _ string, s models.AdvancedSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := s
	r.stored = &copied
	r.saves++
	return nil
}

func (r *fakeRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

type fakeAdvice struct {
	payload *models.AdvicePayload
	err     error
	block   chan struct{}
}

func (a *fakeAdvice) GenerateAdvice(_ context.Context, _ models.AdviceRequest) (*models.AdvicePayload, error) {
	if a.block != nil {
		<-a.block
	}
	return a.payload, a.err
}

func TestServiceLoadMissingRecordUsesDefaults(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil, "test", nil)
	svc.Load(context.Background())

	assert.Equal(t, models.DefaultAdvancedSettings(), svc.Settings())
}

func TestServiceLoadFailureUsesDefaults(t *testing.T) {
	repo := &fakeRepo{loadErr: errors.New("mongo down")}
	svc := NewService(repo, nil, "test", nil)
	svc.Load(context.Background())

	assert.Equal(t, models.DefaultAdvancedSettings(), svc.Settings())
}

func TestServiceLoadRestoresStoredRecord(t *testing.T) {
	stored := models.DefaultAdvancedSettings()
	stored.Enabled = true
	stored.LaborCost = 420000
	repo := &fakeRepo{stored: &stored}

	svc := NewService(repo, nil, "test", nil)
	svc.Load(context.Background())

	settings := svc.Settings()
	assert.True(t, settings.Enabled)
	assert.Equal(t, 420000.0, settings.LaborCost)
}

func TestServiceApplyPersists(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil, "test", nil)

	settings := svc.Apply(context.Background(), models.AdvancedPatch{LaborCost: float64Ptr(275000)})

	assert.Equal(t, 275000.0, settings.LaborCost)
	require.NotNil(t, repo.stored)
	assert.Equal(t, 275000.0, repo.stored.LaborCost)
}

func TestServiceTogglePersistsOnlyOnChange(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil, "test", nil)

	res := svc.Toggle(context.Background(), false, ToggleOptions{})
	assert.False(t, res.Changed)
	assert.Equal(t, 0, repo.saveCount())

	res = svc.Toggle(context.Background(), true, ToggleOptions{})
	assert.True(t, res.Changed)
	assert.Equal(t, 1, repo.saveCount())
}

func TestServiceRefreshAdviceHydratesAndPersists(t *testing.T) {
	repo := &fakeRepo{}
	advice := &fakeAdvice{payload: &models.AdvicePayload{LaborCostIDR: float64Ptr(333000)}}
	svc := NewService(repo, advice, "test", nil)

	settings, err := svc.RefreshAdvice(context.Background(), models.AdviceRequest{Population: 100})

	require.NoError(t, err)
	assert.Equal(t, 333000.0, settings.LaborCost)
	assert.NotNil(t, settings.AdviceMeta.LastSync)
	require.NotNil(t, repo.stored)
	assert.Equal(t, 333000.0, repo.stored.LaborCost)
}

func TestServiceRefreshAdviceSingleFlight(t *testing.T) {
	block := make(chan struct{})
	advice := &fakeAdvice{
		payload: &models.AdvicePayload{LaborCostIDR: float64Ptr(333000)},
		block:   block,
	}
	svc := NewService(&fakeRepo{}, advice, "test", nil)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.RefreshAdvice(context.Background(), models.AdviceRequest{})
		firstDone <- err
	}()

	// Wait until the first request holds the in-flight slot.
	require.Eventually(t, func() bool {
		return svc.adviceInFlight.Load()
	}, 2*time.Second, 5*time.Millisecond)

	_, err := svc.RefreshAdvice(context.Background(), models.AdviceRequest{})
	assert.ErrorIs(t, err, ErrAdviceInFlight)

	close(block)
	require.NoError(t, <-firstDone)

	// Slot released; a new request goes through.
	_, err = svc.RefreshAdvice(context.Background(), models.AdviceRequest{})
	assert.NoError(t, err)
}

func TestServiceRefreshAdviceClientError(t *testing.T) {
	repo := &fakeRepo{}
	advice := &fakeAdvice{err: errors.New("groq unavailable")}
	svc := NewService(repo, advice, "test", nil)

	_, err := svc.RefreshAdvice(context.Background(), models.AdviceRequest{})

	require.Error(t, err)
	assert.Equal(t, 0, repo.saveCount())
	// Settings untouched on failure.
	assert.Equal(t, models.DefaultAdvancedSettings(), svc.Settings())
}

func TestServiceRefreshAdviceEmptyPayload(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeAdvice{payload: &models.AdvicePayload{}}, "test", nil)

	_, err := svc.RefreshAdvice(context.Background(), models.AdviceRequest{})
	assert.ErrorIs(t, err, ErrEmptyAdvice)
}

func TestServiceNoAdviceClient(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil, "test", nil)

	_, err := svc.RefreshAdvice(context.Background(), models.AdviceRequest{})
	assert.Error(t, err)
}
