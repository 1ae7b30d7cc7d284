package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
	appErrors "github.com/berryseed/327project-group10/pkg/errors"
)

func TestPreferenceServiceGetDefaults(t *testing.T) {
	svc := NewPreferenceService(&prefRepoStub{}, nil, nil, nil, zap.NewNop())

	prefs, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", prefs.UserID)
	assert.Equal(t, []int{25, 50, 90}, prefs.StudyBlocks)
	assert.Equal(t, models.WorkHours{Start: "09:00", End: "17:00"}, prefs.WorkHours)
}

func TestPreferenceServiceGetPropagatesFailures(t *testing.T) {
	svc := NewPreferenceService(&prefRepoStub{err: errors.New("db down")}, nil, nil, nil, zap.NewNop())

	_, err := svc.Get(context.Background(), "user-1")
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}

func TestPreferenceServiceUpdateNormalisesAndInvalidates(t *testing.T) {
	repo := &prefRepoStub{}
	cache := &invalidatorStub{}
	warmer := &warmerStub{}
	svc := NewPreferenceService(repo, cache, warmer, nil, zap.NewNop())

	prefs, err := svc.Update(context.Background(), "user-1", dto.UpdatePreferencesRequest{
		WorkHours:     models.WorkHours{Start: "08:00", End: "16:00"},
		StudyBlocks:   []int{50},
		BreakDuration: 10,
		PreferredDays: []string{"Monday", "monday", " FRIDAY "},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"monday", "friday"}, prefs.PreferredDays)
	assert.Equal(t, 25, prefs.PomodoroDuration)
	require.NotNil(t, repo.stored)
	assert.Equal(t, "user-1", repo.stored.UserID)
	assert.Equal(t, []string{"user-1"}, cache.users)
	assert.Equal(t, []string{"user-1"}, warmer.users)
}

func TestPreferenceServiceUpdateRejectsInvertedHours(t *testing.T) {
	repo := &prefRepoStub{}
	svc := NewPreferenceService(repo, nil, nil, nil, zap.NewNop())

	_, err := svc.Update(context.Background(), "user-1", dto.UpdatePreferencesRequest{
		WorkHours:     models.WorkHours{Start: "17:00", End: "09:00"},
		StudyBlocks:   []int{25},
		PreferredDays: []string{"monday"},
	})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidPreferences))
	assert.Nil(t, repo.stored)
}

func TestPreferenceServiceUpdateRejectsBadPayload(t *testing.T) {
	svc := NewPreferenceService(&prefRepoStub{}, nil, nil, nil, zap.NewNop())

	_, err := svc.Update(context.Background(), "user-1", dto.UpdatePreferencesRequest{
		WorkHours:     models.WorkHours{Start: "9am", End: "17:00"},
		StudyBlocks:   []int{25},
		PreferredDays: []string{"funday"},
	})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
