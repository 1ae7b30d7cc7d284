package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
	appErrors "github.com/berryseed/327project-group10/pkg/errors"
)

type preferenceServiceMock struct {
	updateCalled bool
	req          dto.UpdatePreferencesRequest
	resp         *models.UserPreferences
	err          error
}

func (m *preferenceServiceMock) Get(ctx context.Context, userID string) (*models.UserPreferences, error) {
	return m.resp, m.err
}

func (m *preferenceServiceMock) Update(ctx context.Context, userID string, req dto.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	m.updateCalled = true
	m.req = req
	return m.resp, m.err
}

func TestPreferenceHandlerGet(t *testing.T) {
	defaults := models.DefaultPreferences()
	handler := NewPreferenceHandler(&preferenceServiceMock{resp: &defaults})
	c, w := newTestContext(t, http.MethodGet, "/user-preferences", nil, true)

	handler.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"work_hours"`)
}

func TestPreferenceHandlerUpdate(t *testing.T) {
	defaults := models.DefaultPreferences()
	svc := &preferenceServiceMock{resp: &defaults}
	handler := NewPreferenceHandler(svc)
	c, w := newTestContext(t, http.MethodPut, "/user-preferences",
		[]byte(`{"work_hours":{"start":"08:00","end":"16:00"},"study_blocks":[30],"break_duration":5,"preferred_days":["monday"]}`), true)

	handler.Update(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, svc.updateCalled)
	assert.Equal(t, "08:00", svc.req.WorkHours.Start)
	assert.Equal(t, []int{30}, svc.req.StudyBlocks)
}

func TestPreferenceHandlerUpdateInvalid(t *testing.T) {
	svc := &preferenceServiceMock{err: appErrors.ErrInvalidPreferences}
	handler := NewPreferenceHandler(svc)
	c, w := newTestContext(t, http.MethodPut, "/user-preferences",
		[]byte(`{"work_hours":{"start":"17:00","end":"09:00"},"study_blocks":[30],"preferred_days":["monday"]}`), true)

	handler.Update(c)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPreferenceHandlerRequiresUser(t *testing.T) {
	svc := &preferenceServiceMock{}
	handler := NewPreferenceHandler(svc)
	c, w := newTestContext(t, http.MethodPut, "/user-preferences", []byte(`{}`), false)

	handler.Update(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, svc.updateCalled)
}
