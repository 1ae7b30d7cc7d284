package service

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
	appErrors "github.com/berryseed/327project-group10/pkg/errors"
)

func sampleSchedule() dto.OptimalScheduleResult {
	course := "CS327"
	return dto.OptimalScheduleResult{
		Success: true,
		Schedule: &dto.OptimalSchedule{
			Daily: map[string]dto.DailyPlan{
				"2025-01-07": {Day: "tuesday", Tasks: []dto.ScheduledTask{{
					Task:     models.Task{ID: "t2", Title: "Reading", Priority: models.PriorityLow, TaskType: models.TaskType("study")},
					TimeSlot: dto.TimeSlot{StartTime: "09:00", EndTime: "09:25", Duration: 25},
				}}},
				"2025-01-06": {Day: "monday", Tasks: []dto.ScheduledTask{{
					Task:     models.Task{ID: "t1", Title: "Essay", Priority: models.PriorityHigh, TaskType: models.TaskType("assignment"), CourseCode: &course},
					TimeSlot: dto.TimeSlot{StartTime: "09:00", EndTime: "09:50", Duration: 50},
				}}},
			},
		},
	}
}

func TestExportServiceRendersCSVInDateOrder(t *testing.T) {
	svc := NewExportService(true, zap.NewNop(), nil, nil)

	out, err := svc.RenderSchedule(sampleSchedule(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "study-plan_2025-01-06.csv", out.Filename)
	assert.Equal(t, "text/csv", out.ContentType)
	expected := "Date,Day,Start,End,Minutes,Task,Priority,Type,Course\n" +
		"2025-01-06,monday,09:00,09:50,50,Essay,high,assignment,CS327\n" +
		"2025-01-07,tuesday,09:00,09:25,25,Reading,low,study,\n" +
		"Total,,,,75,,,,\n"
	assert.Equal(t, expected, string(out.Body))
}

func TestExportServiceRendersPDF(t *testing.T) {
	svc := NewExportService(true, zap.NewNop(), nil, nil)

	out, err := svc.RenderSchedule(sampleSchedule(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.True(t, bytes.HasPrefix(out.Body, []byte("%PDF")))
}

func TestExportServiceUsesFallbackSchedule(t *testing.T) {
	svc := NewExportService(true, zap.NewNop(), nil, nil)
	fallback := FallbackSchedule(models.MustDate("2025-01-06"), []models.Task{{ID: "t1", Title: "Essay"}})
	failed := dto.OptimalScheduleResult{Success: false, Error: "boom", Fallback: &fallback}

	out, err := svc.RenderSchedule(failed, ExportFormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(out.Body), "Essay")
}

func TestExportServiceErrors(t *testing.T) {
	disabled := NewExportService(false, zap.NewNop(), nil, nil)
	_, err := disabled.RenderSchedule(sampleSchedule(), ExportFormatCSV)
	assert.True(t, errors.Is(err, appErrors.ErrFeatureDisabled))

	svc := NewExportService(true, zap.NewNop(), nil, nil)
	_, err = svc.RenderSchedule(dto.OptimalScheduleResult{}, ExportFormatCSV)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = ParseExportFormat("xlsx")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	format, err := ParseExportFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatPDF, format)
}
