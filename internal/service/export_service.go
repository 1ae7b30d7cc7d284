package service

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/berryseed/327project-group10/internal/dto"
	appErrors "github.com/berryseed/327project-group10/pkg/errors"
	"github.com/berryseed/327project-group10/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

var (
	scheduleHeaders = []string{"Date", "Day", "Start", "End", "Minutes", "Task", "Priority", "Type", "Course"}
	scheduleWeights = map[string]float64{"Date": 1.4, "Day": 1.3, "Task": 3.5, "Course": 1.3}
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered plan ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders optimal schedules as CSV or PDF.
type ExportService struct {
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	enabled bool
}

// NewExportService constructs an ExportService. Nil renderers use the pkg/export defaults.
func NewExportService(enabled bool, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, logger: logger, enabled: enabled}
}

// ParseExportFormat accepts csv or pdf, case-insensitively. Empty means csv.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ExportFormatCSV):
		return ExportFormatCSV, nil
	case string(ExportFormatPDF):
		return ExportFormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", raw))
	}
}

// RenderSchedule renders the effective schedule of result (the fallback when generation failed).
func (s *ExportService) RenderSchedule(result dto.OptimalScheduleResult, format ExportFormat) (*ExportResult, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "exports are disabled")
	}
	schedule := result.Effective()
	if schedule == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no schedule to export")
	}

	dataset := ScheduleDataset(*schedule)
	title := "Study plan"
	if dates := schedule.Dates(); len(dates) > 0 {
		title = fmt.Sprintf("Study plan %s to %s", dates[0], dates[len(dates)-1])
	}

	var (
		body        []byte
		contentType string
		err         error
	)
	switch format {
	case ExportFormatCSV:
		body, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case ExportFormatPDF:
		body, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		s.logger.Error("schedule export failed", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to render schedule")
	}

	return &ExportResult{
		Filename:    buildFilename(schedule.Dates(), format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// ScheduleDataset flattens the plan into one row per scheduled task, ordered by date,
// followed by a total minutes footer.
func ScheduleDataset(schedule dto.OptimalSchedule) export.Dataset {
	rows := make([]map[string]string, 0)
	total := 0
	for _, date := range schedule.Dates() {
		plan := schedule.Daily[date]
		for _, item := range plan.Tasks {
			course := ""
			if item.Task.CourseCode != nil {
				course = *item.Task.CourseCode
			}
			rows = append(rows, map[string]string{
				"Date":     date,
				"Day":      plan.Day,
				"Start":    item.TimeSlot.StartTime,
				"End":      item.TimeSlot.EndTime,
				"Minutes":  strconv.Itoa(item.TimeSlot.Duration),
				"Task":     item.Task.Title,
				"Priority": string(item.Task.Priority),
				"Type":     string(item.Task.TaskType),
				"Course":   course,
			})
			total += item.TimeSlot.Duration
		}
	}
	return export.Dataset{
		Headers: scheduleHeaders,
		Rows:    rows,
		Weights: scheduleWeights,
		Footer:  map[string]string{"Date": "Total", "Minutes": strconv.Itoa(total)},
	}
}

func buildFilename(dates []string, format ExportFormat) string {
	if len(dates) == 0 {
		return fmt.Sprintf("study-plan.%s", format)
	}
	return fmt.Sprintf("study-plan_%s.%s", dates[0], format)
}
