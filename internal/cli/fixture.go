package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
	"github.com/berryseed/327project-group10/internal/service"
	"github.com/berryseed/327project-group10/pkg/clock"
)

// Fixture is the offline input document.
type Fixture struct {
	Today             string                         `json:"today"`
	Blocks            []models.TimeBlock             `json:"blocks"`
	Exceptions        []models.AvailabilityException `json:"exceptions"`
	Classes           []models.ClassScheduleEntry    `json:"classes"`
	Tasks             []models.Task                  `json:"tasks"`
	Preferences       *models.UserPreferences        `json:"preferences"`
	CandidateSchedule []dto.CandidateScheduleItem    `json:"candidateSchedule"`
	AvailableTime     dto.AvailabilityOverride       `json:"availableTime"`
	Constraints       *dto.ScheduleConstraints       `json:"constraints"`
}

func readFixture(path string, stdin io.Reader) (*Fixture, error) {
	var r io.Reader = stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open fixture: %w", err)
		}
		defer f.Close()
		r = f
	}

	var fx Fixture
	if err := json.NewDecoder(r).Decode(&fx); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if fx.Preferences == nil {
		defaults := models.DefaultPreferences()
		fx.Preferences = &defaults
	}
	return &fx, nil
}

// Engine builds a planning engine pinned to the fixture's start date. override wins over Today.
func (f *Fixture) Engine(override string) (*service.PlanningEngine, error) {
	clk, err := f.clock(override)
	if err != nil {
		return nil, err
	}
	snapshot := service.ConstraintSnapshot{
		Blocks:     f.Blocks,
		Exceptions: f.Exceptions,
		Classes:    f.Classes,
	}
	return service.NewPlanningEngine(snapshot, clk), nil
}

func (f *Fixture) clock(override string) (clock.Clock, error) {
	raw := f.Today
	if override != "" {
		raw = override
	}
	if raw == "" {
		return clock.NewReal(nil), nil
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid today %q: %w", raw, err)
	}
	return clock.NewFakeClock(date.Time.Add(8 * time.Hour)), nil
}
