package service

import (
	"fmt"
	"math"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
	"github.com/berryseed/327project-group10/pkg/clock"
)

const (
	planningHorizonDays   = 7
	unavailableStep       = 30
	fullStudyDayMinutes   = 8 * 60
	highPriorityPicks     = 5
	highPriorityReasoning = "High priority task scheduled during optimal study time"
	failedTimeSlots       = "failed to generate time slots"
)

// SlotGenerator produces a forward week of study and break slots.
type SlotGenerator struct {
	resolver *ConstraintResolver
	clock    clock.Clock
}

// NewSlotGenerator builds a generator. A nil clock uses the host zone.
func NewSlotGenerator(resolver *ConstraintResolver, clk clock.Clock) *SlotGenerator {
	if clk == nil {
		clk = clock.NewReal(nil)
	}
	return &SlotGenerator{resolver: resolver, clock: clk}
}

// GenerateTimeSlots builds slots for the preferred days among the next seven, starting today.
// Invalid preferences or override windows yield success=false and the fixed fallback plan.
func (g *SlotGenerator) GenerateTimeSlots(tasks []models.Task, prefs *models.UserPreferences, override dto.AvailabilityOverride) dto.TimeSlotResult {
	if prefs == nil {
		return g.failTimeSlots(fmt.Errorf("user preferences are required"))
	}
	if err := prefs.Check(); err != nil {
		return g.failTimeSlots(err)
	}
	extra, err := parseOverride(override)
	if err != nil {
		return g.failTimeSlots(err)
	}
	window, _ := prefs.ParsedWindow()

	today := models.NewDate(g.clock.Now())
	days := make([]dto.DaySlots, 0, planningHorizonDays)
	for offset := 0; offset < planningHorizonDays; offset++ {
		date := today.AddDays(offset)
		wd := date.Weekday()
		if !prefs.Prefers(wd) {
			continue
		}
		dayName := models.WeekdayName(wd)
		days = append(days, dto.DaySlots{
			Date:  date.String(),
			Day:   dayName,
			Slots: g.daySlots(date, window, *prefs, extra[dayName]),
		})
	}

	recs := g.recommendations(tasks, days)
	return dto.TimeSlotResult{Success: true, TimeSlots: days, Recommendations: &recs}
}

func (g *SlotGenerator) daySlots(date models.Date, window models.Window, prefs models.UserPreferences, extra []ResolvedInterval) []dto.TimeSlot {
	slots := []dto.TimeSlot{}
	cursor := window.Start

	for cursor < window.End {
		if g.resolver.UnavailableAt(date, cursor) || containsAny(extra, cursor) {
			cursor += unavailableStep
			continue
		}

		placed, moved := false, false
		for _, duration := range prefs.StudyBlocks {
			studyEnd := cursor + duration
			if studyEnd > window.End {
				break
			}
			if next, blocked := g.overlap(date, extra, cursor, studyEnd); blocked {
				cursor = next
				moved = true
				break
			}

			slots = append(slots, dto.TimeSlot{
				StartTime: models.FormatClock(cursor),
				EndTime:   models.FormatClock(studyEnd),
				Duration:  duration,
				Type:      dto.SlotStudy,
				Available: true,
			})
			placed = true
			cursor = studyEnd

			breakEnd := studyEnd + prefs.BreakDuration
			if prefs.BreakDuration <= 0 || breakEnd >= window.End {
				continue
			}
			if _, blocked := g.overlap(date, extra, studyEnd, breakEnd); blocked {
				continue
			}
			slots = append(slots, dto.TimeSlot{
				StartTime: models.FormatClock(studyEnd),
				EndTime:   models.FormatClock(breakEnd),
				Duration:  prefs.BreakDuration,
				Type:      dto.SlotBreak,
				Available: false,
			})
			cursor = breakEnd
		}

		if !placed && !moved {
			break
		}
	}
	return slots
}

func (g *SlotGenerator) overlap(date models.Date, extra []ResolvedInterval, start, end int) (int, bool) {
	latest, found := g.resolver.UnavailableOverlap(date, start, end)
	for _, iv := range extra {
		if models.Overlaps(iv.Start, iv.End, start, end) {
			if !found || iv.End > latest {
				latest = iv.End
			}
			found = true
		}
	}
	return latest, found
}

// --- Recommendations ---

type datedSlot struct {
	date string
	slot dto.TimeSlot
}

func availableStudySlots(days []dto.DaySlots) []datedSlot {
	var out []datedSlot
	for _, day := range days {
		for _, slot := range day.Slots {
			if slot.Type == dto.SlotStudy && slot.Available {
				out = append(out, datedSlot{date: day.Date, slot: slot})
			}
		}
	}
	return out
}

func (g *SlotGenerator) recommendations(tasks []models.Task, days []dto.DaySlots) dto.Recommendations {
	recs := dto.Recommendations{
		HighPriorityTasks:    []dto.HighPriorityRecommendation{},
		OptimalStudyTimes:    []string{},
		WorkloadDistribution: make(map[string]dto.DayWorkload),
	}

	study := availableStudySlots(days)
	sorted := SortTasksByPriority(tasks)
	for i, task := range sorted {
		if i >= highPriorityPicks || i >= len(study) {
			break
		}
		recs.HighPriorityTasks = append(recs.HighPriorityTasks, dto.HighPriorityRecommendation{
			Task:            task.Title,
			TaskID:          task.ID,
			Date:            study[i].date,
			RecommendedSlot: study[i].slot,
			Reasoning:       highPriorityReasoning,
		})
	}

	for _, day := range days {
		count, total := 0, 0
		for _, slot := range day.Slots {
			if slot.Type == dto.SlotStudy && slot.Available {
				count++
				total += slot.Duration
			}
		}
		recs.WorkloadDistribution[day.Day] = dto.DayWorkload{
			AvailableSlots: count,
			TotalStudyTime: total,
			Efficiency:     dayEfficiency(total, day.Day),
		}
	}

	recs.StudyTips = g.studyTips(tasks, study)
	return recs
}

func dayEfficiency(studyMinutes int, dayName string) int {
	load := math.Min(float64(studyMinutes)/fullStudyDayMinutes, 1)
	return int(math.Round(models.EfficiencyForDay(dayName) * load * 100))
}

func (g *SlotGenerator) studyTips(tasks []models.Task, study []datedSlot) []string {
	tips := []string{}

	types := make(map[models.TaskType]int)
	urgent := 0
	approaching := 0
	now := g.clock.Now()
	for _, t := range tasks {
		types[t.TaskType]++
		if t.Priority == models.PriorityUrgent || t.Priority == models.PriorityHigh {
			urgent++
		}
		if t.Deadline != nil {
			daysUntil := int(math.Ceil(t.Deadline.Sub(now).Hours() / 24))
			if daysUntil >= 0 && daysUntil <= 3 {
				approaching++
			}
		}
	}

	if types[models.TaskExam] > 0 {
		tips = append(tips,
			"Schedule exam preparation during your most productive hours (usually morning)",
			"Use active recall techniques - test yourself instead of just re-reading",
			"Create summary sheets for each subject to review before exams",
		)
	}
	if types[models.TaskAssignment] > 0 {
		tips = append(tips,
			"Break down large assignments into smaller, manageable chunks",
			"Start with the hardest parts first when your energy is highest",
			"Set mini-deadlines for each section to stay on track",
		)
	}
	if types[models.TaskProject] > 0 {
		tips = append(tips,
			"Allocate longer study blocks (2-3 hours) for complex projects",
			"Plan regular progress reviews to catch issues early",
			"Create a project timeline with clear milestones",
		)
	}
	if urgent > 2 {
		tips = append(tips,
			"You have multiple urgent tasks - prioritize by deadline and impact",
			"Consider asking for extensions on lower-priority items if needed",
		)
	}
	if approaching > 0 {
		tips = append(tips,
			fmt.Sprintf("%d deadline(s) approaching - focus on these first", approaching),
			"Use the Pomodoro technique (25 min work, 5 min break) for intense focus",
		)
	}

	total, morning := 0, 0
	for _, s := range study {
		total += s.slot.Duration
		if start, err := models.ParseClock(s.slot.StartTime); err == nil && start < 12*60 {
			morning++
		}
	}
	if morning > 0 {
		tips = append(tips,
			"Use morning slots for difficult subjects when your mind is fresh",
			"Morning study sessions are typically 40% more productive",
		)
	}
	switch {
	case total > 300:
		tips = append(tips,
			"Consider reducing daily study time to maintain focus and prevent burnout",
			"Take longer breaks (15-30 min) between intensive study sessions",
		)
	case total < 120:
		tips = append(tips, "You have light study time - use it to get ahead on future assignments")
	}

	return append(tips,
		"Eliminate distractions by putting your phone in another room",
		"Take a 10-minute walk between study sessions to refresh your mind",
		"Stay hydrated and have healthy snacks nearby",
	)
}

// --- Fallback ---

func (g *SlotGenerator) failTimeSlots(err error) dto.TimeSlotResult {
	fallback := FallbackTimeSlots(models.NewDate(g.clock.Now()))
	return dto.TimeSlotResult{
		Success:  false,
		Error:    fmt.Sprintf("%s: %v", failedTimeSlots, err),
		Fallback: &fallback,
	}
}

// FallbackTimeSlots is the fixed four-slot plan used when generation fails.
func FallbackTimeSlots(today models.Date) dto.TimeSlotResult {
	slot := func(start, end string) dto.TimeSlot {
		return dto.TimeSlot{StartTime: start, EndTime: end, Duration: 60, Type: dto.SlotStudy, Available: true}
	}
	return dto.TimeSlotResult{
		Success: false,
		TimeSlots: []dto.DaySlots{{
			Date: today.String(),
			Day:  "today",
			Slots: []dto.TimeSlot{
				slot("09:00", "10:00"),
				slot("10:15", "11:15"),
				slot("14:00", "15:00"),
				slot("15:15", "16:15"),
			},
		}},
		Recommendations: &dto.Recommendations{
			HighPriorityTasks:    []dto.HighPriorityRecommendation{},
			OptimalStudyTimes:    []string{"09:00-10:00", "14:00-15:00"},
			WorkloadDistribution: map[string]dto.DayWorkload{"today": {AvailableSlots: 4, TotalStudyTime: 240, Efficiency: 80}},
			StudyTips:            []string{"Use morning hours for difficult subjects", "Take regular breaks to maintain focus"},
		},
	}
}

func parseOverride(override dto.AvailabilityOverride) (map[string][]ResolvedInterval, error) {
	out := make(map[string][]ResolvedInterval, len(override))
	for day, windows := range override {
		wd, ok := models.ParseWeekday(day)
		if !ok {
			return nil, fmt.Errorf("unknown override day %q", day)
		}
		name := models.WeekdayName(wd)
		for _, w := range windows {
			start, err := models.ParseClock(w.Start)
			if err != nil {
				return nil, fmt.Errorf("override %s: %w", day, err)
			}
			end, err := models.ParseClock(w.End)
			if err != nil {
				return nil, fmt.Errorf("override %s: %w", day, err)
			}
			out[name] = append(out[name], ResolvedInterval{
				Start:     start,
				End:       end,
				BlockType: models.BlockUnavailable,
				Source:    models.SourceUser,
				Label:     "override",
			})
		}
	}
	return out, nil
}

func containsAny(intervals []ResolvedInterval, minute int) bool {
	for _, iv := range intervals {
		if iv.Contains(minute) {
			return true
		}
	}
	return false
}
