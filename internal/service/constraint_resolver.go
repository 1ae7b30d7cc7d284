package service

import (
	"github.com/berryseed/327project-group10/internal/models"
)

// ConstraintSnapshot is the immutable set of stored constraints for one user.
type ConstraintSnapshot struct {
	Blocks     []models.TimeBlock
	Exceptions []models.AvailabilityException
	Classes    []models.ClassScheduleEntry
}

// ResolvedInterval is one constraint applying to a date, in minutes since midnight.
type ResolvedInterval struct {
	Start     int                `json:"start"`
	End       int                `json:"end"`
	BlockType models.BlockType   `json:"block_type"`
	Source    models.BlockSource `json:"source"`
	RefID     string             `json:"ref_id"`
	Label     string             `json:"label,omitempty"`
}

// Unavailable reports whether the interval blocks study time.
func (i ResolvedInterval) Unavailable() bool {
	return i.BlockType == models.BlockUnavailable
}

// Contains is half-open: the end minute is free.
func (i ResolvedInterval) Contains(minute int) bool {
	return i.Start <= minute && minute < i.End
}

// ConstraintResolver answers per-date queries over a snapshot. It is safe for concurrent use.
type ConstraintResolver struct {
	snapshot ConstraintSnapshot
	mirrored map[string]struct{}
}

// NewConstraintResolver indexes which classes already have a mirrored block.
func NewConstraintResolver(snapshot ConstraintSnapshot) *ConstraintResolver {
	mirrored := make(map[string]struct{})
	for _, b := range snapshot.Blocks {
		if b.Source == models.SourceClass && b.ClassScheduleID != nil {
			mirrored[*b.ClassScheduleID] = struct{}{}
		}
	}
	return &ConstraintResolver{snapshot: snapshot, mirrored: mirrored}
}

// ResolveDay returns every constraint for date without merging or deduplication:
// exceptions on the date, blocks on its weekday within their bounds, and classes
// whose mirrored block is missing from the snapshot.
func (r *ConstraintResolver) ResolveDay(date models.Date) []ResolvedInterval {
	var out []ResolvedInterval
	out = append(out, r.ExceptionsOn(date)...)
	out = append(out, r.BlocksOn(date)...)
	for _, c := range r.snapshot.Classes {
		if _, ok := r.mirrored[c.ID]; ok || !c.AppliesOn(date) {
			continue
		}
		for _, b := range models.DeriveBlocksFromClass(c) {
			if iv, ok := blockInterval(b); ok {
				iv.RefID = c.ID
				iv.Label = c.CourseCode
				out = append(out, iv)
			}
		}
	}
	return out
}

// ExceptionsOn lists exceptions dated exactly date.
func (r *ConstraintResolver) ExceptionsOn(date models.Date) []ResolvedInterval {
	var out []ResolvedInterval
	for _, e := range r.snapshot.Exceptions {
		if !e.Date.Equal(date) {
			continue
		}
		start, err1 := models.ParseClock(e.StartTime)
		end, err2 := models.ParseClock(e.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		blockType := e.BlockType
		if blockType == "" {
			blockType = models.BlockUnavailable
		}
		iv := ResolvedInterval{Start: start, End: end, BlockType: blockType, Source: models.SourceException, RefID: e.ID}
		if e.Reason != nil {
			iv.Label = *e.Reason
		}
		out = append(out, iv)
	}
	return out
}

// BlocksOn lists stored time blocks applying to date.
func (r *ConstraintResolver) BlocksOn(date models.Date) []ResolvedInterval {
	var out []ResolvedInterval
	for _, b := range r.snapshot.Blocks {
		if !b.AppliesOn(date) {
			continue
		}
		if iv, ok := blockInterval(b); ok {
			out = append(out, iv)
		}
	}
	return out
}

// ClassesOn lists class meetings on date, mirrored or not.
func (r *ConstraintResolver) ClassesOn(date models.Date) []ResolvedInterval {
	var out []ResolvedInterval
	for _, c := range r.snapshot.Classes {
		if !c.AppliesOn(date) {
			continue
		}
		start, err1 := models.ParseClock(c.StartTime)
		end, err2 := models.ParseClock(c.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, ResolvedInterval{
			Start:     start,
			End:       end,
			BlockType: models.BlockUnavailable,
			Source:    models.SourceClass,
			RefID:     c.ID,
			Label:     c.CourseCode,
		})
	}
	return out
}

// UnavailableAt reports whether minute is blocked on date. An unavailable exception always
// blocks; an available or preferred exception covering the minute lifts recurring blocks.
func (r *ConstraintResolver) UnavailableAt(date models.Date, minute int) bool {
	exceptions := r.ExceptionsOn(date)
	lifted := false
	for _, e := range exceptions {
		if !e.Contains(minute) {
			continue
		}
		if e.Unavailable() {
			return true
		}
		lifted = true
	}
	if lifted {
		return false
	}
	for _, iv := range r.ResolveDay(date) {
		if iv.Source != models.SourceException && iv.Unavailable() && iv.Contains(minute) {
			return true
		}
	}
	return false
}

// UnavailableOverlap returns the latest end among unavailable intervals overlapping [start, end).
// Recurring intervals are ignored where an available exception covers the whole intersection.
func (r *ConstraintResolver) UnavailableOverlap(date models.Date, start, end int) (int, bool) {
	exceptions := r.ExceptionsOn(date)
	latest, found := 0, false
	for _, iv := range r.ResolveDay(date) {
		if !iv.Unavailable() || !models.Overlaps(iv.Start, iv.End, start, end) {
			continue
		}
		if iv.Source != models.SourceException && liftedBy(exceptions, max(iv.Start, start), min(iv.End, end)) {
			continue
		}
		if !found || iv.End > latest {
			latest = iv.End
		}
		found = true
	}
	return latest, found
}

func liftedBy(exceptions []ResolvedInterval, start, end int) bool {
	for _, e := range exceptions {
		if !e.Unavailable() && e.Start <= start && e.End >= end {
			return true
		}
	}
	return false
}

func blockInterval(b models.TimeBlock) (ResolvedInterval, bool) {
	start, err := models.ParseClock(b.StartTime)
	if err != nil {
		return ResolvedInterval{}, false
	}
	end, err := models.ParseClock(b.EndTime)
	if err != nil {
		return ResolvedInterval{}, false
	}
	iv := ResolvedInterval{Start: start, End: end, BlockType: b.BlockType, Source: b.Source, RefID: b.ID}
	if iv.Source == "" {
		iv.Source = models.SourceUser
	}
	if b.ClassScheduleID != nil {
		iv.RefID = *b.ClassScheduleID
	}
	return iv, true
}
