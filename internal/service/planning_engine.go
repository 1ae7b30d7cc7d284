package service

import "github.com/berryseed/327project-group10/pkg/clock"

// PlanningEngine bundles the four components over one snapshot.
type PlanningEngine struct {
	Resolver  *ConstraintResolver
	Validator *ConflictValidator
	Generator *SlotGenerator
	Assigner  *ScheduleAssigner
}

// NewPlanningEngine wires the components over snapshot.
func NewPlanningEngine(snapshot ConstraintSnapshot, clk clock.Clock) *PlanningEngine {
	resolver := NewConstraintResolver(snapshot)
	generator := NewSlotGenerator(resolver, clk)
	return &PlanningEngine{
		Resolver:  resolver,
		Validator: NewConflictValidator(resolver),
		Generator: generator,
		Assigner:  NewScheduleAssigner(generator),
	}
}
