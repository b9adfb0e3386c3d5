package domain

// Priority enumerates SLA urgency levels. Codes and SLA budgets are a stable
// external contract.
type Priority int

const (
	PriorityBaja    Priority = 1
	PriorityMedia   Priority = 2
	PriorityAlta    Priority = 3
	PriorityCritica Priority = 4
)

var priorityNames = map[Priority]string{
	PriorityBaja:    "Baja",
	PriorityMedia:   "Media",
	PriorityAlta:    "Alta",
	PriorityCritica: "Crítica",
}

// SLA budgets in hours per priority level.
var prioritySLAHours = map[Priority]float64{
	PriorityBaja:    72,
	PriorityMedia:   24,
	PriorityAlta:    8,
	PriorityCritica: 4,
}

// Name returns the human-facing label.
func (p Priority) Name() string {
	return priorityNames[p]
}

// IsValid reports whether the code belongs to the closed priority set.
func (p Priority) IsValid() bool {
	_, ok := priorityNames[p]
	return ok
}

// SLAHours returns the maximum allowed resolution time for the priority.
func (p Priority) SLAHours() float64 {
	return prioritySLAHours[p]
}
