package task

import (
	"time"

	"github.com/okatz/mytasks/pkg/task/date"
)

type GroupID string

const (
	GroupToday       GroupID = "today"
	GroupTomorrow    GroupID = "tomorrow"
	GroupNext7Days   GroupID = "next-7-days"
	GroupUpcoming    GroupID = "upcoming"
	GroupUnscheduled GroupID = "unscheduled"
)

// Group is a named partition of tasks by due-date proximity.
// Groups exist purely for display: every classification produces all five,
// in a fixed order, empty ones included.
type Group struct {
	ID           GroupID
	Name         string
	NoTasksLabel string
	Tasks        []Task
}

// Groups partitions tasks into the five display groups relative to now.
// Within a group, tasks keep the order of the source collection.
func Groups(tasks []Task, now time.Time) []Group {
	groups := []Group{
		{ID: GroupToday, Name: "Today", NoTasksLabel: "No tasks for today"},
		{ID: GroupTomorrow, Name: "Tomorrow", NoTasksLabel: "No tasks for tomorrow"},
		{ID: GroupNext7Days, Name: "Next 7 days", NoTasksLabel: "No tasks for the next 7 days"},
		{ID: GroupUpcoming, Name: "Upcoming", NoTasksLabel: "No upcoming tasks"},
		{ID: GroupUnscheduled, Name: "Unscheduled", NoTasksLabel: "No unscheduled tasks"},
	}
	index := make(map[GroupID]int, len(groups))
	for i, g := range groups {
		index[g.ID] = i
	}
	for _, t := range tasks {
		i := index[Classify(t, now)]
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	return groups
}

// Classify returns the single group a task belongs to relative to now.
// Comparison is by calendar day only; time of day never participates.
// The +7 boundary belongs to Next 7 days, and Upcoming is the catch-all
// for everything else with a due date, overdue tasks included.
func Classify(t Task, now time.Time) GroupID {
	if t.DueDate == nil {
		return GroupUnscheduled
	}
	switch d := date.DaysFrom(now, *t.DueDate); {
	case d == 0:
		return GroupToday
	case d == 1:
		return GroupTomorrow
	case d >= 2 && d <= 7:
		return GroupNext7Days
	default:
		return GroupUpcoming
	}
}

// Visible returns the group's tasks filtered for display.
// Filtering never reclassifies; a completed task stays in its bucket.
func (g Group) Visible(showCompleted bool) []Task {
	if showCompleted {
		return g.Tasks
	}
	out := make([]Task, 0, len(g.Tasks))
	for _, t := range g.Tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}
