package task

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestClassify(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  *time.Time
		want GroupID
	}{
		{"same day", day(2024, time.June, 10), GroupToday},
		{"next day", day(2024, time.June, 11), GroupTomorrow},
		{"within the week", day(2024, time.June, 15), GroupNext7Days},
		{"window start", day(2024, time.June, 12), GroupNext7Days},
		{"window end", day(2024, time.June, 17), GroupNext7Days},
		{"just past the window", day(2024, time.June, 18), GroupUpcoming},
		{"far out", day(2024, time.June, 25), GroupUpcoming},
		{"overdue", day(2024, time.June, 9), GroupUpcoming},
		{"no due date", nil, GroupUnscheduled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(Classify(Task{DueDate: tt.due}, now), tt.want)
		})
	}

	t.Run("time of day never matters", func(t *testing.T) {
		is := is.New(t)
		lateNow := time.Date(2024, time.June, 10, 23, 59, 59, 0, time.UTC)
		earlyDue := time.Date(2024, time.June, 11, 0, 0, 1, 0, time.UTC)
		is.Equal(Classify(Task{DueDate: &earlyDue}, lateNow), GroupTomorrow)
	})
}

// every task with a due date must land in exactly one scheduled group,
// whatever the offset from today
func TestClassify_Total(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

	for offset := -30; offset <= 60; offset++ {
		due := now.AddDate(0, 0, offset)
		got := Classify(Task{DueDate: &due}, now)
		is.True(got != GroupUnscheduled)
		is.True(got == GroupToday || got == GroupTomorrow || got == GroupNext7Days || got == GroupUpcoming)
	}
}

func TestGroups(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC)

	tasks := []Task{
		{ID: 1, Description: "today", DueDate: day(2024, time.June, 10)},
		{ID: 2, Description: "tomorrow", DueDate: day(2024, time.June, 11)},
		{ID: 3, Description: "this week", DueDate: day(2024, time.June, 15)},
		{ID: 4, Description: "later", DueDate: day(2024, time.June, 25)},
		{ID: 5, Description: "someday"},
		{ID: 6, Description: "also today", DueDate: day(2024, time.June, 10)},
	}

	groups := Groups(tasks, now)

	t.Run("fixed order, all groups present", func(t *testing.T) {
		is := is.New(t)
		is.Equal(len(groups), 5)
		is.Equal(groups[0].ID, GroupToday)
		is.Equal(groups[1].ID, GroupTomorrow)
		is.Equal(groups[2].ID, GroupNext7Days)
		is.Equal(groups[3].ID, GroupUpcoming)
		is.Equal(groups[4].ID, GroupUnscheduled)
	})

	t.Run("membership", func(t *testing.T) {
		is := is.New(t)
		is.Equal(ids(groups[0].Tasks), []int64{1, 6})
		is.Equal(ids(groups[1].Tasks), []int64{2})
		is.Equal(ids(groups[2].Tasks), []int64{3})
		is.Equal(ids(groups[3].Tasks), []int64{4})
		is.Equal(ids(groups[4].Tasks), []int64{5})
	})

	t.Run("empty groups keep their label", func(t *testing.T) {
		is := is.New(t)
		empty := Groups(nil, now)
		is.Equal(len(empty), 5)
		for _, g := range empty {
			is.Equal(len(g.Tasks), 0)
			is.True(g.NoTasksLabel != "")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		is := is.New(t)
		is.Equal(groups, Groups(tasks, now))
	})
}

func TestGroup_Visible(t *testing.T) {
	g := Group{Tasks: []Task{
		{ID: 1, Completed: true},
		{ID: 2},
		{ID: 3, Completed: true},
	}}

	t.Run("hides completed", func(t *testing.T) {
		is := is.New(t)
		is.Equal(ids(g.Visible(false)), []int64{2})
	})

	t.Run("shows everything", func(t *testing.T) {
		is := is.New(t)
		is.Equal(ids(g.Visible(true)), []int64{1, 2, 3})
	})
}

func ids(tasks []Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
