package group

import "sort"

// Group is a study group. Names are unique.
type Group struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// ScheduleEntry is one class of a group's weekly timetable.
type ScheduleEntry struct {
	GroupID   int64  `db:"group_id"`
	Day       int    `db:"day_of_week"` // 1 = Monday ... 7 = Sunday
	Time      string `db:"start_time"`  // "HH:MM", zero padded
	Subject   string `db:"subject"`
	Classroom string `db:"classroom"`
	Teacher   string `db:"teacher"`
}

// SortSchedule orders entries by day, then start time, then subject.
func SortSchedule(entries []*ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.Subject < b.Subject
	})
}
