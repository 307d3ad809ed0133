package app

import (
	"fmt"
	"strconv"
	"strings"

	"college_assistant_bot/internal/domain/group"
	"college_assistant_bot/internal/domain/news"
	"college_assistant_bot/internal/domain/student"
	"college_assistant_bot/internal/domain/teacher"
)

var dayNames = [...]string{1: "Пн", 2: "Вт", 3: "Ср", 4: "Чт", 5: "Пт", 6: "Сб", 7: "Нд"}

func dayLabel(day int) string {
	if day >= 1 && day < len(dayNames) {
		return dayNames[day]
	}
	return strconv.Itoa(day)
}

// oneLine keeps a listing at one line per record.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// formatSchedule expects entries already sorted by day and time.
func formatSchedule(g *group.Group, entries []*group.ScheduleEntry) string {
	if len(entries) == 0 {
		return fmt.Sprintf(msgNoSchedule, g.Name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Розклад групи %s:", g.Name)
	for _, e := range entries {
		fmt.Fprintf(&b, "\n%s %s | %s | ауд. %s | %s",
			dayLabel(e.Day), e.Time, oneLine(e.Subject), oneLine(e.Classroom), oneLine(e.Teacher))
	}
	return b.String()
}

func formatTeachers(teachers []*teacher.Teacher) string {
	if len(teachers) == 0 {
		return msgNoTeachers
	}
	var b strings.Builder
	b.WriteString("Викладачі:")
	for _, t := range teachers {
		fmt.Fprintf(&b, "\n%s (%s): %s", oneLine(t.FullName()), oneLine(t.Subject), oneLine(t.Contact))
	}
	return b.String()
}

func formatPeers(g *group.Group, peers []*student.Student) string {
	if len(peers) == 0 {
		return fmt.Sprintf(msgNoPeers, g.Name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Група %s:", g.Name)
	for i, s := range peers {
		fmt.Fprintf(&b, "\n%d. %s", i+1, oneLine(s.FullName))
	}
	return b.String()
}

// formatNews expects items newest first.
func formatNews(items []*news.Item) string {
	if len(items) == 0 {
		return msgNoNews
	}
	var b strings.Builder
	b.WriteString("Останні новини:")
	for _, n := range items {
		fmt.Fprintf(&b, "\n%s %s: %s", n.CreatedAt.Format("2006-01-02"), oneLine(n.Title), oneLine(n.Body))
	}
	return b.String()
}
