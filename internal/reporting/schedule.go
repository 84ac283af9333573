package reporting

import (
	"fmt"
	"sort"
	"time"
)

// ScheduleSlot is a weekly recurring meeting window joined with the class
// fields needed for display. DayOfWeek follows time.Weekday numbering
// (0 = Sunday); minutes are minute-of-day in UTC.
type ScheduleSlot struct {
	SlotID       int
	ClassID      int
	ClassName    string
	TeacherName  string
	DayOfWeek    int
	StartMinutes int
	EndMinutes   int
}

// SessionInstance is one concrete dated occurrence of a recurring slot.
// Instances are derived on demand and never persisted; the ID is the
// deterministic slot/date pair so overlapping expansions de-duplicate.
type SessionInstance struct {
	ID          string    `json:"id"`
	ClassID     int       `json:"class_id"`
	ClassName   string    `json:"class_name"`
	TeacherName string    `json:"teacher_name,omitempty"`
	DayOfWeek   int       `json:"day_of_week"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// ExpandSchedule materializes every occurrence of the given slots whose
// date falls within [reference, reference+horizonDays) in UTC, sorted
// ascending by start instant with slot ID as tiebreak. A horizon of zero
// or less yields an empty slice. Slots with EndMinutes <= StartMinutes
// are expanded as-is (the instance ends before it starts) rather than
// rejected; upstream validation is responsible for preventing them.
// Calendar exceptions (holidays, one-off cancellations) are not consulted.
func ExpandSchedule(slots []ScheduleSlot, reference time.Time, horizonDays int) []SessionInstance {
	sessions := []SessionInstance{}
	if horizonDays <= 0 {
		return sessions
	}

	ref := reference.UTC()
	base := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	for _, slot := range slots {
		for d := 0; d < horizonDays; d++ {
			day := base.AddDate(0, 0, d)
			if int(day.Weekday()) != slot.DayOfWeek {
				continue
			}
			sessions = append(sessions, SessionInstance{
				ID:          fmt.Sprintf("%d-%s", slot.SlotID, day.Format("2006-01-02")),
				ClassID:     slot.ClassID,
				ClassName:   slot.ClassName,
				TeacherName: slot.TeacherName,
				DayOfWeek:   slot.DayOfWeek,
				StartsAt:    day.Add(time.Duration(slot.StartMinutes) * time.Minute),
				EndsAt:      day.Add(time.Duration(slot.EndMinutes) * time.Minute),
			})
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].StartsAt.Equal(sessions[j].StartsAt) {
			return sessions[i].StartsAt.Before(sessions[j].StartsAt)
		}
		return sessions[i].ID < sessions[j].ID
	})

	return sessions
}
