package search

import (
	"sort"
	"strings"
	"time"

	"github.com/harentsoaR/healthease-api/internal/models"
)

// AppointmentTab splits appointments into what is ahead and what is done.
type AppointmentTab string

const (
	TabUpcoming AppointmentTab = "upcoming"
	TabPast     AppointmentTab = "past"
)

// AppointmentKind is the doctor's visit-type filter.
type AppointmentKind string

const (
	KindAll       AppointmentKind = "all"
	KindRegular   AppointmentKind = "regular"
	KindEmergency AppointmentKind = "emergency"
	KindFollowUp  AppointmentKind = "followup"
)

func (k AppointmentKind) matches(a models.Appointment) bool {
	switch k {
	case KindRegular:
		return contains(a.VisitType, "checkup")
	case KindEmergency:
		return a.Status == models.AppointmentEmergency || strings.EqualFold(a.VisitType, "Emergency")
	case KindFollowUp:
		return strings.EqualFold(a.VisitType, "Follow-up")
	default:
		return true
	}
}

// FilterAppointments returns upcoming appointments soonest first and past
// ones most recent first. An empty tab keeps both, upcoming first.
func FilterAppointments(list []models.Appointment, tab AppointmentTab, kind AppointmentKind) []models.Appointment {
	var upcoming, past []models.Appointment
	for _, a := range list {
		if !kind.matches(a) {
			continue
		}
		if a.IsUpcoming() {
			upcoming = append(upcoming, a)
		} else {
			past = append(past, a)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return appointmentBefore(upcoming[i], upcoming[j]) })
	sort.SliceStable(past, func(i, j int) bool { return appointmentBefore(past[j], past[i]) })

	out := make([]models.Appointment, 0, len(upcoming)+len(past))
	switch tab {
	case TabUpcoming:
		out = append(out, upcoming...)
	case TabPast:
		out = append(out, past...)
	default:
		out = append(append(out, upcoming...), past...)
	}
	return out
}

func appointmentBefore(a, b models.Appointment) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	am, _ := ClockMinutes(a.Time)
	bm, _ := ClockMinutes(b.Time)
	return am < bm
}

// OnDay keeps appointments on the calendar day of t.
func OnDay(list []models.Appointment, t time.Time) []models.Appointment {
	out := make([]models.Appointment, 0)
	for _, a := range list {
		if SameDay(a.Date, t) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return appointmentBefore(out[i], out[j]) })
	return out
}

// SameDay compares calendar dates, ignoring clock and zone offsets.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ClockMinutes parses "9:15 AM" or "09:15 AM" into minutes after midnight.
func ClockMinutes(s string) (int, bool) {
	t, err := time.Parse("3:04 PM", strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// ScheduleDates lists the distinct slot dates in ascending order.
func ScheduleDates(list []models.ScheduleSlot) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range list {
		d := s.Date.Format(models.DateLayout)
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// ScheduleFor keeps the slots of one date (YYYY-MM-DD) ordered by time.
func ScheduleFor(list []models.ScheduleSlot, date string) []models.ScheduleSlot {
	out := make([]models.ScheduleSlot, 0)
	for _, s := range list {
		if s.Date.Format(models.DateLayout) == date {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := ClockMinutes(out[i].Time)
		b, _ := ClockMinutes(out[j].Time)
		return a < b
	})
	return out
}
