// Package analytics serves the admin charts. The series are fixed
// reporting figures; Window slices them by reporting period.
package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

type Period string

const (
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// ParsePeriod falls back to the full year for unknown values.
func ParsePeriod(s string) Period {
	switch p := Period(s); p {
	case PeriodMonth, PeriodQuarter:
		return p
	default:
		return PeriodYear
	}
}

// points returns how many trailing monthly points the period covers.
func (p Period) points() int {
	switch p {
	case PeriodMonth:
		return 1
	case PeriodQuarter:
		return 3
	default:
		return 0
	}
}

type MonthlyAppointments struct {
	Month        string `json:"month"`
	Appointments int    `json:"appointments"`
	Completed    int    `json:"completed"`
	Cancelled    int    `json:"cancelled"`
}

type Share struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type DailyCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type MonthlyUsers struct {
	Month string `json:"month"`
	Users int    `json:"users"`
}

var appointmentSeries = []MonthlyAppointments{
	{"Jan", 30, 25, 5},
	{"Feb", 35, 28, 7},
	{"Mar", 45, 40, 5},
	{"Apr", 50, 42, 8},
	{"May", 65, 55, 10},
	{"Jun", 60, 55, 5},
	{"Jul", 70, 60, 10},
	{"Aug", 75, 65, 10},
	{"Sep", 80, 72, 8},
	{"Oct", 90, 78, 12},
	{"Nov", 85, 75, 10},
	{"Dec", 95, 82, 13},
}

var specialtySeries = []Share{
	{"Cardiology", 25},
	{"Pediatrics", 18},
	{"Dermatology", 15},
	{"Neurology", 10},
	{"Orthopedics", 12},
	{"Others", 20},
}

var waitlistSeries = []DailyCount{
	{"Mon", 15},
	{"Tue", 20},
	{"Wed", 18},
	{"Thu", 25},
	{"Fri", 22},
	{"Sat", 30},
	{"Sun", 10},
}

var userSeries = []MonthlyUsers{
	{"Jan", 120},
	{"Feb", 145},
	{"Mar", 160},
	{"Apr", 185},
	{"May", 210},
	{"Jun", 235},
	{"Jul", 245},
	{"Aug", 260},
	{"Sep", 275},
	{"Oct", 290},
	{"Nov", 310},
	{"Dec", 320},
}

// Summary is the row of headline cards above the charts. It always covers
// the full year.
type Summary struct {
	TotalAppointments int `json:"totalAppointments"`
	ChangeFromLast    int `json:"changeFromLastMonth"`
	CompletionRate    int `json:"completionRate"`
}

type Report struct {
	Period         Period                `json:"period"`
	Summary        Summary               `json:"summary"`
	Appointments   []MonthlyAppointments `json:"appointments"`
	Specialties    []Share               `json:"specialties"`
	WeeklyWaitlist []DailyCount          `json:"weeklyWaitlist"`
	ActiveUsers    []MonthlyUsers        `json:"activeUsers"`
}

func window[T any](series []T, p Period) []T {
	n := p.points()
	if n == 0 || n >= len(series) {
		return append([]T(nil), series...)
	}
	return append([]T(nil), series[len(series)-n:]...)
}

func summarize() Summary {
	var total, completed int
	for _, m := range appointmentSeries {
		total += m.Appointments
		completed += m.Completed
	}
	last := len(appointmentSeries) - 1
	s := Summary{
		TotalAppointments: total,
		ChangeFromLast:    appointmentSeries[last].Appointments - appointmentSeries[last-1].Appointments,
	}
	if total > 0 {
		s.CompletionRate = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return s
}

// Window builds the report for p. Monthly series are cut to the trailing
// points of the period; specialty and waitlist series are never sliced.
func Window(p Period) Report {
	return Report{
		Period:         p,
		Summary:        summarize(),
		Appointments:   window(appointmentSeries, p),
		Specialties:    append([]Share(nil), specialtySeries...),
		WeeklyWaitlist: append([]DailyCount(nil), waitlistSeries...),
		ActiveUsers:    window(userSeries, p),
	}
}

var csvHeader = []string{"month", "appointments", "completed", "cancelled", "active_users"}

// WriteCSV writes the monthly rows of r, one line per month.
func WriteCSV(w io.Writer, r Report) error {
	users := make(map[string]int, len(r.ActiveUsers))
	for _, u := range r.ActiveUsers {
		users[u.Month] = u.Users
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, m := range r.Appointments {
		row := []string{
			m.Month,
			strconv.Itoa(m.Appointments),
			strconv.Itoa(m.Completed),
			strconv.Itoa(m.Cancelled),
			strconv.Itoa(users[m.Month]),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", m.Month, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
