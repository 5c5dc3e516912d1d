// Package search holds the list filters and orderings behind the dashboards.
// Every function is a single pass over a small slice and never mutates it.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/harentsoaR/healthease-api/internal/models"
)

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// isAny reports whether a select value means "no filter".
func isAny(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all", "all specialties", "any":
		return true
	}
	return false
}

// DoctorSort orders doctor search results.
type DoctorSort string

const (
	SortByRating       DoctorSort = "rating"
	SortByAvailability DoctorSort = "availability"
	SortByExperience   DoctorSort = "experience"
)

// FindDoctors is the patient-facing search: active doctors whose name
// contains text, optionally limited to one specialty, best first.
func FindDoctors(list []models.Doctor, text, specialty string, by DoctorSort) []models.Doctor {
	out := make([]models.Doctor, 0, len(list))
	for _, d := range list {
		if d.Status != models.UserActive {
			continue
		}
		if !contains(d.Name, text) {
			continue
		}
		if !isAny(specialty) && !strings.EqualFold(d.Specialty, specialty) {
			continue
		}
		out = append(out, d)
	}

	var less func(a, b models.Doctor) bool
	switch by {
	case SortByAvailability:
		less = func(a, b models.Doctor) bool { return a.AvailableSlots > b.AvailableSlots }
	case SortByExperience:
		less = func(a, b models.Doctor) bool { return a.ExperienceYears > b.ExperienceYears }
	default:
		less = func(a, b models.Doctor) bool { return a.Rating > b.Rating }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// FilterDoctors is the admin directory filter. text matches name, email,
// specialty, or clinic; specialty must match exactly unless it is "all".
func FilterDoctors(list []models.Doctor, text, specialty string) []models.Doctor {
	out := make([]models.Doctor, 0, len(list))
	for _, d := range list {
		matches := contains(d.Name, text) ||
			contains(d.Email, text) ||
			contains(d.Specialty, text) ||
			contains(d.Clinic, text)
		if !matches {
			continue
		}
		if !isAny(specialty) && d.Specialty != specialty {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Specialties lists the distinct doctor specialties in first-seen order.
func Specialties(list []models.Doctor) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range list {
		if d.Specialty == "" || seen[d.Specialty] {
			continue
		}
		seen[d.Specialty] = true
		out = append(out, d.Specialty)
	}
	return out
}

// FilterUsers matches name and email case-insensitively and the phone
// number as typed.
func FilterUsers(list []models.User, text, status string) []models.User {
	out := make([]models.User, 0, len(list))
	for _, u := range list {
		matches := contains(u.Name, text) ||
			contains(u.Email, text) ||
			strings.Contains(u.Phone, text)
		if !matches {
			continue
		}
		if !isAny(status) && string(u.Status) != status {
			continue
		}
		out = append(out, u)
	}
	return out
}

// PatientTab narrows the doctor's patient list.
type PatientTab string

const (
	PatientsAll      PatientTab = "all"
	PatientsUpcoming PatientTab = "upcoming"
	PatientsRecent   PatientTab = "recent"
)

// RecentVisitWindow is how far back a visit counts as recent.
const RecentVisitWindow = 30 * 24 * time.Hour

// FilterPatients matches name, email, or any medical condition.
func FilterPatients(list []models.Patient, text string, tab PatientTab, now time.Time) []models.Patient {
	cutoff := now.Add(-RecentVisitWindow)
	out := make([]models.Patient, 0, len(list))
	for _, p := range list {
		matches := contains(p.Name, text) || contains(p.Email, text)
		for _, c := range p.MedicalConditions {
			if matches {
				break
			}
			matches = contains(c, text)
		}
		if !matches {
			continue
		}
		switch tab {
		case PatientsUpcoming:
			if p.UpcomingAppointment == nil {
				continue
			}
		case PatientsRecent:
			if p.LastVisit.Before(cutoff) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// NoteOrder sorts medical notes by date.
type NoteOrder string

const (
	NewestFirst NoteOrder = "newest"
	OldestFirst NoteOrder = "oldest"
)

// FilterNotes keeps notes whose specialty contains specialty ("all" keeps
// everything) and orders them by date.
func FilterNotes(list []models.MedicalNote, specialty string, order NoteOrder) []models.MedicalNote {
	out := make([]models.MedicalNote, 0, len(list))
	for _, n := range list {
		if isAny(specialty) || contains(n.Specialty, specialty) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == OldestFirst {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}
