package models

import (
	"time"

	"github.com/harentsoaR/healthease-api/internal/session"
)

// DateLayout is the wire format for calendar dates in requests and filters.
const DateLayout = "2006-01-02"

type AppointmentStatus string

const (
	AppointmentUpcoming  AppointmentStatus = "upcoming"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentEmergency AppointmentStatus = "emergency"
)

type Appointment struct {
	ID          string            `bson:"_id" json:"id"`
	PatientName string            `bson:"patientName" json:"patientName"`
	DoctorID    string            `bson:"doctorId,omitempty" json:"doctorId,omitempty"`
	DoctorName  string            `bson:"doctorName" json:"doctorName"`
	Specialty   string            `bson:"specialty" json:"specialty"`
	VisitType   string            `bson:"visitType" json:"visitType"`
	Date        time.Time         `bson:"date" json:"date"`
	Time        string            `bson:"time" json:"time"`
	Status      AppointmentStatus `bson:"status" json:"status"`
	Notes       string            `bson:"notes,omitempty" json:"notes,omitempty"`
}

func (a Appointment) RecordID() string { return a.ID }

// IsUpcoming covers regular and emergency bookings that have not happened.
func (a Appointment) IsUpcoming() bool {
	return a.Status == AppointmentUpcoming || a.Status == AppointmentEmergency
}

// AppointmentView is an appointment as one side of it sees it.
type AppointmentView struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Counterpart string            `json:"counterpart"`
	Detail      string            `json:"detail"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Status      AppointmentStatus `json:"status"`
	Notes       string            `json:"notes,omitempty"`
}

// ViewFor projects the appointment for the given role. Doctors see the
// patient and visit type; everyone else sees the doctor and specialty.
func (a Appointment) ViewFor(role session.Role) AppointmentView {
	v := AppointmentView{
		ID:     a.ID,
		Date:   a.Date.Format("January 2, 2006"),
		Time:   a.Time,
		Status: a.Status,
		Notes:  a.Notes,
	}
	switch role {
	case session.RoleDoctor:
		v.Title = "Patient Appointment"
		v.Counterpart = a.PatientName
		v.Detail = a.VisitType
	case session.RolePatient, session.RoleAdmin:
		v.Title = "Doctor Appointment"
		v.Counterpart = a.DoctorName
		v.Detail = a.Specialty
	}
	return v
}

func AppointmentViews(list []Appointment, role session.Role) []AppointmentView {
	out := make([]AppointmentView, 0, len(list))
	for _, a := range list {
		out = append(out, a.ViewFor(role))
	}
	return out
}
