package models

import "time"

type ActivityType string

const (
	ActivityNewDoctor         ActivityType = "new_doctor"
	ActivityEmergencyApproved ActivityType = "emergency_approved"
	ActivityWaitlistUpdate    ActivityType = "waitlist_update"
)

// Activity is one line of the admin dashboard feed.
type Activity struct {
	ID          string       `bson:"_id" json:"id"`
	Type        ActivityType `bson:"type" json:"type"`
	Name        string       `bson:"name,omitempty" json:"name,omitempty"`
	PatientName string       `bson:"patientName,omitempty" json:"patientName,omitempty"`
	DoctorName  string       `bson:"doctorName,omitempty" json:"doctorName,omitempty"`
	Specialty   string       `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Count       int          `bson:"count,omitempty" json:"count,omitempty"`
	At          time.Time    `bson:"at" json:"at"`
}

func (a Activity) RecordID() string { return a.ID }
