package models

import "time"

type Patient struct {
	ID                  string      `bson:"_id" json:"id"`
	Name                string      `bson:"name" json:"name"`
	Email               string      `bson:"email" json:"email"`
	Phone               string      `bson:"phone" json:"phone"`
	DateOfBirth         time.Time   `bson:"dob" json:"dob"`
	LastVisit           time.Time   `bson:"lastVisit" json:"lastVisit"`
	UpcomingAppointment *time.Time  `bson:"upcomingAppointment,omitempty" json:"upcomingAppointment"`
	MedicalConditions   []string    `bson:"medicalConditions" json:"medicalConditions"`
	Notes               int         `bson:"notes" json:"notes"`
	NoteLog             []NoteEntry `bson:"noteLog,omitempty" json:"noteLog,omitempty"`
}

func (p Patient) RecordID() string { return p.ID }

// NoteEntry is a note a doctor added through the patient directory.
type NoteEntry struct {
	Author string    `bson:"author" json:"author"`
	Text   string    `bson:"text" json:"text"`
	At     time.Time `bson:"at" json:"at"`
}
