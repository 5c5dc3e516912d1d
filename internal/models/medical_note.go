package models

import "time"

type MedicalNote struct {
	ID         string    `bson:"_id" json:"id"`
	DoctorName string    `bson:"doctorName" json:"doctorName"`
	Specialty  string    `bson:"specialty" json:"specialty"`
	Date       time.Time `bson:"date" json:"date"`
	Title      string    `bson:"title" json:"title"`
	Summary    string    `bson:"summary" json:"summary"`
	FullNote   string    `bson:"fullNote" json:"fullNote,omitempty"`
}

func (n MedicalNote) RecordID() string { return n.ID }
