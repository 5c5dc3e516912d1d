package models

import "time"

type Doctor struct {
	ID              string     `bson:"_id" json:"id"`
	Name            string     `bson:"name" json:"name"`
	Email           string     `bson:"email" json:"email"`
	Phone           string     `bson:"phone" json:"phone"`
	Specialty       string     `bson:"specialty" json:"specialty"` // field, e.g. "Cardiology"
	Title           string     `bson:"title" json:"title"`         // e.g. "Cardiologist"
	Clinic          string     `bson:"clinic" json:"clinic"`
	Availability    string     `bson:"availability" json:"availability"`
	Patients        int        `bson:"patients" json:"patients"`
	Status          UserStatus `bson:"status" json:"status"`
	JoinDate        time.Time  `bson:"joinDate" json:"joinDate"`
	Rating          float64    `bson:"rating" json:"rating"`
	AvailableSlots  int        `bson:"availableSlots" json:"availableSlots"`
	ExperienceYears int        `bson:"experienceYears" json:"experienceYears"`
}

func (d Doctor) RecordID() string { return d.ID }
