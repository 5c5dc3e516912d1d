package models

import "time"

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

type WaitlistEntry struct {
	ID            string    `bson:"_id" json:"id"`
	DoctorID      string    `bson:"doctorId" json:"doctorId"`
	DoctorName    string    `bson:"doctorName" json:"doctorName"`
	Specialty     string    `bson:"specialty" json:"specialty"`
	RequestDate   time.Time `bson:"requestDate" json:"requestDate"`
	Urgency       Urgency   `bson:"urgency" json:"urgency"`
	Position      int       `bson:"position" json:"position"`
	EstimatedWait string    `bson:"estimatedWait,omitempty" json:"estimatedWaitTime,omitempty"`
}

func (w WaitlistEntry) RecordID() string { return w.ID }
