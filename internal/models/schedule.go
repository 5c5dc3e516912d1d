package models

import "time"

type SlotStatus string

const (
	SlotConfirmed SlotStatus = "confirmed"
	SlotPending   SlotStatus = "pending"
	SlotCancelled SlotStatus = "cancelled"
	SlotBlocked   SlotStatus = "blocked"
)

// ScheduleSlot is one entry on a doctor's day.
type ScheduleSlot struct {
	ID          string     `bson:"_id" json:"id"`
	PatientName string     `bson:"patientName,omitempty" json:"patientName,omitempty"`
	Date        time.Time  `bson:"date" json:"date"`
	Time        string     `bson:"time" json:"time"`
	Status      SlotStatus `bson:"status" json:"status"`
	Reason      string     `bson:"reason" json:"reason"`
	IsEmergency bool       `bson:"isEmergency" json:"isEmergency"`
}

func (s ScheduleSlot) RecordID() string { return s.ID }

type EmergencyStatus string

const (
	EmergencyPending  EmergencyStatus = "pending"
	EmergencyApproved EmergencyStatus = "approved"
	EmergencyRejected EmergencyStatus = "rejected"
)

type EmergencyRequest struct {
	ID          string          `bson:"_id" json:"id"`
	PatientName string          `bson:"patientName" json:"patientName"`
	Reason      string          `bson:"reason" json:"reason"`
	RequestedAt time.Time       `bson:"requestedAt" json:"requestedAt"`
	Priority    Urgency         `bson:"priority" json:"priority"`
	Status      EmergencyStatus `bson:"status" json:"status"`
}

func (e EmergencyRequest) RecordID() string { return e.ID }
