package models

// NotificationSettings are the reminder toggles on the settings page.
type NotificationSettings struct {
	EmailReminders    bool `bson:"emailReminders" json:"emailReminders"`
	SMSReminders      bool `bson:"smsReminders" json:"smsReminders"`
	EmergencyAlerts   bool `bson:"emergencyAlerts" json:"emergencyAlerts"`
	NewsletterUpdates bool `bson:"newsletterUpdates" json:"newsletterUpdates"`
}

// Profile is keyed by the session email.
type Profile struct {
	Email         string               `bson:"_id" json:"email"`
	Name          string               `bson:"name" json:"name"`
	Phone         string               `bson:"phone" json:"phone"`
	Address       string               `bson:"address" json:"address"`
	Notifications NotificationSettings `bson:"notifications" json:"notifications"`
}

func (p Profile) RecordID() string { return p.Email }

// DefaultProfile is what a session sees before saving any settings.
func DefaultProfile(email string) Profile {
	return Profile{
		Email:   email,
		Name:    "John Doe",
		Phone:   "555-123-4567",
		Address: "123 Health Street, Medical City, MC 12345",
		Notifications: NotificationSettings{
			EmailReminders:  true,
			SMSReminders:    true,
			EmergencyAlerts: true,
		},
	}
}
