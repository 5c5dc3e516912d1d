package store

import (
	"context"
	"fmt"
	"time"

	"github.com/harentsoaR/healthease-api/internal/models"
	"github.com/harentsoaR/healthease-api/internal/session"
)

// Dataset is the initial content of every collection.
type Dataset struct {
	Appointments []models.Appointment
	Doctors      []models.Doctor
	Waitlist     []models.WaitlistEntry
	MedicalNotes []models.MedicalNote
	Patients     []models.Patient
	Schedule     []models.ScheduleSlot
	Emergencies  []models.EmergencyRequest
	Users        []models.User
	Activities   []models.Activity
}

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(fmt.Sprintf("seed date %q: %v", s, err))
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

// MockData returns the demo portal content. Entries that the dashboards
// show as "today" or "N hours ago" are placed relative to now.
func MockData(now time.Time) Dataset {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return Dataset{
		Appointments: []models.Appointment{
			{ID: "1", PatientName: "John Doe", DoctorID: "107", DoctorName: "Dr. Nadia Al-Hassan", Specialty: "Cardiologist", VisitType: "Regular Checkup", Date: day("2025-04-15"), Time: "10:30 AM", Status: models.AppointmentUpcoming},
			{ID: "2", PatientName: "Sarah Johnson", DoctorID: "104", DoctorName: "Dr. Layla Haddad", Specialty: "Dermatologist", VisitType: "Follow-up", Date: day("2025-04-21"), Time: "2:00 PM", Status: models.AppointmentUpcoming},
			{ID: "3", PatientName: "Michael Brown", DoctorID: "101", DoctorName: "Dr. Hassan Ibrahim", Specialty: "Neurologist", VisitType: "First Consultation", Date: day("2025-04-28"), Time: "9:15 AM", Status: models.AppointmentEmergency},
			{ID: "4", PatientName: "Emily Wilson", DoctorID: "107", DoctorName: "Dr. Nadia Al-Hassan", Specialty: "Cardiologist", VisitType: "Regular Checkup", Date: day("2025-03-15"), Time: "11:30 AM", Status: models.AppointmentCompleted,
				Notes: "Patient has shown improvement in blood pressure levels. Continue with prescribed medication."},
			{ID: "5", PatientName: "Robert Chen", DoctorID: "102", DoctorName: "Dr. Ahmad Khoury", Specialty: "Orthopedic Surgeon", VisitType: "Follow-up", Date: day("2025-03-08"), Time: "3:45 PM", Status: models.AppointmentCompleted},
			{ID: "6", PatientName: "Jessica Martinez", DoctorID: "106", DoctorName: "Dr. Omar Zaydan", Specialty: "Ophthalmologist", VisitType: "Emergency", Date: day("2025-02-25"), Time: "10:00 AM", Status: models.AppointmentCancelled},
			{ID: "7", PatientName: "Fatima Al-Ahmad", DoctorID: "103", DoctorName: "Dr. Mohammad Al-Khalil", Specialty: "Cardiologist", VisitType: "Follow-up", Date: today, Time: "10:00 AM", Status: models.AppointmentUpcoming},
			{ID: "8", PatientName: "Yousef Mansour", DoctorID: "103", DoctorName: "Dr. Mohammad Al-Khalil", Specialty: "Cardiologist", VisitType: "New Patient", Date: today, Time: "11:30 AM", Status: models.AppointmentUpcoming},
			{ID: "9", PatientName: "Jihad Al-Mahmoud", DoctorID: "103", DoctorName: "Dr. Mohammad Al-Khalil", Specialty: "Cardiologist", VisitType: "Consultation", Date: today, Time: "2:00 PM", Status: models.AppointmentEmergency},
		},
		Doctors: []models.Doctor{
			{ID: "101", Name: "Dr. Hassan Ibrahim", Email: "hassan.ibrahim@example.com", Phone: "76 444555", Specialty: "Neurology", Title: "Neurologist", Clinic: "Brain & Spine Institute", Availability: "Wed, Thu, Fri", Patients: 37, Status: models.UserActive, JoinDate: day("2025-02-18"), Rating: 4.8, AvailableSlots: 3, ExperienceYears: 15},
			{ID: "102", Name: "Dr. Ahmad Khoury", Email: "ahmad.khoury@example.com", Phone: "03 555111", Specialty: "Orthopedics", Title: "Orthopedic Surgeon", Clinic: "Joint Care Center", Availability: "Mon, Tue, Wed", Patients: 62, Status: models.UserActive, JoinDate: day("2024-12-05"), Rating: 4.7, AvailableSlots: 2, ExperienceYears: 12},
			{ID: "103", Name: "Dr. Mohammad Al-Khalil", Email: "mohammad.khalil@example.com", Phone: "03 123777", Specialty: "Cardiology", Title: "Cardiologist", Clinic: "Central Medical Center", Availability: "Mon, Wed, Fri", Patients: 45, Status: models.UserActive, JoinDate: day("2024-11-15"), Rating: 4.9, AvailableSlots: 1, ExperienceYears: 20},
			{ID: "104", Name: "Dr. Layla Haddad", Email: "layla.haddad@example.com", Phone: "03 666777", Specialty: "Dermatology", Title: "Dermatologist", Clinic: "Skin Health Clinic", Availability: "Tue, Thu, Sat", Patients: 53, Status: models.UserActive, JoinDate: day("2024-09-22"), Rating: 4.6, AvailableSlots: 5, ExperienceYears: 8},
			{ID: "105", Name: "Dr. Rania Khoury", Email: "rania.khoury@example.com", Phone: "76 888222", Specialty: "Pediatrics", Title: "Pediatrician", Clinic: "Children's Wellness Center", Availability: "Mon-Fri", Patients: 78, Status: models.UserActive, JoinDate: day("2025-01-10"), Rating: 4.8, AvailableSlots: 4, ExperienceYears: 10},
			{ID: "106", Name: "Dr. Omar Zaydan", Email: "omar.zaydan@example.com", Phone: "03 333999", Specialty: "Ophthalmology", Title: "Ophthalmologist", Clinic: "Eye Care Center", Availability: "Tue, Thu", Patients: 29, Status: models.UserActive, JoinDate: day("2024-10-01"), Rating: 4.5, AvailableSlots: 3, ExperienceYears: 14},
			{ID: "107", Name: "Dr. Nadia Al-Hassan", Email: "nadia.alhassan@example.com", Phone: "03 222444", Specialty: "Cardiology", Title: "Cardiologist", Clinic: "Central Medical Center", Availability: "Tue, Thu", Patients: 40, Status: models.UserInactive, JoinDate: day("2024-08-12"), Rating: 4.7, AvailableSlots: 0, ExperienceYears: 18},
		},
		Waitlist: []models.WaitlistEntry{
			{ID: "201", DoctorID: "104", DoctorName: "Dr. Layla Haddad", Specialty: "Dermatologist", RequestDate: day("2025-04-10"), Urgency: models.UrgencyMedium, Position: 3, EstimatedWait: "~5 days"},
		},
		MedicalNotes: []models.MedicalNote{
			{ID: "1", DoctorName: "Dr. Nadia Al-Hassan", Specialty: "Cardiologist", Date: day("2025-03-15"), Title: "Routine Checkup",
				Summary:  "Blood pressure: 120/80. Heart rate: 72 bpm. Overall cardiovascular health is good.",
				FullNote: "Patient presented for routine cardiac evaluation. Blood pressure: 120/80 mmHg. Heart rate: 72 bpm, regular rhythm. Heart sounds: normal S1, S2 without murmurs, gallops, or rubs. Electrocardiogram: normal sinus rhythm. Assessment: Cardiovascular health is stable and well-controlled. Continue current medication regimen. Follow up in 6 months."},
			{ID: "2", DoctorName: "Dr. Layla Haddad", Specialty: "Dermatologist", Date: day("2025-02-08"), Title: "Skin Assessment",
				Summary:  "Mild eczema on forearms. Prescribed topical corticosteroid cream.",
				FullNote: "Patient presented with dry, itchy patches on both forearms for approximately 2 weeks. Examination revealed erythematous, scaly patches consistent with eczema. No secondary infection present. Prescribed hydrocortisone 1% cream twice daily for 7 days and daily fragrance-free emollient. Return in 2 weeks if no improvement."},
			{ID: "3", DoctorName: "Dr. Ahmad Khoury", Specialty: "Orthopedic Surgeon", Date: day("2025-01-22"), Title: "Follow-up: Knee Pain",
				Summary:  "Improvement in left knee mobility. Continue physical therapy exercises.",
				FullNote: "6-week follow-up for left knee pain. Pain now rated 3/10, down from 7/10. Flexion improved to 120 degrees. MRI shows mild degenerative changes without meniscal tears. Continue physical therapy for 4 more weeks and return in 1 month for reassessment."},
		},
		Patients: []models.Patient{
			{ID: "1", Name: "Ali Abdullah", Email: "ali.abdullah@example.com", Phone: "(555) 123-4567", DateOfBirth: day("1985-06-15"), LastVisit: day("2025-03-28"), UpcomingAppointment: dayPtr("2025-04-15"), MedicalConditions: []string{"Hypertension", "Asthma"}, Notes: 2},
			{ID: "2", Name: "Mahmoud Khalil", Email: "mahmoud.khalil@example.com", Phone: "(555) 987-6543", DateOfBirth: day("1992-11-03"), LastVisit: day("2025-04-01"), UpcomingAppointment: dayPtr("2025-04-22"), MedicalConditions: []string{"Diabetes Type 2"}, Notes: 5},
			{ID: "3", Name: "Nour Al-Hadi", Email: "nour.alhadi@example.com", Phone: "(555) 456-7890", DateOfBirth: day("1978-02-27"), LastVisit: day("2025-03-15"), MedicalConditions: []string{"Arthritis", "Hypothyroidism"}, Notes: 8},
			{ID: "4", Name: "Samir Nassar", Email: "samir.nassar@example.com", Phone: "(555) 789-0123", DateOfBirth: day("1965-09-12"), LastVisit: day("2025-04-05"), UpcomingAppointment: dayPtr("2025-04-19"), MedicalConditions: []string{"Coronary Artery Disease", "High Cholesterol"}, Notes: 12},
			{ID: "5", Name: "Leila Karam", Email: "leila.karam@example.com", Phone: "(555) 234-5678", DateOfBirth: day("1998-07-21"), LastVisit: day("2025-02-10"), UpcomingAppointment: dayPtr("2025-05-03"), MedicalConditions: []string{"Migraine"}, Notes: 3},
		},
		Schedule: []models.ScheduleSlot{
			{ID: "1", PatientName: "Sarah Johnson", Date: day("2025-04-12"), Time: "09:00 AM", Status: models.SlotConfirmed, Reason: "Annual checkup"},
			{ID: "2", PatientName: "Michael Chen", Date: day("2025-04-12"), Time: "10:30 AM", Status: models.SlotConfirmed, Reason: "Flu symptoms", IsEmergency: true},
			{ID: "3", PatientName: "Emily Rodriguez", Date: day("2025-04-12"), Time: "01:15 PM", Status: models.SlotConfirmed, Reason: "Follow-up visit"},
			{ID: "4", PatientName: "Robert Smith", Date: day("2025-04-12"), Time: "03:00 PM", Status: models.SlotConfirmed, Reason: "Blood pressure check"},
			{ID: "5", PatientName: "Sophia Martinez", Date: day("2025-04-13"), Time: "11:00 AM", Status: models.SlotConfirmed, Reason: "Skin rash examination"},
			{ID: "6", PatientName: "James Wilson", Date: day("2025-04-13"), Time: "02:30 PM", Status: models.SlotPending, Reason: "Chest pain", IsEmergency: true},
		},
		Emergencies: []models.EmergencyRequest{
			{ID: "101", PatientName: "Karim Najjar", Reason: "Severe chest pain", RequestedAt: now.Add(-time.Hour), Priority: models.UrgencyHigh, Status: models.EmergencyPending},
		},
		Users: []models.User{
			{ID: "1", Name: "Sarah Johnson", Email: "sarah.johnson@example.com", Phone: "(555) 123-4567", Role: session.RolePatient, Status: models.UserActive, JoinDate: day("2024-12-10"), Appointments: 8},
			{ID: "2", Name: "Michael Chen", Email: "michael.chen@example.com", Phone: "(555) 987-6543", Role: session.RolePatient, Status: models.UserActive, JoinDate: day("2025-01-15"), Appointments: 3},
			{ID: "3", Name: "Emily Rodriguez", Email: "emily.rodriguez@example.com", Phone: "(555) 456-7890", Role: session.RolePatient, Status: models.UserInactive, JoinDate: day("2024-10-03"), Appointments: 12},
			{ID: "4", Name: "Robert Smith", Email: "robert.smith@example.com", Phone: "(555) 789-0123", Role: session.RolePatient, Status: models.UserActive, JoinDate: day("2025-03-22"), Appointments: 1},
			{ID: "5", Name: "Sophia Martinez", Email: "sophia.martinez@example.com", Phone: "(555) 234-5678", Role: session.RolePatient, Status: models.UserActive, JoinDate: day("2025-02-18"), Appointments: 5},
			{ID: "6", Name: "James Wilson", Email: "james.wilson@example.com", Phone: "(555) 321-0987", Role: session.RolePatient, Status: models.UserPending, JoinDate: day("2025-04-08"), Appointments: 0},
		},
		Activities: []models.Activity{
			{ID: "1", Type: models.ActivityNewDoctor, Name: "Dr. Rachel Adams", Specialty: "Neurologist", At: now.Add(-time.Hour)},
			{ID: "2", Type: models.ActivityEmergencyApproved, PatientName: "James Miller", DoctorName: "Dr. Wilson", At: now.Add(-3 * time.Hour)},
			{ID: "3", Type: models.ActivityWaitlistUpdate, Count: 3, Specialty: "Dermatology", At: now.Add(-5 * time.Hour)},
		},
	}
}

// SeedCounts reports how many records Seed wrote per collection.
type SeedCounts map[string]int

// Seed fills every empty collection in repos from data. Collections that
// already hold records are left alone.
func Seed(ctx context.Context, repos *Repositories, data Dataset) (SeedCounts, error) {
	counts := SeedCounts{}
	steps := []struct {
		name string
		fill func() (int, error)
	}{
		{"appointments", func() (int, error) { return seedInto(ctx, repos.Appointments, data.Appointments) }},
		{"doctors", func() (int, error) { return seedInto(ctx, repos.Doctors, data.Doctors) }},
		{"waitlist", func() (int, error) { return seedInto(ctx, repos.Waitlist, data.Waitlist) }},
		{"medical_notes", func() (int, error) { return seedInto(ctx, repos.MedicalNotes, data.MedicalNotes) }},
		{"patients", func() (int, error) { return seedInto(ctx, repos.Patients, data.Patients) }},
		{"schedule", func() (int, error) { return seedInto(ctx, repos.Schedule, data.Schedule) }},
		{"emergencies", func() (int, error) { return seedInto(ctx, repos.Emergencies, data.Emergencies) }},
		{"users", func() (int, error) { return seedInto(ctx, repos.Users, data.Users) }},
		{"activities", func() (int, error) { return seedInto(ctx, repos.Activities, data.Activities) }},
	}
	for _, step := range steps {
		n, err := step.fill()
		if err != nil {
			return counts, fmt.Errorf("seed %s: %w", step.name, err)
		}
		counts[step.name] = n
	}
	return counts, nil
}

func seedInto[T Record](ctx context.Context, c Collection[T], records []T) (int, error) {
	n, err := c.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for _, rec := range records {
		if err := c.Insert(ctx, rec); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}
