// Package store holds the portal's record collections.
package store

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"

	"github.com/harentsoaR/healthease-api/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Record is anything with a stable identifier.
type Record interface {
	RecordID() string
}

// Collection is a small keyed set of records. List preserves insertion order.
type Collection[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Insert(ctx context.Context, rec T) error
	Update(ctx context.Context, rec T) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Repositories groups every collection the handlers use.
type Repositories struct {
	Appointments Collection[models.Appointment]
	Doctors      Collection[models.Doctor]
	Waitlist     Collection[models.WaitlistEntry]
	MedicalNotes Collection[models.MedicalNote]
	Patients     Collection[models.Patient]
	Schedule     Collection[models.ScheduleSlot]
	Emergencies  Collection[models.EmergencyRequest]
	Users        Collection[models.User]
	Activities   Collection[models.Activity]
	Profiles     Collection[models.Profile]
}

// NewID returns a sortable unique record ID.
func NewID() string {
	return ulid.Make().String()
}

// Find returns the first record matching pred.
func Find[T Record](ctx context.Context, c Collection[T], pred func(T) bool) (T, error) {
	var zero T
	all, err := c.List(ctx)
	if err != nil {
		return zero, err
	}
	for _, rec := range all {
		if pred(rec) {
			return rec, nil
		}
	}
	return zero, ErrNotFound
}
