package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при неизвестном статусе бронирования
	ErrInvalidStatus = errors.New("domain: invalid booking status")

	// ErrInvalidAttendance возвращается при неизвестной отметке посещаемости
	ErrInvalidAttendance = errors.New("domain: invalid attendance value")

	// ErrInvalidTransition возвращается при переходе статуса, не допустимом из текущего состояния
	ErrInvalidTransition = errors.New("domain: invalid status transition")
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusConfirmed           BookingStatus = "confirmed"
	StatusPendingCancellation BookingStatus = "pending_cancellation"
	StatusCancelled           BookingStatus = "cancelled"
)

// ParseBookingStatus validates a status string
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case StatusConfirmed, StatusPendingCancellation, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Attendance is the admin mark of whether the client came to the lesson
type Attendance string

const (
	AttendanceUnset   Attendance = ""
	AttendancePresent Attendance = "present"
	AttendanceAbsent  Attendance = "absent"
)

// ParseAttendance accepts only present or absent
func ParseAttendance(s string) (Attendance, error) {
	switch a := Attendance(s); a {
	case AttendancePresent, AttendanceAbsent:
		return a, nil
	}
	return AttendanceUnset, fmt.Errorf("%w: %q", ErrInvalidAttendance, s)
}

// Booking represents a reservation of one slot on one date by a client
type Booking struct {
	ID         int64
	Name       string
	Phone      string
	Date       types.Date
	Slot       Slot
	Status     BookingStatus
	Attendance Attendance
	CreatedAt  time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusPendingCancellation
}

// IsConfirmed returns true if the booking counts towards the client's quotas
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsPendingCancellation returns true if the client asked to cancel and the admin has not decided yet
func (b *Booking) IsPendingCancellation() bool {
	return b.Status == StatusPendingCancellation
}

// Transition is an allowed status change
type Transition struct {
	From BookingStatus
	To   BookingStatus
	Name string
}

var (
	TransitionRequestCancellation = Transition{From: StatusConfirmed, To: StatusPendingCancellation, Name: "request_cancellation"}
	TransitionApproveCancellation = Transition{From: StatusPendingCancellation, To: StatusCancelled, Name: "approve_cancellation"}
	TransitionRejectCancellation  = Transition{From: StatusPendingCancellation, To: StatusConfirmed, Name: "reject_cancellation"}
)

// Check returns ErrInvalidTransition unless the booking is in the From state
func (t Transition) Check(b *Booking) error {
	if b.Status != t.From {
		return fmt.Errorf("%w: %s requires %s, booking id=%d is %s", ErrInvalidTransition, t.Name, t.From, b.ID, b.Status)
	}
	return nil
}

// Apply moves the booking to the To state
func (t Transition) Apply(b *Booking) error {
	if err := t.Check(b); err != nil {
		return err
	}
	b.Status = t.To
	return nil
}
