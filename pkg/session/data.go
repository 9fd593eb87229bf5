package session

import "time"

// Data is the persisted session record. Values carries the application payload.
type Data[T any] struct {
	ID               string    `json:"id"`
	AbsoluteDeadline time.Time `json:"absolute_deadline"`
	IdleDeadline     time.Time `json:"idle_deadline"`
	RenewalDeadline  time.Time `json:"renewal_deadline"`
	IsRetired        bool      `json:"is_retired"`
	GroupID          string    `json:"group_id"`
	Values           T         `json:"values"`
}

// IsAbsoluteExpired reports whether the fixed lifetime has elapsed.
func (d Data[T]) IsAbsoluteExpired(now time.Time) bool {
	return !now.Before(d.AbsoluteDeadline)
}

// IsIdleExpired reports whether the sliding idle window has elapsed.
func (d Data[T]) IsIdleExpired(now time.Time) bool {
	return !now.Before(d.IdleDeadline)
}

// IsRenewalDue reports whether the record must be replaced by a fresh one.
func (d Data[T]) IsRenewalDue(now time.Time) bool {
	return !now.Before(d.RenewalDeadline)
}

// IsUsable reports whether the record may back a session at the given time.
func (d Data[T]) IsUsable(now time.Time) bool {
	return !d.IsRetired && !d.IsAbsoluteExpired(now) && !d.IsIdleExpired(now)
}
