package domain

import "time"

// ExceptionDate blocks a whole calendar day for a business: its presence
// removes all availability for that date regardless of the weekly schedule.
type ExceptionDate struct {
	ID         int64
	BusinessID int64
	Date       time.Time // date only, midnight UTC
	Reason     *string

	CreatedAt time.Time
}
