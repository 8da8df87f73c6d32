package models

import "time"

// Building belongs to a Complex.
type Building struct {
	ID        int64
	ComplexID int64
	Name      string
	Floors    int
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (b *Building) Active() bool { return b.DeletedAt == nil }
