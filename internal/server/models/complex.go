package models

import "time"

// Complex is a residential complex, the root of the real-estate hierarchy.
type Complex struct {
	ID        int64
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (c *Complex) Active() bool { return c.DeletedAt == nil }
