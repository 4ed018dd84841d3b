package domain

import "time"

type Agent struct {
	ID       string
	FullName string
	Email    string
	Role     Role

	CreatedAt time.Time
	UpdatedAt time.Time
}
