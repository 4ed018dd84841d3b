package domain

import "time"

type Contact struct {
	ID      string
	AgentID string

	FullName string
	Email    string
	Phone    string
	Address  string

	Status         Stage
	Need           NeedType
	Source         Source
	Classification Classification

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
