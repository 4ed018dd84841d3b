package domain

import "time"

// AgentObjective holds the annual billing goal for an agent plus four
// quarterly sub-goals. The quarterly figures are independent inputs; they
// are not required to sum to the annual goal.
type AgentObjective struct {
	ID      string
	AgentID string
	Year    int

	AnnualGoal float64
	Q1Goal     float64
	Q2Goal     float64
	Q3Goal     float64
	Q4Goal     float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
