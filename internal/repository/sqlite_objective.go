package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mvaldelvira/corredor/internal/db"
	"github.com/mvaldelvira/corredor/internal/domain"
)

const objectiveColumns = `id, agent_id, year, annual_goal, q1_goal, q2_goal, q3_goal, q4_goal,
		created_at, updated_at`

// SQLiteObjectiveRepo implements ObjectiveRepo using a SQLite database.
type SQLiteObjectiveRepo struct {
	db db.DBTX
}

// NewSQLiteObjectiveRepo creates a new SQLiteObjectiveRepo.
func NewSQLiteObjectiveRepo(conn db.DBTX) *SQLiteObjectiveRepo {
	return &SQLiteObjectiveRepo{db: conn}
}

func (r *SQLiteObjectiveRepo) Create(ctx context.Context, o *domain.AgentObjective) error {
	query := `INSERT INTO agent_objectives (` + objectiveColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		o.AgentID,
		o.Year,
		o.AnnualGoal,
		o.Q1Goal,
		o.Q2Goal,
		o.Q3Goal,
		o.Q4Goal,
		o.CreatedAt.Format(time.RFC3339),
		o.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting objective: %w", err)
	}
	return nil
}

func (r *SQLiteObjectiveRepo) Update(ctx context.Context, o *domain.AgentObjective) error {
	query := `UPDATE agent_objectives SET annual_goal = ?, q1_goal = ?, q2_goal = ?,
		q3_goal = ?, q4_goal = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		o.AnnualGoal,
		o.Q1Goal,
		o.Q2Goal,
		o.Q3Goal,
		o.Q4Goal,
		o.UpdatedAt.Format(time.RFC3339),
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating objective: %w", err)
	}
	return nil
}

func (r *SQLiteObjectiveRepo) GetByYear(ctx context.Context, agentID string, year int) (*domain.AgentObjective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM agent_objectives
		WHERE agent_id = ? AND year = ?`
	row := r.db.QueryRowContext(ctx, query, agentID, year)
	return scanObjective(row.Scan, true)
}

func (r *SQLiteObjectiveRepo) ListByAgent(ctx context.Context, agentID string) ([]*domain.AgentObjective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM agent_objectives
		WHERE agent_id = ? ORDER BY year`
	rows, err := r.db.QueryContext(ctx, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("listing objectives: %w", err)
	}
	defer rows.Close()

	var objectives []*domain.AgentObjective
	for rows.Next() {
		o, err := scanObjective(rows.Scan, false)
		if err != nil {
			return nil, err
		}
		objectives = append(objectives, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating objectives: %w", err)
	}
	return objectives, nil
}

func scanObjective(scan func(dest ...any) error, single bool) (*domain.AgentObjective, error) {
	var o domain.AgentObjective
	var createdAtStr, updatedAtStr string

	err := scan(
		&o.ID, &o.AgentID, &o.Year, &o.AnnualGoal,
		&o.Q1Goal, &o.Q2Goal, &o.Q3Goal, &o.Q4Goal,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if single && err == sql.ErrNoRows {
			return nil, fmt.Errorf("objective: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning objective: %w", err)
	}

	o.CreatedAt, err = parseTime(createdAtStr, time.RFC3339, "created_at")
	if err != nil {
		return nil, err
	}
	o.UpdatedAt, err = parseTime(updatedAtStr, time.RFC3339, "updated_at")
	if err != nil {
		return nil, err
	}
	return &o, nil
}
