package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mvaldelvira/corredor/internal/db"
	"github.com/mvaldelvira/corredor/internal/domain"
)

const agentColumns = `id, full_name, email, role, created_at, updated_at`

// SQLiteAgentRepo implements AgentRepo using a SQLite database.
type SQLiteAgentRepo struct {
	db db.DBTX
}

// NewSQLiteAgentRepo creates a new SQLiteAgentRepo.
func NewSQLiteAgentRepo(conn db.DBTX) *SQLiteAgentRepo {
	return &SQLiteAgentRepo{db: conn}
}

func (r *SQLiteAgentRepo) Create(ctx context.Context, a *domain.Agent) error {
	query := `INSERT INTO agents (` + agentColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.FullName,
		a.Email,
		string(a.Role),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting agent: %w", err)
	}
	return nil
}

func (r *SQLiteAgentRepo) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = ?`
	return r.scanAgent(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteAgentRepo) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE LOWER(email) = LOWER(?)`
	return r.scanAgent(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteAgentRepo) List(ctx context.Context) ([]*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents ORDER BY full_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}
	defer rows.Close()

	var agents []*domain.Agent
	for rows.Next() {
		var a domain.Agent
		var roleStr, createdAtStr, updatedAtStr string
		if err := rows.Scan(&a.ID, &a.FullName, &a.Email, &roleStr, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning agent row: %w", err)
		}
		agent, err := populateAgent(&a, roleStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating agents: %w", err)
	}
	return agents, nil
}

func (r *SQLiteAgentRepo) Update(ctx context.Context, a *domain.Agent) error {
	query := `UPDATE agents SET full_name = ?, email = ?, role = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		a.FullName,
		a.Email,
		string(a.Role),
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating agent: %w", err)
	}
	return nil
}

func (r *SQLiteAgentRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM agents WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting agent: %w", err)
	}
	return nil
}

func (r *SQLiteAgentRepo) scanAgent(row *sql.Row) (*domain.Agent, error) {
	var a domain.Agent
	var roleStr, createdAtStr, updatedAtStr string
	err := row.Scan(&a.ID, &a.FullName, &a.Email, &roleStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("agent: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning agent: %w", err)
	}
	return populateAgent(&a, roleStr, createdAtStr, updatedAtStr)
}

func populateAgent(a *domain.Agent, roleStr, createdAtStr, updatedAtStr string) (*domain.Agent, error) {
	a.Role = domain.Role(roleStr)

	var err error
	a.CreatedAt, err = parseTime(createdAtStr, time.RFC3339, "created_at")
	if err != nil {
		return nil, err
	}
	a.UpdatedAt, err = parseTime(updatedAtStr, time.RFC3339, "updated_at")
	if err != nil {
		return nil, err
	}
	return a, nil
}
