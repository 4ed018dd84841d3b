package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mvaldelvira/corredor/internal/db"
	"github.com/mvaldelvira/corredor/internal/domain"
)

// contactColumns is the canonical SELECT column list for contacts.
const contactColumns = `id, agent_id, full_name, email, phone, address,
		status, need, source, classification, notes, created_at, updated_at`

// SQLiteContactRepo implements ContactRepo using a SQLite database.
type SQLiteContactRepo struct {
	db db.DBTX
}

// NewSQLiteContactRepo creates a new SQLiteContactRepo.
func NewSQLiteContactRepo(conn db.DBTX) *SQLiteContactRepo {
	return &SQLiteContactRepo{db: conn}
}

func (r *SQLiteContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	query := `INSERT INTO contacts (` + contactColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.AgentID,
		c.FullName,
		c.Email,
		c.Phone,
		c.Address,
		string(c.Status),
		string(c.Need),
		string(c.Source),
		string(c.Classification),
		c.Notes,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}
	return nil
}

func (r *SQLiteContactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanContact(row)
}

func (r *SQLiteContactRepo) ListByAgent(ctx context.Context, agentID string) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE agent_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("listing contacts by agent: %w", err)
	}
	defer rows.Close()
	return r.scanContacts(rows)
}

func (r *SQLiteContactRepo) ListAll(ctx context.Context) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()
	return r.scanContacts(rows)
}

func (r *SQLiteContactRepo) Update(ctx context.Context, c *domain.Contact) error {
	query := `UPDATE contacts SET agent_id = ?, full_name = ?, email = ?, phone = ?,
		address = ?, status = ?, need = ?, source = ?, classification = ?, notes = ?,
		updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.AgentID,
		c.FullName,
		c.Email,
		c.Phone,
		c.Address,
		string(c.Status),
		string(c.Need),
		string(c.Source),
		string(c.Classification),
		c.Notes,
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}
	return nil
}

// UpdateStage touches only the status and updated_at columns, matching the
// board's transition write.
func (r *SQLiteContactRepo) UpdateStage(ctx context.Context, id string, stage domain.Stage, updatedAt time.Time) error {
	query := `UPDATE contacts SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(stage), updatedAt.Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating contact stage: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteContactRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM contacts WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	return nil
}

func (r *SQLiteContactRepo) scanContact(row *sql.Row) (*domain.Contact, error) {
	var c domain.Contact
	var statusStr, needStr, sourceStr, classStr string
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&c.ID, &c.AgentID, &c.FullName, &c.Email, &c.Phone, &c.Address,
		&statusStr, &needStr, &sourceStr, &classStr, &c.Notes,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("contact: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning contact: %w", err)
	}
	return r.populateContact(&c, statusStr, needStr, sourceStr, classStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteContactRepo) scanContacts(rows *sql.Rows) ([]*domain.Contact, error) {
	var contacts []*domain.Contact
	for rows.Next() {
		var c domain.Contact
		var statusStr, needStr, sourceStr, classStr string
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&c.ID, &c.AgentID, &c.FullName, &c.Email, &c.Phone, &c.Address,
			&statusStr, &needStr, &sourceStr, &classStr, &c.Notes,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning contact row: %w", err)
		}

		contact, err := r.populateContact(&c, statusStr, needStr, sourceStr, classStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}
	return contacts, nil
}

func (r *SQLiteContactRepo) populateContact(
	c *domain.Contact,
	statusStr, needStr, sourceStr, classStr string,
	createdAtStr, updatedAtStr string,
) (*domain.Contact, error) {
	c.Status = domain.Stage(statusStr)
	c.Need = domain.NeedType(needStr)
	c.Source = domain.Source(sourceStr)
	c.Classification = domain.Classification(classStr)

	var err error
	c.CreatedAt, err = parseTime(createdAtStr, time.RFC3339, "created_at")
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAtStr, time.RFC3339, "updated_at")
	if err != nil {
		return nil, err
	}
	return c, nil
}
