package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mvaldelvira/corredor/internal/db"
	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/kpi"
)

// The value column list is derived from the KPI field schema so the storage
// layer cannot drift from the resolver, save path and forms. Column names
// equal schema keys.
var (
	kpiValueColumns = strings.Join(kpi.Keys(), ", ")
	kpiColumns      = "id, agent_id, period_type, period_date, " + kpiValueColumns + ", created_at, updated_at"
)

// SQLiteKpiRepo implements KpiRepo using a SQLite database.
type SQLiteKpiRepo struct {
	db db.DBTX
}

// NewSQLiteKpiRepo creates a new SQLiteKpiRepo.
func NewSQLiteKpiRepo(conn db.DBTX) *SQLiteKpiRepo {
	return &SQLiteKpiRepo{db: conn}
}

func kpiPlaceholders() string {
	n := 4 + len(kpi.Schema) + 2 // meta + values + timestamps
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func (r *SQLiteKpiRepo) Create(ctx context.Context, rec *domain.KpiRecord) error {
	query := `INSERT INTO kpi_records (` + kpiColumns + `) VALUES (` + kpiPlaceholders() + `)`

	args := []any{
		rec.ID,
		rec.AgentID,
		string(rec.PeriodType),
		rec.PeriodDate.Format(dateLayout),
	}
	for _, key := range kpi.Keys() {
		args = append(args, rec.Values[key])
	}
	args = append(args,
		rec.CreatedAt.Format(time.RFC3339),
		rec.UpdatedAt.Format(time.RFC3339),
	)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting kpi record: %w", err)
	}
	return nil
}

func (r *SQLiteKpiRepo) Update(ctx context.Context, rec *domain.KpiRecord) error {
	var sets []string
	var args []any
	for _, key := range kpi.Keys() {
		sets = append(sets, key+" = ?")
		args = append(args, rec.Values[key])
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, rec.UpdatedAt.Format(time.RFC3339), rec.ID)

	query := `UPDATE kpi_records SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating kpi record: %w", err)
	}
	return nil
}

func (r *SQLiteKpiRepo) GetByPeriod(ctx context.Context, agentID string, periodType domain.PeriodType, periodDate time.Time) (*domain.KpiRecord, error) {
	query := `SELECT ` + kpiColumns + ` FROM kpi_records
		WHERE agent_id = ? AND period_type = ? AND period_date = ?`
	row := r.db.QueryRowContext(ctx, query,
		agentID, string(periodType), periodDate.Format(dateLayout))

	rec, err := scanKpiRecord(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("kpi record: %w", ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

func (r *SQLiteKpiRepo) ListDailyInWindow(ctx context.Context, agentID string, start, end time.Time) ([]*domain.KpiRecord, error) {
	query := `SELECT ` + kpiColumns + ` FROM kpi_records
		WHERE agent_id = ? AND period_type = 'daily'
		  AND period_date >= ? AND period_date < ?
		ORDER BY period_date`
	rows, err := r.db.QueryContext(ctx, query,
		agentID, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing daily kpi records: %w", err)
	}
	defer rows.Close()

	var records []*domain.KpiRecord
	for rows.Next() {
		rec, err := scanKpiRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating kpi records: %w", err)
	}
	return records, nil
}

func (r *SQLiteKpiRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM kpi_records WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting kpi record: %w", err)
	}
	return nil
}

// scanKpiRecord scans one record through the given Scan function, which may
// come from a *sql.Row or *sql.Rows. sql.ErrNoRows passes through untouched
// so callers can translate it.
func scanKpiRecord(scan func(dest ...any) error) (*domain.KpiRecord, error) {
	var rec domain.KpiRecord
	var periodTypeStr, periodDateStr string
	var createdAtStr, updatedAtStr string

	keys := kpi.Keys()
	values := make([]float64, len(keys))

	dest := []any{&rec.ID, &rec.AgentID, &periodTypeStr, &periodDateStr}
	for i := range values {
		dest = append(dest, &values[i])
	}
	dest = append(dest, &createdAtStr, &updatedAtStr)

	if err := scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning kpi record: %w", err)
	}

	rec.PeriodType = domain.PeriodType(periodTypeStr)
	rec.Values = make(map[string]float64, len(keys))
	for i, key := range keys {
		rec.Values[key] = values[i]
	}

	var err error
	rec.PeriodDate, err = parseTime(periodDateStr, dateLayout, "period_date")
	if err != nil {
		return nil, err
	}
	rec.CreatedAt, err = parseTime(createdAtStr, time.RFC3339, "created_at")
	if err != nil {
		return nil, err
	}
	rec.UpdatedAt, err = parseTime(updatedAtStr, time.RFC3339, "updated_at")
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
