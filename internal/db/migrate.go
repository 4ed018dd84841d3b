package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE additions tolerate "duplicate column name" on re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS agents (
		id         TEXT PRIMARY KEY,
		full_name  TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		role       TEXT NOT NULL DEFAULT 'agente'
		           CHECK(role IN ('agente','coordinador','admin')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS contacts (
		id             TEXT PRIMARY KEY,
		agent_id       TEXT NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
		full_name      TEXT NOT NULL,
		email          TEXT NOT NULL DEFAULT '',
		phone          TEXT NOT NULL DEFAULT '',
		address        TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL DEFAULT 'activo'
		               CHECK(status IN ('activo','seguimiento','cerrado','inactivo','archivado')),
		need           TEXT NOT NULL DEFAULT '',
		source         TEXT NOT NULL DEFAULT '',
		classification TEXT NOT NULL DEFAULT '',
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_contacts_agent ON contacts(agent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_status ON contacts(status)`,

	// One row per agent, per period granularity, per aligned period start.
	// The UNIQUE index backs the upsert-by-lookup in the KPI save path.
	`CREATE TABLE IF NOT EXISTS kpi_records (
		id          TEXT PRIMARY KEY,
		agent_id    TEXT NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
		period_type TEXT NOT NULL
		            CHECK(period_type IN ('daily','weekly','monthly')),
		period_date TEXT NOT NULL,

		conversaciones       REAL NOT NULL DEFAULT 0,
		contactos_nuevos     REAL NOT NULL DEFAULT 0,
		llamadas             REAL NOT NULL DEFAULT 0,
		reuniones            REAL NOT NULL DEFAULT 0,
		visitas              REAL NOT NULL DEFAULT 0,
		valoraciones         REAL NOT NULL DEFAULT 0,
		captaciones          REAL NOT NULL DEFAULT 0,
		encargos_firmados    REAL NOT NULL DEFAULT 0,
		propuestas           REAL NOT NULL DEFAULT 0,
		ventas               REAL NOT NULL DEFAULT 0,
		alquileres           REAL NOT NULL DEFAULT 0,
		referidos            REAL NOT NULL DEFAULT 0,
		facturacion_venta    REAL NOT NULL DEFAULT 0,
		facturacion_alquiler REAL NOT NULL DEFAULT 0,
		honorarios_otros     REAL NOT NULL DEFAULT 0,

		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_kpi_records_period
		ON kpi_records(agent_id, period_type, period_date)`,
	`CREATE INDEX IF NOT EXISTS idx_kpi_records_agent_type
		ON kpi_records(agent_id, period_type)`,

	`CREATE TABLE IF NOT EXISTS agent_objectives (
		id          TEXT PRIMARY KEY,
		agent_id    TEXT NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
		year        INTEGER NOT NULL,
		annual_goal REAL NOT NULL DEFAULT 0,
		q1_goal     REAL NOT NULL DEFAULT 0,
		q2_goal     REAL NOT NULL DEFAULT 0,
		q3_goal     REAL NOT NULL DEFAULT 0,
		q4_goal     REAL NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_objectives_agent_year
		ON agent_objectives(agent_id, year)`,
}
