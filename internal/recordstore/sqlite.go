package recordstore

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/forgepatch/internal/ir"
)

//go:embed schema.sql
var schemaSQL string

// currentSchemaVersion is stamped into PRAGMA user_version.
const currentSchemaVersion = 1

// SQLite persists winning records, the latest run's output and the run log.
type SQLite struct {
	db *sql.DB
}

// RunInfo is the run log row written by Commit.
type RunInfo struct {
	Token     string `json:"token"`
	Seq       int64  `json:"seq"`
	Eligible  int    `json:"eligible"`
	Total     int    `json:"total"`
	Overrides int    `json:"overrides"`
	Created   int    `json:"created"`
	Discarded int    `json:"discarded"`
}

// Open creates or opens a SQLite database at path, applying pragmas and
// the schema. Safe to call repeatedly on the same file.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// Import upserts every record of ds. A record already present is replaced,
// the way a later data layer wins over an earlier one.
func (s *SQLite) Import(ctx context.Context, ds *Dataset) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("import: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (ref, kind, editor_id, body)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(ref) DO UPDATE SET
			kind = excluded.kind,
			editor_id = excluded.editor_id,
			body = excluded.body
	`)
	if err != nil {
		return 0, fmt.Errorf("import: prepare: %w", err)
	}
	defer stmt.Close()

	n := 0
	put := func(ref ir.StableRef, editorID string, v any) error {
		body, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("import %s: %w", ref, err)
		}
		if _, err := stmt.ExecContext(ctx, ref.String(), string(ref.Kind), editorID, string(body)); err != nil {
			return fmt.Errorf("import %s: %w", ref, err)
		}
		n++
		return nil
	}
	for _, f := range ds.Forms {
		if err := put(f.Ref, f.EditorID, f); err != nil {
			return 0, err
		}
	}
	for _, it := range ds.Items {
		if err := put(it.Ref, it.EditorID, it); err != nil {
			return 0, err
		}
	}
	for _, r := range ds.Recipes {
		if err := put(r.Ref, r.EditorID, r); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import: commit: %w", err)
	}
	return n, nil
}

// Load reads every winning record into a new Memory store.
// Rows are read ORDER BY ref COLLATE BINARY for deterministic results.
func (s *SQLite) Load(ctx context.Context, patch string) (*Memory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ref, kind, body FROM records ORDER BY ref COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	m := NewMemory(patch)
	for rows.Next() {
		var ref, kind, body string
		if err := rows.Scan(&ref, &kind, &body); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if err := loadRow(m, ir.RecordKind(kind), body); err != nil {
			return nil, fmt.Errorf("record %s: %w", ref, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return m, nil
}

func loadRow(m *Memory, kind ir.RecordKind, body string) error {
	switch kind {
	case ir.KindArmor, ir.KindWeapon, ir.KindAmmo:
		var it ir.Item
		if err := json.Unmarshal([]byte(body), &it); err != nil {
			return fmt.Errorf("unmarshal item: %w", err)
		}
		m.AddItem(&it)
	case ir.KindRecipe:
		var r ir.Recipe
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			return fmt.Errorf("unmarshal recipe: %w", err)
		}
		m.AddRecipe(&r)
	default:
		var f Form
		if err := json.Unmarshal([]byte(body), &f); err != nil {
			return fmt.Errorf("unmarshal form: %w", err)
		}
		m.AddForm(f)
	}
	return nil
}

// NextSeq returns the sequence number the next run should use.
func (s *SQLite) NextSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("query run seq: %w", err)
	}
	return seq.Int64 + 1, nil
}

// Commit replaces the stored run output with the changes of m and appends
// a run log row, in one transaction. Every override and created row is
// stamped with the run token. The Overrides and Created counts of run are
// taken from m.
func (s *SQLite) Commit(ctx context.Context, m *Memory, run RunInfo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("commit: begin tx: %w", err)
	}
	defer tx.Rollback()

	changes := m.Changes()
	run.Overrides = len(changes.ItemOverrides) + len(changes.RecipeOverrides)
	run.Created = len(changes.CreatedItems) + len(changes.CreatedRecipes)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (token, seq, eligible, total, overrides, created, discarded)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.Token, run.Seq, run.Eligible, run.Total, run.Overrides, run.Created, run.Discarded); err != nil {
		return fmt.Errorf("commit: write run: %w", err)
	}

	// The patch is regenerated on every run.
	for _, table := range []string{"overrides", "created_records"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("commit: clear %s: %w", table, err)
		}
	}

	writeOverride := func(ref ir.StableRef, v any) error {
		body, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("commit override %s: %w", ref, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO overrides (ref, kind, run_token, body)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(ref) DO UPDATE SET run_token = excluded.run_token, body = excluded.body
		`, ref.String(), string(ref.Kind), run.Token, string(body))
		if err != nil {
			return fmt.Errorf("commit override %s: %w", ref, err)
		}
		return nil
	}
	writeCreated := func(ref ir.StableRef, editorID string, v any) error {
		body, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("commit record %s: %w", ref, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO created_records (ref, kind, editor_id, run_token, body)
			VALUES (?, ?, ?, ?, ?)
		`, ref.String(), string(ref.Kind), editorID, run.Token, string(body))
		if err != nil {
			return fmt.Errorf("commit record %s: %w", ref, err)
		}
		return nil
	}

	for _, it := range changes.ItemOverrides {
		if err := writeOverride(it.Ref, it); err != nil {
			return err
		}
	}
	for _, r := range changes.RecipeOverrides {
		if err := writeOverride(r.Ref, r); err != nil {
			return err
		}
	}
	for _, it := range changes.CreatedItems {
		if err := writeCreated(it.Ref, it.EditorID, it); err != nil {
			return err
		}
	}
	for _, r := range changes.CreatedRecipes {
		if err := writeCreated(r.Ref, r.EditorID, r); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Runs returns the run log ordered by seq.
func (s *SQLite) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, seq, eligible, total, overrides, created, discarded
		FROM runs ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunInfo{}
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.Token, &r.Seq, &r.Eligible, &r.Total, &r.Overrides, &r.Created, &r.Discarded); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// OutputCounts returns the number of stored override and created rows
// stamped with token.
func (s *SQLite) OutputCounts(ctx context.Context, token string) (overrides, created int, err error) {
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM overrides WHERE run_token = ?`, token).Scan(&overrides); err != nil {
		return 0, 0, fmt.Errorf("count overrides: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM created_records WHERE run_token = ?`, token).Scan(&created); err != nil {
		return 0, 0, fmt.Errorf("count created records: %w", err)
	}
	return overrides, created, nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *SQLite) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
