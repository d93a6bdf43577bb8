package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"chart-color-inspector/pkg/models"
)

// sqliteHistory stores analysis runs in a local SQLite database so traders
// can look back at what a screenshot contained without re-running the scan.
type sqliteHistory struct {
	db     *sql.DB
	dbPath string
}

const historySchema = `
CREATE TABLE IF NOT EXISTS analyses (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	image_path    TEXT NOT NULL,
	color_name    TEXT NOT NULL,
	total_matched INTEGER NOT NULL,
	percentage    REAL NOT NULL,
	report_json   TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
`

// OpenHistory opens or creates the history database under dbDir.
func OpenHistory(dbDir string) (HistoryRepository, error) {
	if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	dbPath := filepath.Join(dbDir, "history.db")

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &sqliteHistory{db: db, dbPath: dbPath}, nil
}

// SaveAnalysis persists one analysis report.
func (h *sqliteHistory) SaveAnalysis(ctx context.Context, report *models.AnalysisReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	_, err = h.db.ExecContext(ctx,
		`INSERT INTO analyses (image_path, color_name, total_matched, percentage, report_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		report.AnalysisInfo.ImagePath,
		report.ColorName,
		report.TotalMatched,
		report.Percentage,
		string(payload),
		report.AnalysisInfo.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHistoryUnavailable, err)
	}
	return nil
}

// RecentAnalyses returns up to limit entries, newest first.
func (h *sqliteHistory) RecentAnalyses(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := h.db.QueryContext(ctx,
		`SELECT id, image_path, color_name, total_matched, percentage, created_at
		 FROM analyses ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryUnavailable, err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var entry models.HistoryEntry
		var createdAt time.Time
		if err := rows.Scan(&entry.ID, &entry.ImagePath, &entry.ColorName,
			&entry.TotalMatched, &entry.Percentage, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entry.CreatedAt = createdAt
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Close releases the underlying database.
func (h *sqliteHistory) Close() error {
	return h.db.Close()
}
