package main

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync"
	"time"
)

const (
	exportScopeSelection = "selection"
	exportScopeFiltered  = "filtered"
)

// exportRecord describes one generated export artifact and the query it was cut from.
type exportRecord struct {
	ID            string    `json:"id"`
	Format        string    `json:"format"`
	Scope         string    `json:"scope"`
	RowCount      int       `json:"rowCount"`
	FilePath      string    `json:"-"`
	FileName      string    `json:"fileName"`
	SearchTerm    string    `json:"searchTerm"`
	StatusFilter  string    `json:"statusFilter"`
	ProjectFilter string    `json:"projectFilter"`
	SortField     string    `json:"sortField"`
	SortDirection string    `json:"sortDirection"`
	EmailedTo     string    `json:"emailedTo,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type exportLog interface {
	Name() string
	Record(ctx context.Context, record exportRecord) error
	// List returns the newest records first.
	List(ctx context.Context, limit int) ([]exportRecord, error)
}

type memoryExportLog struct {
	mu      sync.Mutex
	records []exportRecord
}

func newMemoryExportLog() *memoryExportLog {
	return &memoryExportLog{}
}

func (m *memoryExportLog) Name() string { return "memory" }

func (m *memoryExportLog) Record(_ context.Context, record exportRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *memoryExportLog) List(_ context.Context, limit int) ([]exportRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	newestFirst := slices.Clone(m.records)
	slices.Reverse(newestFirst)
	if limit > 0 && len(newestFirst) > limit {
		newestFirst = newestFirst[:limit]
	}
	return newestFirst, nil
}

type sqlExportLog struct {
	db *sql.DB
}

func newSQLExportLog(db *sql.DB) *sqlExportLog {
	return &sqlExportLog{db: db}
}

func (s *sqlExportLog) Name() string { return "postgres" }

func (s *sqlExportLog) Record(ctx context.Context, record exportRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO order_exports (
			id, format, scope, row_count, file_path,
			search_term, status_filter, project_filter, sort_field, sort_direction,
			emailed_to, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		record.ID, record.Format, record.Scope, record.RowCount, record.FilePath,
		record.SearchTerm, record.StatusFilter, record.ProjectFilter, record.SortField, record.SortDirection,
		record.EmailedTo, record.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert order export: %w", err)
	}
	return nil
}

func (s *sqlExportLog) List(ctx context.Context, limit int) ([]exportRecord, error) {
	if limit <= 0 {
		limit = exportListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id::text, format, scope, row_count, file_path,
			search_term, status_filter, project_filter, sort_field, sort_direction,
			emailed_to, created_at
		FROM order_exports
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list order exports: %w", err)
	}
	defer rows.Close()

	records := []exportRecord{}
	for rows.Next() {
		var record exportRecord
		if err := rows.Scan(
			&record.ID, &record.Format, &record.Scope, &record.RowCount, &record.FilePath,
			&record.SearchTerm, &record.StatusFilter, &record.ProjectFilter, &record.SortField, &record.SortDirection,
			&record.EmailedTo, &record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order export: %w", err)
		}
		record.FileName = exportFileName(record.ID, record.Format)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order exports: %w", err)
	}
	return records, nil
}
