package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nao1215/cyriscan/internal/model"
)

// UpsertRequirement inserts or replaces the record stored for rec.URL.
//
// A failed record never overwrites a successful one: re-scraping a page that
// is temporarily down keeps the last good requirements and only updates
// the error column.
func (d *DB) UpsertRequirement(ctx context.Context, rec *model.RequirementRecord) error {
	if rec.URL == "" {
		return ErrEmptyURL
	}

	minimum, err := json.Marshal(rec.Requirements.Minimum)
	if err != nil {
		return fmt.Errorf("failed to serialize minimum block: %w", err)
	}
	recommended, err := json.Marshal(rec.Requirements.Recommended)
	if err != nil {
		return fmt.Errorf("failed to serialize recommended block: %w", err)
	}

	var game sql.NullString
	if rec.Game != nil {
		game = sql.NullString{String: *rec.Game, Valid: true}
	}

	query := `
	INSERT INTO requirements (url, source, game, minimum_json, recommended_json, error, fetched_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET
		source = CASE WHEN excluded.error <> '' AND requirements.error = '' THEN requirements.source ELSE excluded.source END,
		game = CASE WHEN excluded.error <> '' AND requirements.error = '' THEN requirements.game ELSE excluded.game END,
		minimum_json = CASE WHEN excluded.error <> '' AND requirements.error = '' THEN requirements.minimum_json ELSE excluded.minimum_json END,
		recommended_json = CASE WHEN excluded.error <> '' AND requirements.error = '' THEN requirements.recommended_json ELSE excluded.recommended_json END,
		fetched_at = CASE WHEN excluded.error <> '' AND requirements.error = '' THEN requirements.fetched_at ELSE excluded.fetched_at END,
		error = CASE WHEN excluded.error <> '' AND requirements.error = '' THEN requirements.error ELSE excluded.error END,
		updated_at = CURRENT_TIMESTAMP
	`

	_, err = d.db.ExecContext(ctx, query,
		rec.URL,
		rec.Source,
		game,
		string(minimum),
		string(recommended),
		rec.Error,
		formatTimestamp(rec.FetchedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert requirement: %w", err)
	}
	return nil
}

const requirementColumns = `url, source, game, minimum_json, recommended_json, error, fetched_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequirement(row rowScanner) (*model.RequirementRecord, error) {
	var (
		rec         model.RequirementRecord
		game        sql.NullString
		minimum     string
		recommended string
		fetchedAt   sql.NullString
	)
	if err := row.Scan(&rec.URL, &rec.Source, &game, &minimum, &recommended, &rec.Error, &fetchedAt); err != nil {
		return nil, err
	}
	if game.Valid {
		rec.Game = &game.String
	}
	if err := json.Unmarshal([]byte(minimum), &rec.Requirements.Minimum); err != nil {
		return nil, fmt.Errorf("failed to parse minimum block: %w", err)
	}
	if err := json.Unmarshal([]byte(recommended), &rec.Requirements.Recommended); err != nil {
		return nil, fmt.Errorf("failed to parse recommended block: %w", err)
	}
	if fetchedAt.Valid {
		rec.FetchedAt = parseTimestamp(fetchedAt.String)
	}
	return &rec, nil
}

// GetRequirement returns the record stored for url, or nil when there is none.
func (d *DB) GetRequirement(ctx context.Context, url string) (*model.RequirementRecord, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+requirementColumns+` FROM requirements WHERE url = ?`, url)
	rec, err := scanRequirement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get requirement: %w", err)
	}
	return rec, nil
}

// ListOptions filters ListRequirements.
type ListOptions struct {
	// IncludeFailed also returns records whose last fetch failed.
	IncludeFailed bool

	// Limit caps the number of records; zero means no limit.
	Limit int
}

// ListRequirements returns stored records in first-inserted order.
func (d *DB) ListRequirements(ctx context.Context, opts ListOptions) ([]*model.RequirementRecord, error) {
	query := `SELECT ` + requirementColumns + ` FROM requirements WHERE 1=1`
	args := make([]any, 0, 1)

	if !opts.IncludeFailed {
		query += " AND error = ''"
	}
	query += " ORDER BY id"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	defer rows.Close()

	var records []*model.RequirementRecord
	for rows.Next() {
		rec, err := scanRequirement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountRequirements returns the number of stored records and how many of
// them are failures.
func (d *DB) CountRequirements(ctx context.Context) (total, failed int, err error) {
	err = d.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN error <> '' THEN 1 ELSE 0 END), 0) FROM requirements`,
	).Scan(&total, &failed)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count requirements: %w", err)
	}
	return total, failed, nil
}
