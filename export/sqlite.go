package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/tsawler/catalogstage/model"
	"github.com/tsawler/catalogstage/report"

	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE products (
		sku TEXT NOT NULL,
		source_page INTEGER NOT NULL,
		"column" TEXT NOT NULL,
		order_in_column INTEGER NOT NULL,
		category TEXT NOT NULL,
		reference_number TEXT NOT NULL,
		name_raw TEXT NOT NULL,
		size TEXT NOT NULL,
		price TEXT NOT NULL,
		image_hint TEXT NOT NULL,
		image_filename TEXT NOT NULL,
		confidence TEXT NOT NULL,
		parse_mode TEXT NOT NULL
	)`,
	`CREATE TABLE images (
		filename TEXT PRIMARY KEY,
		source_page INTEGER NOT NULL,
		"column" TEXT NOT NULL,
		order_in_column INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL
	)`,
	`CREATE TABLE warnings (
		source_page INTEGER NOT NULL,
		code TEXT NOT NULL,
		"column" TEXT,
		order_in_column INTEGER,
		message TEXT NOT NULL
	)`,
	`CREATE INDEX idx_products_page ON products(source_page, "column", order_in_column)`,
	`CREATE INDEX idx_products_confidence ON products(confidence)`,
}

// WriteSQLite writes records, image slots and report warnings to a new
// SQLite database at path, replacing any existing file.
func WriteSQLite(ctx context.Context, path string, records []model.ProductRecord, slots []model.ImageSlot, rep *report.Report) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing old database: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := insertAll(ctx, tx,
		`INSERT INTO products VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		len(records), func(i int) []any {
			r := records[i]
			c := r.Chunk
			return []any{
				r.SKU, c.Page, c.Column.String(), c.Order, c.Category, c.Reference, c.Name,
				r.Size, c.Price.StringFixed(2), c.ImageHint, c.ImageFile, string(c.Confidence), string(c.Mode),
			}
		}); err != nil {
		return fmt.Errorf("inserting products: %w", err)
	}

	if err := insertAll(ctx, tx,
		`INSERT INTO images VALUES (?,?,?,?,?,?)`,
		len(slots), func(i int) []any {
			s := slots[i]
			return []any{s.Filename, s.Page, s.Column.String(), s.Order, s.Width, s.Height}
		}); err != nil {
		return fmt.Errorf("inserting images: %w", err)
	}

	var warnings []report.Warning
	if rep != nil {
		warnings = rep.Warnings
	}
	if err := insertAll(ctx, tx,
		`INSERT INTO warnings VALUES (?,?,?,?,?)`,
		len(warnings), func(i int) []any {
			w := warnings[i]
			return []any{w.Page, string(w.Code), nullString(w.Column), nullInt(w.Order), w.Message}
		}); err != nil {
		return fmt.Errorf("inserting warnings: %w", err)
	}

	return tx.Commit()
}

func insertAll(ctx context.Context, tx *sql.Tx, query string, n int, row func(int) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n > 0}
}
