package export

import (
	"context"
	"database/sql"
	"fmt"
	"henke-client/internal/components/chrono"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// Clock stamps exported datasets.
var Clock chrono.API = chrono.StandardImpl{}

// OpenSQLite opens (and creates if needed) an export database.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return nil, err
	}
	_, err = db.ExecContext(ctx, Schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// SQLite appends datasets to the database at path in a single transaction.
func SQLite(ctx context.Context, path string, datasets []Dataset) error {
	db, err := OpenSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := Clock.Now().Unix()
	for _, dataset := range datasets {
		err = insertDataset(ctx, tx, dataset, now)
		if err != nil {
			return fmt.Errorf("dataset %s: %w", dataset.Name, err)
		}
	}
	return tx.Commit()
}

func insertDataset(ctx context.Context, tx *sql.Tx, dataset Dataset, createdAt int64) error {
	meta := dataset.Response.Meta
	res, err := tx.ExecContext(
		ctx,
		`insert into dataset(name, title, x_label, y_label, axis, created_at) values (?, ?, ?, ?, ?, ?)`,
		dataset.Name, meta.Title, meta.XLabel, meta.YLabel, string(meta.Axis), createdAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	table := dataset.Response.Table
	for i := 0; i < table.Width(); i++ {
		_, err = tx.ExecContext(
			ctx,
			`insert into dataset_column(dataset_id, column_index, name) values (?, ?, ?)`,
			id, i, columnName(meta, i),
		)
		if err != nil {
			return err
		}
	}

	stmt, err := tx.PrepareContext(ctx, `insert into point(dataset_id, row_index, column_index, value) values (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for r, row := range table.Rows {
		for c, value := range row {
			_, err = stmt.ExecContext(ctx, id, r, c, value)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
