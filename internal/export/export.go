// Package export writes fetched responses to files picked on the command line.
// A sqlite database keeps one row per table cell, a parquet file holds one row
// per (x, series) pair.
package export

import (
	"context"
	"fmt"
	"henke-client/internal/henke"
	"path/filepath"
	"strings"
)

// Dataset is one named response, batches export one dataset per entry.
type Dataset struct {
	Name     string
	Response henke.Response
}

func columnName(meta henke.Meta, i int) string {
	if i < len(meta.Columns) {
		return meta.Columns[i]
	}
	return fmt.Sprintf("column %d", i+1)
}

// Write picks the sink from the file extension: .db, .sqlite or .parquet.
func Write(ctx context.Context, path string, datasets []Dataset) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return SQLite(ctx, path, datasets)
	case ".parquet":
		return Parquet(ctx, path, datasets)
	}
	return fmt.Errorf("export: unsupported output %q, expected .db, .sqlite or .parquet", path)
}
