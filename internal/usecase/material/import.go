package material

import (
	"context"
	"fmt"
	"io"

	"bicocont/internal/domain/uow"

	"go.uber.org/zap"
)

const DefaultPreviewRows = 5

// Import replaces the whole materials table with the uploaded file. Parse
// failures return a *ParseError before anything is touched; the delete and
// the bulk insert share one transaction.
func (u *Usecase) Import(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	t, err := Parse(filename, r)
	if err != nil {
		u.metrics.Import("parse_error", 0)
		return nil, err
	}
	cm := MapColumns(t.Columns)
	rows := Normalize(t, cm)

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Materials.DeleteAll(ctx); err != nil {
			return err
		}
		return r.Materials.CreateBatch(ctx, rows)
	})
	if err != nil {
		u.metrics.Import("store_error", 0)
		return nil, fmt.Errorf("replace materials: %w", err)
	}

	if err := u.cache.Invalidate(ctx); err != nil {
		u.log.Error("materials cache invalidation failed after import", zap.Error(err))
	}
	// warm the cache so the next lookup sees the new table without a store read
	if _, err := u.materials(ctx); err != nil {
		u.log.Warn("materials reload after import failed", zap.Error(err))
	}

	u.metrics.Import("ok", len(rows))
	u.log.Info("materials imported",
		zap.String("file", filename),
		zap.Stringer("table", t),
		zap.Int("rows", len(rows)),
		zap.Any("mapping", cm.Mapping),
		zap.Strings("dropped", cm.Dropped),
		zap.Strings("shadowed", cm.Shadowed),
	)
	return &ImportResult{Rows: len(rows), Columns: cm}, nil
}

// Preview parses the upload and reports the column mapping and the first n
// raw rows without writing anything.
func Preview(filename string, r io.Reader, n int) (*PreviewResult, error) {
	t, err := Parse(filename, r)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultPreviewRows
	}
	head := t.Rows
	if len(head) > n {
		head = head[:n]
	}
	if head == nil {
		head = [][]string{}
	}
	return &PreviewResult{
		Columns:   t.Columns,
		Mapping:   MapColumns(t.Columns),
		Rows:      head,
		TotalRows: len(t.Rows),
	}, nil
}
