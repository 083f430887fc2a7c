package codegen

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/errnogen/internal/model"
	"github.com/user/errnogen/internal/source"
)

// Options configures Generate.
type Options struct {
	Order  model.Order
	Format Format
	Logger *slog.Logger
}

// Result is the outcome of one generation.
type Result struct {
	Source   string        `json:"source"`
	Output   []byte        `json:"-"`
	Entries  []model.Entry `json:"-"`
	Count    int           `json:"entries"`
	Skipped  int           `json:"skipped"`
	Digest   string        `json:"sha256"`
	Duration time.Duration `json:"-"`
}

// Build loads src and returns its exportable entries, filtered and ordered.
func Build(ctx context.Context, src source.Source, order model.Order) ([]model.Entry, int, error) {
	table, err := src.Load(ctx)
	if err != nil {
		return nil, 0, err
	}

	entries, skipped, err := model.Filter(table.Entries)
	if err != nil {
		return nil, 0, err
	}

	model.Sort(entries, order)
	return entries, skipped, nil
}

// Generate loads src and renders it. Nothing is written to disk.
func Generate(ctx context.Context, src source.Source, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Order == "" {
		opts.Order = model.OrderName
	}

	start := time.Now()
	logger.Debug("loading error table", "source", src.Name(), "order", opts.Order)

	entries, skipped, err := Build(ctx, src, opts.Order)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", src.Name(), err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, entries, opts.Format); err != nil {
		return nil, fmt.Errorf("failed to render: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	result := &Result{
		Source:   src.Name(),
		Output:   buf.Bytes(),
		Entries:  entries,
		Count:    len(entries),
		Skipped:  skipped,
		Digest:   hex.EncodeToString(sum[:]),
		Duration: time.Since(start),
	}

	logger.Debug("rendered error table",
		"source", result.Source,
		"entries", result.Count,
		"skipped", result.Skipped,
		"sha256", result.Digest)

	return result, nil
}
