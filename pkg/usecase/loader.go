package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

// TimestampLayout is the only accepted timestamp form (UTC, second precision)
const TimestampLayout = "2006-01-02T15:04:05Z"

// Column names of the input CSV
const (
	ColumnNumber    = "number"
	ColumnState     = "state"
	ColumnCreatedAt = "created_at"
	ColumnClosedAt  = "closed_at"
	ColumnMergedAt  = "merged_at"
	ColumnLabels    = "labels"
	ColumnAuthor    = "author_login"
)

var requiredColumns = []string{
	ColumnNumber,
	ColumnState,
	ColumnCreatedAt,
	ColumnMergedAt,
	ColumnLabels,
}

// Loader turns CSV input into a Dataset
type Loader struct {
	clock func() time.Time
}

// LoaderOption is a functional option for configuring Loader
type LoaderOption func(*Loader)

// WithClock sets the clock captured as the dataset's "now"
func WithClock(clock func() time.Time) LoaderOption {
	return func(l *Loader) {
		l.clock = clock
	}
}

// NewLoader creates a new Loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{clock: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses r and returns a new dataset snapshot
func (l *Loader) Load(ctx context.Context, r io.Reader) (*model.Dataset, error) {
	records, report, err := ParseRecords(ctx, r)
	if err != nil {
		return nil, err
	}

	id, err := types.NewDatasetID()
	if err != nil {
		return nil, err
	}

	ds := &model.Dataset{
		ID:       id,
		Records:  records,
		Report:   report,
		LoadedAt: l.clock().UTC(),
	}

	ctxlog.From(ctx).Info("Dataset loaded",
		slog.String("id", ds.ID.String()),
		slog.Int("rows", report.Rows),
		slog.Int("records", len(records)),
		slog.Int("dropped", report.Dropped),
		slog.Int("anomalies", len(report.Anomalies)),
	)

	return ds, nil
}

// ParseRecords reads CSV rows into records. Rows that cannot become a valid
// record are dropped and reported, never fatal. Malformed CSV or a missing
// required column is an error.
func ParseRecords(ctx context.Context, r io.Reader) ([]*model.Record, model.LoadReport, error) {
	logger := ctxlog.From(ctx)
	records := []*model.Record{}
	report := model.LoadReport{Anomalies: []model.Anomaly{}}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return records, report, nil
	}
	if err != nil {
		return nil, report, goerr.Wrap(err, "failed to read CSV header")
	}

	columns := indexColumns(header)
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, report, goerr.New("required column is missing",
				goerr.V("column", name),
				goerr.T(model.ErrTagMissingColumn))
		}
	}

	seen := make(map[types.RecordID]bool)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, report, goerr.Wrap(err, "failed to read CSV row")
		}
		line, _ := reader.FieldPos(0)
		report.Rows++

		get := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		reject := func(id string, kind model.AnomalyKind, value string) {
			a := model.Anomaly{Line: line, RecordID: id, Kind: kind, Value: value, Dropped: true}
			report.Dropped++
			report.Anomalies = append(report.Anomalies, a)
			logger.Warn("Dropped input row", slog.Any("anomaly", a))
		}

		rawID := get(ColumnNumber)
		id, err := types.ParseRecordID(rawID)
		if err != nil {
			reject(rawID, model.AnomalyInvalidNumber, rawID)
			continue
		}

		rawCreated := get(ColumnCreatedAt)
		createdAt, err := time.Parse(TimestampLayout, rawCreated)
		if err != nil {
			reject(rawID, model.AnomalyInvalidCreatedAt, rawCreated)
			continue
		}

		if seen[id] {
			reject(rawID, model.AnomalyDuplicateNumber, rawID)
			continue
		}

		record := &model.Record{
			ID:        id,
			CreatedAt: createdAt,
			Labels:    parseLabels(get(ColumnLabels)),
			Author:    get(ColumnAuthor),
		}

		// A merge timestamp wins over the raw state
		if rawMerged := get(ColumnMergedAt); rawMerged != "" {
			record.Status = types.StatusMerged
			if mergedAt, err := time.Parse(TimestampLayout, rawMerged); err == nil {
				record.MergedAt = &mergedAt
			} else {
				a := model.Anomaly{Line: line, RecordID: rawID, Kind: model.AnomalyInvalidMergedAt, Value: rawMerged}
				report.Anomalies = append(report.Anomalies, a)
				logger.Warn("Unparseable merge timestamp, keeping merged status", slog.Any("anomaly", a))
			}
		} else {
			rawState := get(ColumnState)
			record.Status = types.NormalizeStatus(rawState)
			if !record.Status.IsValid() {
				reject(rawID, model.AnomalyUnknownState, rawState)
				continue
			}
		}

		if rawClosed := get(ColumnClosedAt); rawClosed != "" {
			if closedAt, err := time.Parse(TimestampLayout, rawClosed); err == nil {
				record.ClosedAt = &closedAt
			}
		}

		seen[id] = true
		records = append(records, record)
	}

	return records, report, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	return columns
}

// parseLabels splits a semicolon separated field into unique, trimmed,
// non-empty labels in first-seen order
func parseLabels(field string) []string {
	labels := []string{}
	seen := make(map[string]bool)
	for _, token := range strings.Split(field, ";") {
		token = strings.TrimSpace(token)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		labels = append(labels, token)
	}
	return labels
}
