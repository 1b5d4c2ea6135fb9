package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"BrentWatch/internal/domain/models"
	domrepo "BrentWatch/internal/domain/repository"
	"BrentWatch/internal/services/events"
	applogger "BrentWatch/pkg/logger"
	"BrentWatch/pkg/util"
)

// CSVEventCatalogSource loads the event catalog from a CSV with a
// header row naming the catalog columns (event_date, event_name,
// event_type, severity, plus optional description, expected_impact and
// region). A missing file or an empty catalog is not an error; the
// analysis degrades to a no-match association.
type CSVEventCatalogSource struct {
	path       string
	dateFormat string
	log        *applogger.Logger
}

func NewCSVEventCatalogSource(path, dateFormat string, l *applogger.Logger) *CSVEventCatalogSource {
	return &CSVEventCatalogSource{path: path, dateFormat: dateFormat, log: l}
}

func (s *CSVEventCatalogSource) Load(ctx context.Context) (models.EventCatalog, error) {
	if s.path == "" {
		return models.EventCatalog{}, nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Warn("event catalog not found", applogger.String("path", s.path))
			return models.EventCatalog{}, nil
		}
		return models.EventCatalog{}, fmt.Errorf("open events: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return models.EventCatalog{}, fmt.Errorf("read events csv: %w", err)
	}
	if len(rows) < 2 {
		return models.EventCatalog{}, nil
	}

	cols := columnIndex(rows[0])
	recs := make([]models.EventRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		select {
		case <-ctx.Done():
			return models.EventCatalog{}, ctx.Err()
		default:
		}
		date, ok := util.ParseDate(field(row, cols, "event_date"), s.dateFormat)
		if !ok {
			continue
		}
		recs = append(recs, models.EventRecord{
			Date:           util.Midnight(date),
			Name:           field(row, cols, "event_name"),
			Category:       field(row, cols, "event_type"),
			Severity:       field(row, cols, "severity"),
			Description:    field(row, cols, "description"),
			ExpectedImpact: field(row, cols, "expected_impact"),
			Region:         field(row, cols, "region"),
		})
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].Date.Before(recs[j].Date) })
	catalog := models.EventCatalog{Events: recs}

	if err := events.ValidateCatalog(catalog); err != nil {
		return models.EventCatalog{}, err
	}

	s.log.Info("event catalog loaded",
		applogger.Int("events", catalog.Len()),
		applogger.String("path", s.path),
	)
	return catalog, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return cols
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

var _ domrepo.EventCatalogSource = (*CSVEventCatalogSource)(nil)
