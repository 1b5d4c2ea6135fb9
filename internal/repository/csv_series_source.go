package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"BrentWatch/internal/domain/models"
	domrepo "BrentWatch/internal/domain/repository"
	applogger "BrentWatch/pkg/logger"
	"BrentWatch/pkg/util"
)

// CSVSeriesSource loads the price series from a two-column CSV
// (date, price). It is the collaborator side of the core's contract:
// it sorts, deduplicates dates and drops non-positive prices, so the
// core receives a cleaned, validated series.
type CSVSeriesSource struct {
	path       string
	dateFormat string
	log        *applogger.Logger
}

func NewCSVSeriesSource(path, dateFormat string, l *applogger.Logger) *CSVSeriesSource {
	return &CSVSeriesSource{path: path, dateFormat: dateFormat, log: l}
}

func (s *CSVSeriesSource) Load(ctx context.Context) (models.PriceSeries, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return models.PriceSeries{}, fmt.Errorf("open prices: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return models.PriceSeries{}, fmt.Errorf("read prices csv: %w", err)
	}

	points := make([]models.PricePoint, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		select {
		case <-ctx.Done():
			return models.PriceSeries{}, ctx.Err()
		default:
		}
		if len(row) < 2 {
			skipped++
			continue
		}
		date, ok := util.ParseDate(row[0], s.dateFormat)
		if !ok {
			// header row or malformed date
			if i > 0 {
				skipped++
			}
			continue
		}
		price, err := strconv.ParseFloat(row[1], 64)
		if err != nil || price <= 0 {
			skipped++
			continue
		}
		points = append(points, models.PricePoint{Date: util.Midnight(date), Price: price})
	}

	// stable sort so dedupe keeps the first file occurrence of a date
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	points = dedupeDates(points)

	if skipped > 0 {
		s.log.Warn("skipped malformed price rows",
			applogger.Int("skipped", skipped),
			applogger.String("path", s.path),
		)
	}
	s.log.Info("price series loaded",
		applogger.Int("observations", len(points)),
		applogger.String("path", s.path),
	)
	return models.PriceSeries{Points: points}, nil
}

// dedupeDates keeps the first observation of each calendar date;
// the slice must already be sorted by date.
func dedupeDates(points []models.PricePoint) []models.PricePoint {
	out := points[:0]
	for i, p := range points {
		if i > 0 && p.Date.Equal(points[i-1].Date) {
			continue
		}
		out = append(out, p)
	}
	return out
}

var _ domrepo.SeriesSource = (*CSVSeriesSource)(nil)
