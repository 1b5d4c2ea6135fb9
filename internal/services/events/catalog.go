package events

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"BrentWatch/internal/domain/models"
)

var validate = validator.New()

// ValidateCatalog checks every record for required fields and the
// catalog for ascending dates. Validation happens once at load time,
// not per use.
func ValidateCatalog(catalog models.EventCatalog) error {
	for i, ev := range catalog.Events {
		if err := validate.Struct(ev); err != nil {
			return &models.ValidationError{
				Check:  "event_record",
				Detail: fmt.Sprintf("record %d (%s): %v", i, ev.Name, err),
			}
		}
		if i > 0 && catalog.Events[i-1].Date.After(ev.Date) {
			return &models.ValidationError{
				Check:  "catalog_date_order",
				Detail: fmt.Sprintf("record %d (%s) dated before its predecessor", i, ev.Name),
			}
		}
	}
	return nil
}

// Distribution counts catalog entries by year, category, severity and
// region.
func Distribution(catalog models.EventCatalog) models.CatalogDistribution {
	dist := models.CatalogDistribution{
		Total:      catalog.Len(),
		ByYear:     make(map[int]int),
		ByCategory: make(map[string]int),
		BySeverity: make(map[string]int),
		ByRegion:   make(map[string]int),
	}
	for _, ev := range catalog.Events {
		dist.ByYear[ev.Date.Year()]++
		dist.ByCategory[ev.Category]++
		dist.BySeverity[ev.Severity]++
		if ev.Region != "" {
			dist.ByRegion[ev.Region]++
		}
	}
	return dist
}
