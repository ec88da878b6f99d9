package handlers

import (
	"time"

	"github.com/AgendaPlusBR/scheduling-api/internal/models"
	"github.com/AgendaPlusBR/scheduling-api/internal/timezone"
)

// resolve o timezone oficial da empresa
func locationFromCompany(company *models.Company) *time.Location {
	if company != nil && company.Timezone != "" {
		return timezone.Location(company.Timezone)
	}
	return timezone.Location(timezone.DefaultTimezone)
}

func parseDateInCompany(company *models.Company, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromCompany(company),
	)
}
