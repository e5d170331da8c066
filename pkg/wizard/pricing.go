package wizard

import (
	"fmt"

	"github.com/CampusFoundry/ums-console/pkg/models"
)

// Hourly platform rates in FCFA.
const (
	TeacherAppHourlyRate = 6
	StudentAppHourlyRate = 8
	OfficeHourlyRate     = 4
)

// HoursPerMonth is the billing approximation for 24/7 operation over an
// average 30.4-day month.
const HoursPerMonth = 730

// USDDisplayDivisor converts FCFA totals to an approximate USD figure for
// display only. It is a hardcoded approximation, not a live exchange rate,
// and is never a billing source of truth.
const USDDisplayDivisor = 655.0

// TierPricing holds the hourly FCFA price of one module per tier.
type TierPricing struct {
	Basic    int
	Standard int
	Premium  int
}

// Price returns the hourly price at the given tier.
func (p TierPricing) Price(tier models.Tier) int {
	switch tier {
	case models.TierBasic:
		return p.Basic
	case models.TierStandard:
		return p.Standard
	case models.TierPremium:
		return p.Premium
	}
	return 0
}

// ModuleCatalog is the fixed catalog of selectable modules with their hourly
// FCFA prices.
var ModuleCatalog = map[string]TierPricing{
	"Student Information":      {Basic: 12, Standard: 25, Premium: 45},
	"Fees & Payments":          {Basic: 15, Standard: 38, Premium: 70},
	"Academics & Curriculum":   {Basic: 10, Standard: 22, Premium: 40},
	"Examinations & Grading":   {Basic: 14, Standard: 30, Premium: 55},
	"HR & Payroll":             {Basic: 18, Standard: 35, Premium: 60},
	"Library Management":       {Basic: 8, Standard: 18, Premium: 32},
	"Communication & Notices":  {Basic: 6, Standard: 14, Premium: 25},
	"Admissions & Recruitment": {Basic: 11, Standard: 24, Premium: 42},
}

// KnownModule reports whether name exists in the catalog.
func KnownModule(name string) bool {
	_, ok := ModuleCatalog[name]
	return ok
}

// HourlyCost sums the selected modules' tier prices plus the platform rates:
// flat hourly rates for the teacher and student apps and a per-office rate
// multiplied by the selected office count. Unknown modules price at zero.
func HourlyCost(form *models.UMSForm) int {
	total := 0
	for _, sel := range form.Modules {
		total += ModuleCatalog[sel.Name].Price(sel.Tier)
	}
	if form.Platforms.TeacherApp {
		total += TeacherAppHourlyRate
	}
	if form.Platforms.StudentApp {
		total += StudentAppHourlyRate
	}
	total += OfficeHourlyRate * len(form.Platforms.DesktopOffices)
	return total
}

// MonthlyCost is the hourly total extrapolated to a month of continuous
// operation.
func MonthlyCost(form *models.UMSForm) int {
	return HourlyCost(form) * HoursPerMonth
}

// USDDisplay formats an FCFA amount as an approximate USD string for
// presentation next to the FCFA figure.
func USDDisplay(fcfa int) string {
	return fmt.Sprintf("~$%.2f", float64(fcfa)/USDDisplayDivisor)
}
