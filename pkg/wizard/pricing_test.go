package wizard

import (
	"testing"

	"github.com/CampusFoundry/ums-console/pkg/models"
)

func TestHourlyCostCombinesModulesAndPlatforms(t *testing.T) {
	form := &models.UMSForm{
		Modules: []models.ModuleSelection{
			{Name: "Student Information", Tier: models.TierBasic},   // 12
			{Name: "Fees & Payments", Tier: models.TierStandard},    // 38
		},
		Platforms: models.Platforms{TeacherApp: true}, // 6
	}

	if got := HourlyCost(form); got != 56 {
		t.Errorf("HourlyCost: got %d, want 56", got)
	}
	if got := MonthlyCost(form); got != 56*HoursPerMonth {
		t.Errorf("MonthlyCost: got %d, want %d", got, 56*HoursPerMonth)
	}
}

func TestHourlyCostPlatformRates(t *testing.T) {
	form := &models.UMSForm{
		Platforms: models.Platforms{
			TeacherApp:     true,
			StudentApp:     true,
			DesktopOffices: []string{"Registry", "Bursary", "Library"},
		},
	}
	want := TeacherAppHourlyRate + StudentAppHourlyRate + 3*OfficeHourlyRate
	if got := HourlyCost(form); got != want {
		t.Errorf("HourlyCost: got %d, want %d", got, want)
	}
}

func TestHourlyCostUnknownModuleIsFree(t *testing.T) {
	form := &models.UMSForm{
		Modules: []models.ModuleSelection{
			{Name: "Cafeteria", Tier: models.TierPremium},
		},
	}
	if got := HourlyCost(form); got != 0 {
		t.Errorf("unknown module should price at zero, got %d", got)
	}
}

func TestHourlyCostEmptyForm(t *testing.T) {
	if got := HourlyCost(&models.UMSForm{}); got != 0 {
		t.Errorf("empty form should cost zero, got %d", got)
	}
}

func TestTierPricingLookup(t *testing.T) {
	p := TierPricing{Basic: 1, Standard: 2, Premium: 3}
	tests := []struct {
		tier models.Tier
		want int
	}{
		{models.TierBasic, 1},
		{models.TierStandard, 2},
		{models.TierPremium, 3},
		{models.Tier("bogus"), 0},
	}
	for _, tc := range tests {
		if got := p.Price(tc.tier); got != tc.want {
			t.Errorf("Price(%q): got %d, want %d", tc.tier, got, tc.want)
		}
	}
}

func TestUSDDisplay(t *testing.T) {
	if got := USDDisplay(655); got != "~$1.00" {
		t.Errorf("USDDisplay(655): got %q, want ~$1.00", got)
	}
	if got := USDDisplay(0); got != "~$0.00" {
		t.Errorf("USDDisplay(0): got %q, want ~$0.00", got)
	}
}

func TestKnownModule(t *testing.T) {
	if !KnownModule("Library Management") {
		t.Error("Library Management should be in the catalog")
	}
	if KnownModule("Dormitories") {
		t.Error("Dormitories should not be in the catalog")
	}
}
