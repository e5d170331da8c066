package models

import (
	"encoding/json"
	"testing"
)

func TestModuleTokenRoundTrip(t *testing.T) {
	tests := []ModuleSelection{
		{Name: "Student Information", Tier: TierBasic},
		{Name: "Fees & Payments", Tier: TierStandard},
		{Name: "HR_Payroll", Tier: TierPremium},
	}
	for _, sel := range tests {
		parsed, err := ParseModuleToken(sel.Token())
		if err != nil {
			t.Errorf("ParseModuleToken(%q): %v", sel.Token(), err)
			continue
		}
		if parsed != sel {
			t.Errorf("round trip: got %+v, want %+v", parsed, sel)
		}
	}
}

func TestParseModuleTokenLastUnderscoreWins(t *testing.T) {
	sel, err := ParseModuleToken("student_information_basic")
	if err != nil {
		t.Fatalf("ParseModuleToken: %v", err)
	}
	if sel.Name != "student_information" || sel.Tier != TierBasic {
		t.Errorf("got %+v", sel)
	}
}

func TestParseModuleTokenRejectsMalformed(t *testing.T) {
	for _, token := range []string{"", "noseparator", "_basic", "name_", "name_platinum"} {
		if _, err := ParseModuleToken(token); err == nil {
			t.Errorf("ParseModuleToken(%q): expected error", token)
		}
	}
}

func TestValidTier(t *testing.T) {
	for _, s := range []string{"basic", "standard", "premium"} {
		if !ValidTier(s) {
			t.Errorf("%q should be a valid tier", s)
		}
	}
	for _, s := range []string{"", "Basic", "gold"} {
		if ValidTier(s) {
			t.Errorf("%q should not be a valid tier", s)
		}
	}
}

func TestModuleTokens(t *testing.T) {
	form := UMSForm{
		Modules: []ModuleSelection{
			{Name: "Student Information", Tier: TierBasic},
			{Name: "Library Management", Tier: TierStandard},
		},
	}
	tokens := form.ModuleTokens()
	want := []string{"Student Information_basic", "Library Management_standard"}
	if len(tokens) != len(want) {
		t.Fatalf("tokens: got %v", tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, tokens[i], want[i])
		}
	}
}

func TestUMSJSONShape(t *testing.T) {
	raw := `{"_id":"u1","umsName":"Test U","modules":["Student Information_basic"],"createdAt":"2024-03-01T10:00:00Z"}`
	var u UMS
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.ID != "u1" || u.UMSName != "Test U" {
		t.Errorf("decoded: %+v", u)
	}
	if u.CreatedAt.IsZero() {
		t.Error("createdAt should be decoded")
	}

	out, err := json.Marshal(UMS{ID: "u2", UMSName: "Other U"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) == "" || !json.Valid(out) {
		t.Fatalf("marshal produced %q", out)
	}
	var back map[string]any
	json.Unmarshal(out, &back)
	if _, ok := back["createdAt"]; ok {
		t.Error("zero createdAt should be omitted")
	}
	if back["_id"] != "u2" {
		t.Errorf("_id: got %v", back["_id"])
	}
}
