package domain

import "testing"

// --- SiteSettings Tests ---

func TestSiteSettings_CronSpec(t *testing.T) {
	s := SiteSettings{AutoDeleteHour: 14, AutoDeleteMinute: 5}

	// Daily spec: minute hour, no day-of-week filter.
	if got := s.CronSpec(); got != "5 14 * * *" {
		t.Errorf("expected %q, got %q", "5 14 * * *", got)
	}
}

func TestValidateTriggerTime(t *testing.T) {
	tests := []struct {
		name    string
		hour    int
		minute  int
		wantErr bool
	}{
		{"midnight", 0, 0, false},
		{"end of day", 23, 59, false},
		{"hour too high", 24, 0, true},
		{"negative hour", -1, 0, true},
		{"minute too high", 12, 60, true},
		{"negative minute", 12, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTriggerTime(tt.hour, tt.minute)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTriggerTime(%d, %d) error = %v, wantErr %v",
					tt.hour, tt.minute, err, tt.wantErr)
			}
		})
	}
}

// --- Account Tests ---

func TestAccount_DisplayName(t *testing.T) {
	a := Account{Forename: "Anna", Surname: "Schmidt"}

	if got := a.DisplayName(); got != "Anna Schmidt" {
		t.Errorf("expected %q, got %q", "Anna Schmidt", got)
	}
}

func TestAccount_AsCandidate(t *testing.T) {
	a := Account{Forename: "Anna", Surname: "Schmidt", RunCount: 4}

	c := a.AsCandidate()

	if c.DisplayName != "Anna Schmidt" || c.RunCount != 4 {
		t.Errorf("unexpected projection: %+v", c)
	}
}
