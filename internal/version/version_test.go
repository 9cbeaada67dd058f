package version

import "testing"

func TestCalculateBuildID(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{
			name:     "epoch date",
			date:     "2024-03-01",
			expected: 0,
		},
		{
			name:     "next day after epoch",
			date:     "2024-03-02",
			expected: 1,
		},
		{
			name:     "one year later",
			date:     "2025-03-01",
			expected: 365,
		},
		{
			name:     "date with leap years included",
			date:     "2032-03-01",
			expected: 2922,
		},
		{
			name:      "invalid format",
			date:      "invalid",
			wantError: true,
		},
		{
			name:      "empty date",
			date:      "",
			wantError: true,
		},
		{
			name:      "before epoch",
			date:      "2024-02-29",
			wantError: true,
		},
	}

	for _, tt := range tests {
		old := BuildDate
		BuildDate = tt.date

		got, err := CalculateBuildID()
		BuildDate = old

		if tt.wantError {
			if err == nil {
				t.Fatalf("%s: expected error, got nil (id=%d)", tt.name, got)
			}
			continue
		}

		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.expected {
			t.Errorf("%s: CalculateBuildID() = %d, want %d", tt.name, got, tt.expected)
		}
	}
}

func TestInfoWithBuildMetadata(t *testing.T) {
	oldDate, oldCommit := BuildDate, BuildCommit
	BuildDate = "2024-03-02"
	BuildCommit = "abc1234"
	defer func() { BuildDate, BuildCommit = oldDate, oldCommit }()

	info := Info()
	if !info.Calculated {
		t.Fatalf("Info() not calculated: %s", info.Error)
	}
	if info.BuildID != 1 {
		t.Errorf("BuildID = %d, want 1", info.BuildID)
	}
	if info.Commit != "abc1234" {
		t.Errorf("Commit = %q, want abc1234", info.Commit)
	}
}

func TestStringWithoutBuildDate(t *testing.T) {
	old := BuildDate
	BuildDate = ""
	defer func() { BuildDate = old }()

	if s := String(); s == "" {
		t.Error("String() must degrade gracefully without build metadata")
	}
}
