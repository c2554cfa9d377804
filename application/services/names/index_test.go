package names

import "testing"

func TestMatch(t *testing.T) {
	config := Config{StrongThreshold: 90, WeakThreshold: 75}

	tests := []struct {
		name      string
		claimed   string
		extracted string
		wantMatch bool
		wantLevel MatchLevel
	}{
		{
			name:      "identical names",
			claimed:   "Ramesh Kumar Sharma",
			extracted: "Ramesh Kumar Sharma",
			wantMatch: true,
			wantLevel: StrongMatch,
		},
		{
			name:      "case and punctuation differences",
			claimed:   "Jane Doe",
			extracted: "JANE. DOE,",
			wantMatch: true,
			wantLevel: StrongMatch,
		},
		{
			name:      "transposed word order",
			claimed:   "Jane Doe",
			extracted: "Doe Jane",
			wantMatch: true,
			wantLevel: StrongMatch,
		},
		{
			name:      "unrelated names",
			claimed:   "Jane Doe",
			extracted: "Vikram Singh Rathore",
			wantMatch: false,
			wantLevel: NoMatch,
		},
		{
			name:      "empty extracted name",
			claimed:   "Jane Doe",
			extracted: "",
			wantMatch: false,
			wantLevel: NoData,
		},
		{
			name:      "empty claimed name",
			claimed:   "",
			extracted: "Jane Doe",
			wantMatch: false,
			wantLevel: NoData,
		},
		{
			name:      "whitespace-only extracted name",
			claimed:   "Jane Doe",
			extracted: "   ",
			wantMatch: false,
			wantLevel: NoData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.claimed, tt.extracted, config)
			if got.Match != tt.wantMatch {
				t.Errorf("Match() match = %v, want %v (score %d)", got.Match, tt.wantMatch, got.Score)
			}
			if got.Level != tt.wantLevel {
				t.Errorf("Match() level = %s, want %s (score %d)", got.Level, tt.wantLevel, got.Score)
			}
		})
	}
}

func TestMatchTakesBestMetric(t *testing.T) {
	// A middle name present on only one side drags the plain ratio down but
	// the token-set metric sees a full subset.
	got := Match("Ramesh Sharma", "Ramesh Kumar Sharma", DefaultConfig())
	if !got.Match {
		t.Errorf("Match() = %+v, want a match for a subset name", got)
	}
}

func TestMetricsScoreIdenticalInputsAsExact(t *testing.T) {
	for i, m := range metrics {
		if got := m("ramesh kumar sharma", "ramesh kumar sharma"); got != 100 {
			t.Errorf("metrics[%d](identical) = %d, want 100", i, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Jane   Doe ", "jane doe"},
		{"JANE. DOE,", "jane doe"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
