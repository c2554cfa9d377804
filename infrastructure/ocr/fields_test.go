package ocr

import (
	"testing"
	"time"

	"kyc.igtapps.io/infrastructure/ocr/types"
)

func TestCorrectDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"B123 45S7 9O12", "8123 4557 9012"},
		{"IL2Z", "1122"},
		{"4521", "4521"},
	}
	for _, tt := range tests {
		if got := correctDigits(tt.in); got != tt.want {
			t.Errorf("correctDigits(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIdentifierCandidates(t *testing.T) {
	tests := []struct {
		name  string
		lines []types.Line
		want  []string
	}{
		{
			name: "valid twelve digit run",
			lines: []types.Line{
				{Text: "4521 8836 9012", Confidence: 0.9},
			},
			want: []string{"452188369012"},
		},
		{
			name: "sixteen digit virtual id rejected",
			lines: []types.Line{
				{Text: "VID: 9163 4412 8836 9012", Confidence: 0.9},
			},
			want: []string{},
		},
		{
			name: "ten digit phone number rejected",
			lines: []types.Line{
				{Text: "Mobile: 9876543210", Confidence: 0.9},
			},
			want: []string{},
		},
		{
			name: "confused letters corrected before counting",
			lines: []types.Line{
				{Text: "45ZI 88B6 9OI2", Confidence: 0.8},
			},
			want: []string{"452188869012"},
		},
		{
			name: "eleven digits is neither id nor phone",
			lines: []types.Line{
				{Text: "45218836901", Confidence: 0.8},
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := identifierCandidates(tt.lines)
			if len(got) != len(tt.want) {
				t.Fatalf("identifierCandidates() returned %d candidates, want %d", len(got), len(tt.want))
			}
			for i, candidate := range got {
				if candidate.digits != tt.want[i] {
					t.Errorf("candidate %d = %q, want %q", i, candidate.digits, tt.want[i])
				}
			}
		})
	}
}

func TestBestIdentifierPicksHighestConfidenceAcrossPasses(t *testing.T) {
	passes := []types.PassResult{
		{Variant: "grayscale", Lines: []types.Line{
			{Text: "4521 8836 9012", Confidence: 0.61},
		}},
		{Variant: "threshold", Lines: []types.Line{
			{Text: "4521 8836 9072", Confidence: 0.88},
		}},
	}
	got := bestIdentifier(passes)
	if got == nil {
		t.Fatal("bestIdentifier() = nil, want a candidate")
	}
	if *got != "452188369072" {
		t.Errorf("bestIdentifier() = %q, want the higher-confidence read %q", *got, "452188369072")
	}
}

func TestBestIdentifierNoCandidates(t *testing.T) {
	passes := []types.PassResult{
		{Variant: "grayscale", Lines: []types.Line{
			{Text: "Government of India", Confidence: 0.95},
		}},
	}
	if got := bestIdentifier(passes); got != nil {
		t.Errorf("bestIdentifier() = %q, want nil", *got)
	}
}

func TestExtractDOB(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		lines []types.Line
		want  string
		none  bool
	}{
		{
			name: "birth label line wins",
			lines: []types.Line{
				{Text: "Download Date: 01/02/2024"},
				{Text: "DOB: 15/08/1992"},
			},
			want: "15/08/1992",
		},
		{
			name: "issue label never supplies the birth date",
			lines: []types.Line{
				{Text: "Issue Date: 01/02/2020"},
				{Text: "12/06/1985"},
			},
			want: "12/06/1985",
		},
		{
			name: "earliest plausible year wins without a label",
			lines: []types.Line{
				{Text: "01/02/2019"},
				{Text: "15/08/1992"},
				{Text: "03/04/2001"},
			},
			want: "15/08/1992",
		},
		{
			name: "implausibly old year rejected",
			lines: []types.Line{
				{Text: "15/08/1802"},
				{Text: "12/06/1985"},
			},
			want: "12/06/1985",
		},
		{
			name: "too recent year rejected",
			lines: []types.Line{
				{Text: "15/08/2024"},
			},
			none: true,
		},
		{
			name: "single digit day and month zero padded",
			lines: []types.Line{
				{Text: "DOB: 9/3/1990"},
			},
			want: "09/03/1990",
		},
		{
			name:  "no dates at all",
			lines: []types.Line{{Text: "Government of India"}},
			none:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractDOB(tt.lines, now)
			if tt.none {
				if got != nil {
					t.Errorf("extractDOB() = %q, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("extractDOB() = nil, want %q", tt.want)
			}
			if *got != tt.want {
				t.Errorf("extractDOB() = %q, want %q", *got, tt.want)
			}
		})
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name  string
		lines []types.Line
		want  string
		none  bool
	}{
		{
			name: "name adjacent to dob beats a distant candidate",
			lines: []types.Line{
				{Text: "Government of India", Confidence: 0.95, Y: 10},
				{Text: "Unique Identification Authority", Confidence: 0.95, Y: 30},
				{Text: "Ramesh Kumar Sharma", Confidence: 0.85, Y: 120},
				{Text: "DOB: 15/08/1992", Confidence: 0.9, Y: 150},
				{Text: "Address: 12 MG Road", Confidence: 0.8, Y: 200},
				{Text: "Hyderabad 500001", Confidence: 0.8, Y: 230},
				{Text: "State of Telangana", Confidence: 0.8, Y: 260},
				{Text: "Priya Patel Nair", Confidence: 0.85, Y: 400},
			},
			want: "Ramesh Kumar Sharma",
		},
		{
			name: "blacklisted tokens disqualify the line",
			lines: []types.Line{
				{Text: "Aadhaar Number", Confidence: 0.95, Y: 10},
				{Text: "Sunita Devi", Confidence: 0.7, Y: 100},
			},
			want: "Sunita Devi",
		},
		{
			name: "mobile line never a name",
			lines: []types.Line{
				{Text: "Mobile Number", Confidence: 0.99, Y: 50},
				{Text: "Arun Verma", Confidence: 0.6, Y: 200},
			},
			want: "Arun Verma",
		},
		{
			name: "single word rejected",
			lines: []types.Line{
				{Text: "Ramesh", Confidence: 0.99, Y: 100},
			},
			none: true,
		},
		{
			name: "four words rejected",
			lines: []types.Line{
				{Text: "Ramesh Kumar Sharma Verma Gupta", Confidence: 0.99, Y: 100},
			},
			none: true,
		},
		{
			name: "short initials rejected",
			lines: []types.Line{
				{Text: "RK Sharma", Confidence: 0.99, Y: 100},
			},
			none: true,
		},
		{
			name: "output title cased",
			lines: []types.Line{
				{Text: "RAMESH KUMAR SHARMA", Confidence: 0.9, Y: 200},
			},
			want: "Ramesh Kumar Sharma",
		},
		{
			name:  "no candidates",
			lines: []types.Line{{Text: "Government of India", Confidence: 0.95, Y: 10}},
			none:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractName(tt.lines)
			if tt.none {
				if got != nil {
					t.Errorf("extractName() = %q, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("extractName() = nil, want %q", tt.want)
			}
			if *got != tt.want {
				t.Errorf("extractName() = %q, want %q", *got, tt.want)
			}
		})
	}
}

func TestExtractGender(t *testing.T) {
	tests := []struct {
		name  string
		lines []types.Line
		want  string
		none  bool
	}{
		{
			name:  "female wins despite containing male",
			lines: []types.Line{{Text: "DOB: 15/08/1992 FEMALE"}},
			want:  "FEMALE",
		},
		{
			name:  "male needs a word boundary",
			lines: []types.Line{{Text: "Gender: Male"}},
			want:  "MALE",
		},
		{
			name:  "transgender",
			lines: []types.Line{{Text: "TRANSGENDER"}},
			want:  "TRANSGENDER",
		},
		{
			name:  "no gender marker",
			lines: []types.Line{{Text: "Government of India"}},
			none:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractGender(tt.lines)
			if tt.none {
				if got != nil {
					t.Errorf("extractGender() = %q, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("extractGender() = nil, want %q", tt.want)
			}
			if *got != tt.want {
				t.Errorf("extractGender() = %q, want %q", *got, tt.want)
			}
		})
	}
}
