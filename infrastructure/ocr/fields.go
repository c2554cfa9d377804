package ocr

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"kyc.igtapps.io/infrastructure/ocr/types"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// OCR confusion pairs: letters the engine habitually reads in place of
// digits on printed identifier lines.
var digitConfusions = map[rune]rune{
	'B': '8', 'O': '0', 'D': '0', 'S': '5', 'I': '1', 'L': '1', 'Z': '2',
}

var (
	nonDigitPattern   = regexp.MustCompile(`\D`)
	datePattern       = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{4}`)
	birthLabelPattern = regexp.MustCompile(`DOB|DATE OF BIRTH|YEAR OF BIRTH`)
	issueLabelPattern = regexp.MustCompile(`ISSUE DATE|ISSUED|DOWNLOAD DATE|DOWNLOADED`)
	malePattern       = regexp.MustCompile(`\bMALE\b`)
	nonAlphaPattern   = regexp.MustCompile(`[^A-Za-z ]`)
	dobLikePattern    = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
)

// Tokens that disqualify a line from being a personal name: government
// boilerplate, field labels and contact lines.
var nameBlacklist = []string{
	"government", "india", "unique", "authority",
	"uidai", "aadhaar", "dob", "male", "female",
	"address", "vid", "year", "birth",
	"mobile", "phone", "mera", "pehchan",
	"identification", "proof", "citizenship",
}

var boilerplateSlogans = []string{
	"mera aadhaar meri pehchan",
	"government of india",
}

type identifierCandidate struct {
	digits string
	score  float64
}

func correctDigits(text string) string {
	var sb strings.Builder
	for _, r := range text {
		if mapped, ok := digitConfusions[r]; ok {
			sb.WriteRune(mapped)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// identifierCandidates collects every plausible 12-digit identifier in a
// pass. Digit runs of 16+ are virtual/alternate IDs and runs of exactly 10
// are phone numbers; both are rejected outright.
func identifierCandidates(lines []types.Line) []identifierCandidate {
	candidates := []identifierCandidate{}
	for _, line := range lines {
		corrected := correctDigits(strings.ToUpper(line.Text))
		digitsOnly := nonDigitPattern.ReplaceAllString(corrected, "")

		if len(digitsOnly) >= 16 {
			continue
		}
		if len(digitsOnly) == 10 {
			continue
		}
		if len(digitsOnly) != 12 {
			continue
		}
		candidates = append(candidates, identifierCandidate{
			digits: digitsOnly,
			score:  line.Confidence,
		})
	}
	return candidates
}

// bestIdentifier picks the highest-confidence candidate across every pass.
func bestIdentifier(passes []types.PassResult) *string {
	best := identifierCandidate{}
	found := false
	for _, pass := range passes {
		for _, candidate := range identifierCandidates(pass.Lines) {
			if !found || candidate.score > best.score {
				best = candidate
				found = true
			}
		}
	}
	if !found {
		return nil
	}
	return &best.digits
}

// extractDOB finds the date of birth among the recognised lines. A line with
// an explicit birth label wins immediately unless it also carries an
// issue/download label, which is never the birth date even when adjacent.
// Otherwise every plausible date is collected and the earliest year wins:
// everything else printed on the document postdates birth.
func extractDOB(lines []types.Line, now time.Time) *string {
	for _, line := range lines {
		upper := strings.ToUpper(line.Text)
		if !birthLabelPattern.MatchString(upper) {
			continue
		}
		if issueLabelPattern.MatchString(upper) {
			continue
		}
		if date := datePattern.FindString(upper); date != "" {
			return formatDOB(date)
		}
	}

	type datedYear struct {
		date string
		year int
	}
	valid := []datedYear{}
	for _, line := range lines {
		upper := strings.ToUpper(line.Text)
		if issueLabelPattern.MatchString(upper) {
			continue
		}
		for _, date := range datePattern.FindAllString(upper, -1) {
			parts := regexp.MustCompile(`[/-]`).Split(date, -1)
			if len(parts) != 3 {
				continue
			}
			year, err := strconv.Atoi(parts[2])
			if err != nil {
				continue
			}
			age := now.Year() - year
			if age < 5 || age > 120 {
				continue
			}
			valid = append(valid, datedYear{date: date, year: year})
		}
	}
	if len(valid) == 0 {
		return nil
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].year < valid[j].year })
	return formatDOB(valid[0].date)
}

func formatDOB(date string) *string {
	parts := regexp.MustCompile(`[/-]`).Split(date, -1)
	if len(parts) != 3 {
		return &date
	}
	day, errD := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	if errD != nil || errM != nil {
		return &date
	}
	formatted := fmt.Sprintf("%02d/%02d/%s", day, month, parts[2])
	return &formatted
}

type nameCandidate struct {
	score float64
	name  string
	index int
}

// extractName scores every surviving line as a name candidate. Recognition
// confidence, word-length quality and vertical adjacency to the DOB line pull
// a line up; sitting in the document header pulls it down.
func extractName(lines []types.Line) *string {
	ordered := make([]types.Line, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Y < ordered[j].Y })

	dobIndex := -1
	for i, line := range ordered {
		lower := strings.ToLower(line.Text)
		if strings.Contains(lower, "dob") || dobLikePattern.MatchString(line.Text) {
			dobIndex = i
			break
		}
	}

	candidates := []nameCandidate{}
	for i, line := range ordered {
		raw := line.Text
		clean := strings.TrimSpace(nonAlphaPattern.ReplaceAllString(raw, ""))
		words := strings.Fields(clean)

		if len(words) < 2 || len(words) > 3 {
			continue
		}
		if !allAlphabetic(words) {
			continue
		}
		if anyShortToken(words) {
			continue
		}
		if anyBlacklisted(words) {
			continue
		}
		if matchesBoilerplate(strings.ToLower(clean)) {
			continue
		}
		if strings.Contains(strings.ToLower(raw), "mobile") {
			continue
		}

		score := line.Confidence * 2

		totalLen := 0
		for _, w := range words {
			totalLen += len(w)
		}
		if float64(totalLen)/float64(len(words)) >= 4 {
			score += 2
		}

		// The holder's name is printed next to the birth date on almost
		// every layout.
		if dobIndex != -1 {
			distance := dobIndex - i
			if distance < 0 {
				distance = -distance
			}
			if distance == 1 {
				score += 5
			} else if distance <= 3 {
				score += 3
			}
		}

		if i < 3 {
			score -= 2
		}

		candidates = append(candidates, nameCandidate{score: score, name: titleCase(clean), index: i})
	}

	if len(candidates) == 0 {
		return nil
	}
	// Stable sort over vertically-ordered candidates: equal scores resolve to
	// the earliest line.
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	return &candidates[0].name
}

func allAlphabetic(words []string) bool {
	for _, w := range words {
		for _, r := range w {
			if !unicode.IsLetter(r) {
				return false
			}
		}
	}
	return true
}

func anyShortToken(words []string) bool {
	for _, w := range words {
		if len(w) <= 2 {
			return true
		}
	}
	return false
}

func anyBlacklisted(words []string) bool {
	for _, w := range words {
		lower := strings.ToLower(w)
		for _, blocked := range nameBlacklist {
			if lower == blocked {
				return true
			}
		}
	}
	return false
}

func matchesBoilerplate(clean string) bool {
	for _, slogan := range boilerplateSlogans {
		if fuzzy.PartialRatio(clean, slogan) > 80 {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// extractGender checks FEMALE before the word-boundary MALE match because the
// former contains the latter.
func extractGender(lines []types.Line) *string {
	text := strings.ToUpper(joinLines(lines))
	switch {
	case strings.Contains(text, "FEMALE"):
		return ptr("FEMALE")
	case malePattern.MatchString(text):
		return ptr("MALE")
	case strings.Contains(text, "TRANSGENDER"):
		return ptr("TRANSGENDER")
	}
	return nil
}

func joinLines(lines []types.Line) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, line.Text)
	}
	return strings.Join(parts, " ")
}

func ptr(s string) *string {
	return &s
}
