package names

import (
	"os"
	"strconv"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

type MatchLevel string

const (
	StrongMatch MatchLevel = "STRONG_MATCH"
	WeakMatch   MatchLevel = "WEAK_MATCH"
	NoMatch     MatchLevel = "NO_MATCH"
	NoData      MatchLevel = "NO_DATA"
)

// MatchResult classifies how likely two names refer to the same person.
type MatchResult struct {
	Score int        `json:"score"`
	Match bool       `json:"match"`
	Level MatchLevel `json:"level"`
}

type Config struct {
	StrongThreshold int
	WeakThreshold   int
}

func DefaultConfig() Config {
	config := Config{StrongThreshold: 90, WeakThreshold: 75}
	if raw := os.Getenv("NAME_STRONG_THRESHOLD"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			config.StrongThreshold = parsed
		}
	}
	if raw := os.Getenv("NAME_WEAK_THRESHOLD"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			config.WeakThreshold = parsed
		}
	}
	return config
}

// metric is one similarity strategy. Different metrics absorb different
// recognition failure modes: transposed name order, partial extraction,
// truncated tokens.
type metric func(a, b string) int

var metrics = []metric{
	func(a, b string) int { return fuzzy.TokenSortRatio(a, b) },
	func(a, b string) int { return fuzzy.TokenSetRatio(a, b) },
	fuzzy.PartialRatio,
}

// Match compares a claimed name against an extracted document name. Either
// side normalising to empty short-circuits to NO_DATA.
func Match(claimed string, extracted string, config Config) MatchResult {
	claimed = Normalize(claimed)
	extracted = Normalize(extracted)

	if claimed == "" || extracted == "" {
		return MatchResult{Score: 0, Match: false, Level: NoData}
	}

	score := 0
	for _, m := range metrics {
		if s := m(claimed, extracted); s > score {
			score = s
		}
	}

	switch {
	case score >= config.StrongThreshold:
		return MatchResult{Score: score, Match: true, Level: StrongMatch}
	case score >= config.WeakThreshold:
		return MatchResult{Score: score, Match: true, Level: WeakMatch}
	}
	return MatchResult{Score: score, Match: false, Level: NoMatch}
}

// Normalize lowercases, strips punctuation and collapses whitespace.
func Normalize(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, ".", "")
	name = strings.ReplaceAll(name, ",", "")
	return strings.Join(strings.Fields(name), " ")
}
