package decision

import (
	"os"
	"strconv"
)

type Status string

const (
	StatusVerified     Status = "VERIFIED"
	StatusManualReview Status = "MANUAL_REVIEW"
	StatusFailed       Status = "FAILED"
)

// Metrics carries the raw signal values into the decision output for audit.
type Metrics struct {
	OCRPassed      bool    `json:"ocr_passed"`
	LivenessPassed bool    `json:"liveness_passed"`
	NameScore      int     `json:"name_score"`
	FaceScore      float64 `json:"face_score"`
}

// Decision is the fused verification outcome. It is a pure function's
// output: recomputable at any time from the latest stored signals, never
// cached here.
type Decision struct {
	Status  Status  `json:"status"`
	Reason  string  `json:"reason"`
	Metrics Metrics `json:"metrics"`
}

// Signals are the four inputs read on demand from storage.
type Signals struct {
	OCRConfidence  float64
	LivenessStatus bool
	NameMatch      bool
	NameScore      int
	FaceSimilarity float64
}

type Config struct {
	OCRGate        float64
	FaceVerifyBand float64
	FaceReviewBand float64
}

func DefaultConfig() Config {
	config := Config{
		OCRGate:        0.75,
		FaceVerifyBand: 0.50,
		FaceReviewBand: 0.30,
	}
	if raw := os.Getenv("DECISION_OCR_GATE"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			config.OCRGate = parsed
		}
	}
	if raw := os.Getenv("DECISION_FACE_VERIFY_BAND"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			config.FaceVerifyBand = parsed
		}
	}
	if raw := os.Getenv("DECISION_FACE_REVIEW_BAND"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			config.FaceReviewBand = parsed
		}
	}
	return config
}

// Decide fuses the four signals. Gates run in fixed precedence (OCR, then
// liveness, then name) and only once all three pass does face similarity
// pick between three bands. The middle band covers outdated document photos
// that score low for genuine users.
func Decide(signals Signals, config Config) Decision {
	metrics := Metrics{
		OCRPassed:      signals.OCRConfidence >= config.OCRGate,
		LivenessPassed: signals.LivenessStatus,
		NameScore:      signals.NameScore,
		FaceScore:      signals.FaceSimilarity,
	}

	if !metrics.OCRPassed {
		return Decision{Status: StatusFailed, Reason: "OCR Failed", Metrics: metrics}
	}
	if !metrics.LivenessPassed {
		return Decision{Status: StatusFailed, Reason: "Liveness Failed", Metrics: metrics}
	}
	if !signals.NameMatch {
		return Decision{Status: StatusFailed, Reason: "Name Mismatch", Metrics: metrics}
	}

	switch {
	case signals.FaceSimilarity >= config.FaceVerifyBand:
		return Decision{Status: StatusVerified, Reason: "Auto-Verified: High Match", Metrics: metrics}
	case signals.FaceSimilarity >= config.FaceReviewBand:
		return Decision{Status: StatusManualReview, Reason: "Name matched but Face score low - possible old photo", Metrics: metrics}
	}
	return Decision{Status: StatusFailed, Reason: "Face Mismatch", Metrics: metrics}
}
