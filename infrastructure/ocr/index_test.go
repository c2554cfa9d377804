package ocr

import (
	"errors"
	"testing"

	"kyc.igtapps.io/infrastructure/ocr/types"

	"gocv.io/x/gocv"
)

type fakeRecognizer struct {
	lines []types.Line
	err   error
}

func (fr *fakeRecognizer) RecognizeLines(imagePNG []byte) ([]types.Line, error) {
	if fr.err != nil {
		return nil, fr.err
	}
	return fr.lines, nil
}

func (fr *fakeRecognizer) Close() error { return nil }

func encodeTestImage(t *testing.T) []byte {
	t.Helper()
	img := gocv.NewMatWithSize(64, 64, gocv.MatTypeCV8UC3)
	defer img.Close()
	buf, err := gocv.IMEncode(gocv.PNGFileExt, img)
	if err != nil {
		t.Fatalf("could not encode test image: %v", err)
	}
	defer buf.Close()
	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out
}

func TestExtractFieldsUndecodableInput(t *testing.T) {
	service := NewDocumentTextService(&fakeRecognizer{})
	_, err := service.ExtractFields([]byte("not an image"))
	if !errors.Is(err, ErrUndecodableImage) {
		t.Errorf("ExtractFields() error = %v, want ErrUndecodableImage", err)
	}
}

func TestExtractFieldsFullDocument(t *testing.T) {
	lines := []types.Line{
		{Text: "Government of India", Confidence: 0.95, Y: 10},
		{Text: "Ramesh Kumar Sharma", Confidence: 0.90, Y: 100},
		{Text: "DOB: 15/08/1992", Confidence: 0.92, Y: 130},
		{Text: "Gender: MALE", Confidence: 0.91, Y: 160},
		{Text: "4521 8836 9012", Confidence: 0.93, Y: 220},
	}
	service := NewDocumentTextService(&fakeRecognizer{lines: lines})

	got, err := service.ExtractFields(encodeTestImage(t))
	if err != nil {
		t.Fatalf("ExtractFields() error = %v", err)
	}
	if got.IdentifierFull == nil || *got.IdentifierFull != "4521 8836 9012" {
		t.Errorf("ExtractFields() identifier = %v, want 4521 8836 9012", got.IdentifierFull)
	}
	if got.Name == nil || *got.Name != "Ramesh Kumar Sharma" {
		t.Errorf("ExtractFields() name = %v, want Ramesh Kumar Sharma", got.Name)
	}
	if got.DateOfBirth == nil || *got.DateOfBirth != "15/08/1992" {
		t.Errorf("ExtractFields() dob = %v, want 15/08/1992", got.DateOfBirth)
	}
	if got.Gender == nil || *got.Gender != "MALE" {
		t.Errorf("ExtractFields() gender = %v, want MALE", got.Gender)
	}
	wantConfidence := (0.95 + 0.90 + 0.92 + 0.91 + 0.93) / 5
	if diff := got.Confidence - wantConfidence; diff > 0.001 || diff < -0.001 {
		t.Errorf("ExtractFields() confidence = %v, want %v", got.Confidence, wantConfidence)
	}
}

func TestExtractFieldsRecognitionMissYieldsZeroConfidence(t *testing.T) {
	service := NewDocumentTextService(&fakeRecognizer{err: errors.New("engine crashed")})

	got, err := service.ExtractFields(encodeTestImage(t))
	if err != nil {
		t.Fatalf("ExtractFields() error = %v, want pass-level degradation", err)
	}
	if got.Confidence != 0 {
		t.Errorf("ExtractFields() confidence = %v, want 0", got.Confidence)
	}
	if got.IdentifierFull != nil || got.Name != nil || got.DateOfBirth != nil {
		t.Errorf("ExtractFields() = %+v, want empty fields", got)
	}
}
