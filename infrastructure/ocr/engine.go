package ocr

import (
	"fmt"
	"sync"

	"kyc.igtapps.io/infrastructure/logger"
	"kyc.igtapps.io/infrastructure/ocr/types"

	"github.com/otiai10/gosseract/v2"
)

// LineRecognizer turns an encoded image into recognised text lines. The
// production implementation wraps a Tesseract client which is not safe for
// concurrent invocation, so access is serialised internally.
type LineRecognizer interface {
	RecognizeLines(imagePNG []byte) ([]types.Line, error)
	Close() error
}

type tesseractRecognizer struct {
	client *gosseract.Client
	mutex  sync.Mutex
}

// NewTesseractRecognizer initialises a single long-lived Tesseract client.
// Loading language data is expensive, so this happens once at startup and the
// client is reused for every request.
func NewTesseractRecognizer(language string) (LineRecognizer, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not set tesseract language %s: %w", language, err)
	}
	logger.Info("tesseract line recognizer initialised", logger.LoggerOptions{
		Key:  "language",
		Data: language,
	})
	return &tesseractRecognizer{client: client}, nil
}

func (tr *tesseractRecognizer) RecognizeLines(imagePNG []byte) ([]types.Line, error) {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()

	if err := tr.client.SetImageFromBytes(imagePNG); err != nil {
		return nil, fmt.Errorf("tesseract rejected image buffer: %w", err)
	}
	boxes, err := tr.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("tesseract recognition failed: %w", err)
	}

	lines := make([]types.Line, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		lines = append(lines, types.Line{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Y:          box.Box.Min.Y,
		})
	}
	return lines, nil
}

func (tr *tesseractRecognizer) Close() error {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()
	return tr.client.Close()
}
