package ocr

import (
	"errors"
	"os"
	"time"

	"kyc.igtapps.io/application/utils"
	"kyc.igtapps.io/infrastructure/logger"
	"kyc.igtapps.io/infrastructure/ocr/types"

	"gocv.io/x/gocv"
	"golang.org/x/sync/errgroup"
)

// ErrUndecodableImage marks an input error: the caller sent bytes that are
// not an image. An image with no recognisable text is NOT an error, it
// degrades to confidence 0.
var ErrUndecodableImage = errors.New("image buffer could not be decoded")

// Completeness weights for pass selection. The identifier is worth more than
// everything else combined with the name.
const (
	identifierWeight = 5
	nameWeight       = 3
	dobWeight        = 2
)

type DocumentTextService struct {
	recognizer LineRecognizer
}

var Service *DocumentTextService

// InitialiseDocumentTextService loads the recognition engine once. Every
// subsequent request reuses the same instance.
func InitialiseDocumentTextService() {
	language := os.Getenv("OCR_LANGUAGE")
	if language == "" {
		language = "eng"
	}
	recognizer, err := NewTesseractRecognizer(language)
	if err != nil {
		logger.Error("failed to initialise document text service", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	Service = NewDocumentTextService(recognizer)
	logger.Info("document text service initialised")
}

func NewDocumentTextService(recognizer LineRecognizer) *DocumentTextService {
	return &DocumentTextService{recognizer: recognizer}
}

// ExtractFields runs the full multi-variant extraction over a document image
// buffer. Returns ErrUndecodableImage for corrupt input; a document where
// nothing is found comes back with confidence 0 and nil fields.
func (s *DocumentTextService) ExtractFields(imageBuf []byte) (types.ExtractedFields, error) {
	img, err := gocv.IMDecode(imageBuf, gocv.IMReadColor)
	if err != nil || img.Empty() {
		return types.ExtractedFields{}, ErrUndecodableImage
	}
	defer img.Close()

	passes := s.runPasses(img)
	return s.selectFields(passes), nil
}

// runPasses preprocesses and recognises every variant. Variant encoding runs
// concurrently; the recogniser serialises its own access.
func (s *DocumentTextService) runPasses(img gocv.Mat) []types.PassResult {
	results := make([]types.PassResult, len(documentVariants))
	group := errgroup.Group{}

	for i, variant := range documentVariants {
		i, variant := i, variant
		group.Go(func() error {
			processed := variant.Apply(img)
			defer processed.Close()

			encoded, err := encodePNG(processed)
			if err != nil {
				logger.Warning("failed to encode preprocessing variant", logger.LoggerOptions{
					Key:  "variant",
					Data: variant.Name,
				})
				return nil
			}
			lines, err := s.recognizer.RecognizeLines(encoded)
			if err != nil {
				// Recognition misses degrade the pass, never the request.
				logger.Warning("recognition pass failed", logger.LoggerOptions{
					Key:  "variant",
					Data: variant.Name,
				}, logger.LoggerOptions{
					Key:  "error",
					Data: err,
				})
				return nil
			}
			results[i] = types.PassResult{Variant: variant.Name, Lines: lines}
			return nil
		})
	}
	group.Wait()

	populated := []types.PassResult{}
	for _, pass := range results {
		if len(pass.Lines) > 0 {
			populated = append(populated, pass)
		}
	}
	return populated
}

// selectFields scores each pass by weighted field completeness and lets the
// winner supply the final name, DOB and gender. The identifier is chosen
// globally across all passes by recognition confidence.
func (s *DocumentTextService) selectFields(passes []types.PassResult) types.ExtractedFields {
	now := time.Now()

	var best *types.PassResult
	bestScore := 0
	for i := range passes {
		pass := &passes[i]
		score := 0
		if len(identifierCandidates(pass.Lines)) > 0 {
			score += identifierWeight
		}
		if extractName(pass.Lines) != nil {
			score += nameWeight
		}
		if extractDOB(pass.Lines, now) != nil {
			score += dobWeight
		}
		if score > bestScore {
			bestScore = score
			best = pass
		}
	}

	if best == nil {
		return types.ExtractedFields{Confidence: 0}
	}

	identifier := bestIdentifier(passes)
	if identifier != nil {
		formatted := utils.FormatIdentifier(*identifier)
		identifier = &formatted
	}

	total := 0.0
	for _, line := range best.Lines {
		total += line.Confidence
	}
	confidence := utils.Clamp01(total / float64(len(best.Lines)))

	fields := types.ExtractedFields{
		IdentifierFull: identifier,
		Name:           extractName(best.Lines),
		DateOfBirth:    extractDOB(best.Lines, now),
		Gender:         extractGender(best.Lines),
		Confidence:     confidence,
	}

	logger.Info("document field extraction completed", logger.LoggerOptions{
		Key: "result",
		Data: map[string]interface{}{
			"variant":          best.Variant,
			"identifier_found": fields.IdentifierFull != nil,
			"name_found":       fields.Name != nil,
			"dob_found":        fields.DateOfBirth != nil,
			"confidence":       fields.Confidence,
		},
	})
	return fields
}
