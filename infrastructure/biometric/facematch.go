package biometric

import (
	"errors"
	"image"
	"os"
	"strconv"

	"kyc.igtapps.io/application/utils"
	"kyc.igtapps.io/infrastructure/biometric/types"
	"kyc.igtapps.io/infrastructure/logger"

	"gocv.io/x/gocv"
)

// ErrUndecodableImage marks an input error: the buffer is not an image.
var ErrUndecodableImage = errors.New("image buffer could not be decoded")

// Proportional margin added around a detected document face before cropping.
// The extra context preserves the alignment cues the embedding model needs.
const faceCropMargin = 0.40

// Document crops below this height get one 2x upsample retry when embedding
// extraction misses.
const smallCropHeight = 300

type FaceMatchConfig struct {
	MatchThreshold float64
}

func DefaultFaceMatchConfig() FaceMatchConfig {
	threshold := 0.50
	if raw := os.Getenv("FACE_MATCH_THRESHOLD"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			threshold = parsed
		}
	}
	return FaceMatchConfig{MatchThreshold: threshold}
}

// FaceMatchService owns the detection and embedding models, loaded once at
// startup and shared read-only across requests.
type FaceMatchService struct {
	detector FaceDetector
	embedder FaceEmbedder
	config   FaceMatchConfig
}

func NewFaceMatchService(detector FaceDetector, embedder FaceEmbedder, config FaceMatchConfig) *FaceMatchService {
	return &FaceMatchService{detector: detector, embedder: embedder, config: config}
}

// cropVariant is one preprocessing strategy for the document face crop.
type cropVariant struct {
	Name  string
	Apply func(src gocv.Mat) gocv.Mat
}

// cropVariants is the ordered ensemble evaluated during comparison; the final
// similarity is the maximum across them.
var cropVariants = []cropVariant{
	{Name: "original", Apply: func(src gocv.Mat) gocv.Mat { return src.Clone() }},
	{Name: "denoised", Apply: denoiseColored},
	{Name: "denoised_enhanced", Apply: func(src gocv.Mat) gocv.Mat {
		denoised := denoiseColored(src)
		defer denoised.Close()
		return enhanceContrast(denoised)
	}},
}

func denoiseColored(src gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	gocv.FastNlMeansDenoisingColoredWithParams(src, &out, 10, 10, 7, 21)
	return out
}

// enhanceContrast applies CLAHE to the L channel in LAB space.
func enhanceContrast(src gocv.Mat) gocv.Mat {
	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(src, &lab, gocv.ColorBGRToLab)

	channels := gocv.Split(lab)
	defer func() {
		for i := range channels {
			channels[i].Close()
		}
	}()

	clahe := gocv.NewCLAHEWithParams(3.0, image.Pt(8, 8))
	defer clahe.Close()

	enhanced := gocv.NewMat()
	defer enhanced.Close()
	clahe.Apply(channels[0], &enhanced)
	enhanced.CopyTo(&channels[0])

	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Merge(channels, &merged)

	out := gocv.NewMat()
	gocv.CvtColor(merged, &out, gocv.ColorLabToBGR)
	return out
}

// ExtractDocumentFace finds the largest face on a document image and returns
// an encoded crop with margin. Detection retries at 2x upscale and then with
// contrast enhancement before giving up with ErrNoFace.
func (fs *FaceMatchService) ExtractDocumentFace(documentBuf []byte) ([]byte, error) {
	img, err := gocv.IMDecode(documentBuf, gocv.IMReadColor)
	if err != nil || img.Empty() {
		return nil, ErrUndecodableImage
	}
	defer img.Close()

	faces, err := fs.detector.DetectFaces(img)
	if err != nil {
		return nil, err
	}
	source := img
	var upscaled gocv.Mat

	if len(faces) == 0 {
		upscaled = gocv.NewMat()
		defer upscaled.Close()
		gocv.Resize(img, &upscaled, image.Point{}, 2.0, 2.0, gocv.InterpolationLinear)

		faces, err = fs.detector.DetectFaces(upscaled)
		if err != nil {
			return nil, err
		}
		source = upscaled
	}

	if len(faces) == 0 {
		enhanced := enhanceContrast(source)
		defer enhanced.Close()

		faces, err = fs.detector.DetectFaces(enhanced)
		if err != nil {
			return nil, err
		}
		source = enhanced
	}

	if len(faces) == 0 {
		return nil, ErrNoFace
	}

	crop := source.Region(expandWithMargin(LargestFace(faces), source.Cols(), source.Rows()))
	defer crop.Close()

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, crop)
	if err != nil {
		return nil, err
	}
	defer buf.Close()
	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}

// DetectFaceCount reports how many faces the detector finds in an image.
// Selfie intake uses it to reject captures with no usable face.
func (fs *FaceMatchService) DetectFaceCount(imageBuf []byte) (int, error) {
	img, err := gocv.IMDecode(imageBuf, gocv.IMReadColor)
	if err != nil || img.Empty() {
		return 0, ErrUndecodableImage
	}
	defer img.Close()

	faces, err := fs.detector.DetectFaces(img)
	if err != nil {
		return 0, err
	}
	return len(faces), nil
}

// expandWithMargin grows the bounding box by the configured proportional
// margin, clipped to image bounds.
func expandWithMargin(box image.Rectangle, width, height int) image.Rectangle {
	marginX := int(float64(box.Dx()) * faceCropMargin)
	marginY := int(float64(box.Dy()) * faceCropMargin)

	x1 := box.Min.X - marginX
	y1 := box.Min.Y - marginY
	x2 := box.Max.X + marginX
	y2 := box.Max.Y + marginY

	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 > width {
		x2 = width
	}
	if y2 > height {
		y2 = height
	}
	return image.Rect(x1, y1, x2, y2)
}

// CompareFaces computes the similarity between a document face crop and a
// live image. The live embedding is the reference; the document crop runs
// through every variant and the best score wins. A missing face on either
// side comes back as similarity 0 with the NoFace flag set, not an error.
func (fs *FaceMatchService) CompareFaces(documentCropBuf []byte, liveBuf []byte) (types.FaceMatchResult, error) {
	liveImg, err := gocv.IMDecode(liveBuf, gocv.IMReadColor)
	if err != nil || liveImg.Empty() {
		return types.FaceMatchResult{}, ErrUndecodableImage
	}
	defer liveImg.Close()

	cropImg, err := gocv.IMDecode(documentCropBuf, gocv.IMReadColor)
	if err != nil || cropImg.Empty() {
		return types.FaceMatchResult{}, ErrUndecodableImage
	}
	defer cropImg.Close()

	liveEmbedding, err := fs.embedder.ExtractEmbedding(liveImg)
	if err != nil {
		if errors.Is(err, ErrNoFace) {
			return types.FaceMatchResult{NoFace: true}, nil
		}
		return types.FaceMatchResult{}, err
	}

	bestScore := 0.0
	embedded := false
	for _, variant := range cropVariants {
		processed := variant.Apply(cropImg)

		embedding, err := fs.embedder.ExtractEmbedding(processed)
		if errors.Is(err, ErrNoFace) && processed.Rows() < smallCropHeight {
			// Small crops routinely slip under the detector; retry upsampled.
			enlarged := gocv.NewMat()
			gocv.Resize(processed, &enlarged, image.Point{}, 2.0, 2.0, gocv.InterpolationLinear)
			embedding, err = fs.embedder.ExtractEmbedding(enlarged)
			enlarged.Close()
		}
		processed.Close()

		if err != nil {
			if errors.Is(err, ErrNoFace) {
				continue
			}
			return types.FaceMatchResult{}, err
		}
		embedded = true

		score := CosineSimilarity(embedding, liveEmbedding)
		logger.Info("face variant scored", logger.LoggerOptions{
			Key: "variant",
			Data: map[string]interface{}{
				"name":  variant.Name,
				"score": score,
			},
		})
		if score > bestScore {
			bestScore = score
		}
	}

	if !embedded {
		return types.FaceMatchResult{NoFace: true}, nil
	}

	similarity := utils.Clamp01(bestScore)
	return types.FaceMatchResult{
		Similarity: similarity,
		Match:      similarity >= fs.config.MatchThreshold,
	}, nil
}
