package biometric

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"kyc.igtapps.io/infrastructure/logger"

	"gocv.io/x/gocv"
)

// FaceEmbedder produces a unit-norm embedding for the largest face in an
// image, or a no-face miss when none is detectable.
type FaceEmbedder interface {
	ExtractEmbedding(img gocv.Mat) ([]float32, error)
	Close() error
}

// ErrNoFace marks an extraction miss: valid image, no detectable face. It is
// not an input error; callers degrade it to a zero-similarity signal.
var ErrNoFace = fmt.Errorf("no face detected")

// ArcFaceEmbedder provides face embeddings using an ArcFace ONNX model
type ArcFaceEmbedder struct {
	net          gocv.Net
	detector     FaceDetector
	inputSize    image.Point
	modelsLoaded bool
	mutex        sync.Mutex
}

// ArcFaceConfig holds configuration for the ArcFace model
type ArcFaceConfig struct {
	ModelPath string
	InputSize image.Point
}

func DefaultArcFaceConfig() ArcFaceConfig {
	modelPath := os.Getenv("ARCFACE_MODEL_PATH")
	if modelPath == "" {
		modelPath = "./models/arcface.onnx"
	}
	return ArcFaceConfig{
		ModelPath: modelPath,
		InputSize: image.Pt(112, 112), // Standard ArcFace input size
	}
}

// NewArcFaceEmbedder loads the ArcFace ONNX model once and pairs it with a
// face detector for localisation.
func NewArcFaceEmbedder(config ArcFaceConfig, detector FaceDetector) (*ArcFaceEmbedder, error) {
	if _, err := os.Stat(config.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", config.ModelPath)
	}

	net := gocv.ReadNet(config.ModelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load ArcFace model from %s", config.ModelPath)
	}

	logger.Info("ArcFace embedder initialised", logger.LoggerOptions{
		Key: "model_info",
		Data: map[string]interface{}{
			"model_path": config.ModelPath,
			"input_size": fmt.Sprintf("%dx%d", config.InputSize.X, config.InputSize.Y),
		},
	})

	return &ArcFaceEmbedder{
		net:          net,
		detector:     detector,
		inputSize:    config.InputSize,
		modelsLoaded: true,
	}, nil
}

// ExtractEmbedding detects the largest face in the image and returns its
// L2-normalised 512-dimensional embedding. Returns ErrNoFace when detection
// comes up empty.
func (ae *ArcFaceEmbedder) ExtractEmbedding(img gocv.Mat) ([]float32, error) {
	if !ae.modelsLoaded {
		return nil, fmt.Errorf("ArcFace model not loaded")
	}
	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	faces, err := ae.detector.DetectFaces(img)
	if err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, ErrNoFace
	}

	face := img.Region(LargestFace(faces))
	defer face.Close()

	return ae.embedFace(face)
}

func (ae *ArcFaceEmbedder) embedFace(face gocv.Mat) ([]float32, error) {
	ae.mutex.Lock()
	defer ae.mutex.Unlock()

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(face, &resized, ae.inputSize, 0, 0, gocv.InterpolationLinear)

	// ArcFace expects [1, 3, 112, 112] normalised to [-1, 1]
	blob := gocv.BlobFromImage(
		resized,
		1.0/127.5,
		ae.inputSize,
		gocv.NewScalar(127.5, 127.5, 127.5, 0),
		true,
		false,
	)
	defer blob.Close()

	ae.net.SetInput(blob, "")
	output := ae.net.Forward("")
	defer output.Close()

	embeddingSize := output.Cols()
	embedding := make([]float32, embeddingSize)
	for i := 0; i < embeddingSize; i++ {
		embedding[i] = output.GetFloatAt(0, i)
	}

	return normalizeEmbedding(embedding), nil
}

func (ae *ArcFaceEmbedder) Close() error {
	ae.mutex.Lock()
	defer ae.mutex.Unlock()
	if ae.modelsLoaded {
		ae.net.Close()
		ae.modelsLoaded = false
	}
	return nil
}

// LargestFace returns the detection with the biggest bounding-box area.
func LargestFace(faces []image.Rectangle) image.Rectangle {
	largest := faces[0]
	for _, face := range faces[1:] {
		if face.Dx()*face.Dy() > largest.Dx()*largest.Dy() {
			largest = face
		}
	}
	return largest
}

// CosineSimilarity over two unit-norm embeddings reduces to their dot
// product; this handles the general case and clamps into [-1, 1].
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	dotProduct := 0.0
	normA := 0.0
	normB := 0.0
	for i := 0; i < len(a); i++ {
		dotProduct += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}

	similarity := dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
	if similarity > 1.0 {
		similarity = 1.0
	}
	if similarity < -1.0 {
		similarity = -1.0
	}
	return similarity
}

// normalizeEmbedding performs L2 normalization on an embedding
func normalizeEmbedding(embedding []float32) []float32 {
	norm := 0.0
	for _, val := range embedding {
		norm += float64(val * val)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return embedding
	}

	normalized := make([]float32, len(embedding))
	for i, val := range embedding {
		normalized[i] = float32(float64(val) / norm)
	}
	return normalized
}
