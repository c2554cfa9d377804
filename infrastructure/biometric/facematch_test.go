package biometric

import (
	"errors"
	"image"
	"testing"

	"gocv.io/x/gocv"
)

// fakeDetector replays one face list per call.
type fakeDetector struct {
	results [][]image.Rectangle
	calls   int
}

func (fd *fakeDetector) DetectFaces(img gocv.Mat) ([]image.Rectangle, error) {
	if fd.calls >= len(fd.results) {
		return nil, nil
	}
	result := fd.results[fd.calls]
	fd.calls++
	return result, nil
}

func (fd *fakeDetector) Close() error { return nil }

// fakeEmbedder replays one embedding or error per call.
type fakeEmbedder struct {
	results []embeddingResult
	calls   int
}

type embeddingResult struct {
	embedding []float32
	err       error
}

func (fe *fakeEmbedder) ExtractEmbedding(img gocv.Mat) ([]float32, error) {
	if fe.calls >= len(fe.results) {
		return nil, ErrNoFace
	}
	result := fe.results[fe.calls]
	fe.calls++
	return result.embedding, result.err
}

func (fe *fakeEmbedder) Close() error { return nil }

func matchServiceForTest(detector FaceDetector, embedder FaceEmbedder) *FaceMatchService {
	return NewFaceMatchService(detector, embedder, FaceMatchConfig{MatchThreshold: 0.50})
}

func TestCompareFacesTakesBestVariantScore(t *testing.T) {
	frame := encodeTestFrame(t)
	// Cosine against the live embedding [1,0]: [1,4] scores ~0.24,
	// [3,4] scores 0.6, [2,4] scores ~0.45.
	embedder := &fakeEmbedder{results: []embeddingResult{
		{embedding: []float32{1, 0}}, // live
		{embedding: []float32{1, 4}}, // original
		{embedding: []float32{3, 4}}, // denoised
		{embedding: []float32{2, 4}}, // denoised_enhanced
	}}
	service := matchServiceForTest(&fakeDetector{}, embedder)

	got, err := service.CompareFaces(frame, frame)
	if err != nil {
		t.Fatalf("CompareFaces() error = %v", err)
	}
	if got.NoFace {
		t.Fatal("CompareFaces() NoFace = true, want false")
	}
	if diff := got.Similarity - 0.6; diff > 0.001 || diff < -0.001 {
		t.Errorf("CompareFaces() similarity = %v, want the maximum variant score 0.6", got.Similarity)
	}
	if !got.Match {
		t.Error("CompareFaces() match = false, want true at similarity 0.6")
	}
}

func TestCompareFacesThresholdBoundary(t *testing.T) {
	frame := encodeTestFrame(t)
	// [3,4] against [1,0] yields exactly 0.6; the threshold is inclusive.
	embedder := &fakeEmbedder{results: []embeddingResult{
		{embedding: []float32{1, 0}},
		{embedding: []float32{3, 4}},
		{embedding: []float32{3, 4}},
		{embedding: []float32{3, 4}},
	}}
	service := NewFaceMatchService(&fakeDetector{}, embedder, FaceMatchConfig{MatchThreshold: 0.6})

	got, err := service.CompareFaces(frame, frame)
	if err != nil {
		t.Fatalf("CompareFaces() error = %v", err)
	}
	if !got.Match {
		t.Errorf("CompareFaces() match = false at similarity %v, want true on the threshold", got.Similarity)
	}
}

func TestCompareFacesNoFaceOnLiveImage(t *testing.T) {
	frame := encodeTestFrame(t)
	embedder := &fakeEmbedder{results: []embeddingResult{
		{err: ErrNoFace},
	}}
	service := matchServiceForTest(&fakeDetector{}, embedder)

	got, err := service.CompareFaces(frame, frame)
	if err != nil {
		t.Fatalf("CompareFaces() error = %v", err)
	}
	if !got.NoFace {
		t.Error("CompareFaces() NoFace = false, want true when the live image has no face")
	}
	if got.Similarity != 0 || got.Match {
		t.Errorf("CompareFaces() = %+v, want zero similarity and no match", got)
	}
}

func TestCompareFacesNoFaceOnEveryVariant(t *testing.T) {
	frame := encodeTestFrame(t)
	// Live succeeds, then every variant misses, including the upsample
	// retries triggered by the small test crop.
	embedder := &fakeEmbedder{results: []embeddingResult{
		{embedding: []float32{1, 0}},
	}}
	service := matchServiceForTest(&fakeDetector{}, embedder)

	got, err := service.CompareFaces(frame, frame)
	if err != nil {
		t.Fatalf("CompareFaces() error = %v", err)
	}
	if !got.NoFace {
		t.Error("CompareFaces() NoFace = false, want true when no variant embeds")
	}
}

func TestCompareFacesUndecodableInput(t *testing.T) {
	service := matchServiceForTest(&fakeDetector{}, &fakeEmbedder{})
	_, err := service.CompareFaces([]byte("junk"), []byte("junk"))
	if !errors.Is(err, ErrUndecodableImage) {
		t.Errorf("CompareFaces() error = %v, want ErrUndecodableImage", err)
	}
}

func TestExtractDocumentFaceRetriesBeforeGivingUp(t *testing.T) {
	frame := encodeTestFrame(t)
	// Native and 2x detection miss; contrast enhancement finds the face.
	detector := &fakeDetector{results: [][]image.Rectangle{
		{},
		{},
		{image.Rect(10, 10, 40, 40)},
	}}
	service := matchServiceForTest(detector, &fakeEmbedder{})

	crop, err := service.ExtractDocumentFace(frame)
	if err != nil {
		t.Fatalf("ExtractDocumentFace() error = %v", err)
	}
	if len(crop) == 0 {
		t.Error("ExtractDocumentFace() returned an empty crop")
	}
	if detector.calls != 3 {
		t.Errorf("ExtractDocumentFace() made %d detection attempts, want 3", detector.calls)
	}
}

func TestExtractDocumentFaceNoFace(t *testing.T) {
	frame := encodeTestFrame(t)
	detector := &fakeDetector{results: [][]image.Rectangle{{}, {}, {}}}
	service := matchServiceForTest(detector, &fakeEmbedder{})

	_, err := service.ExtractDocumentFace(frame)
	if !errors.Is(err, ErrNoFace) {
		t.Errorf("ExtractDocumentFace() error = %v, want ErrNoFace", err)
	}
}

func TestExpandWithMargin(t *testing.T) {
	tests := []struct {
		name   string
		box    image.Rectangle
		width  int
		height int
		want   image.Rectangle
	}{
		{
			name:   "margin applied on all sides",
			box:    image.Rect(50, 50, 100, 100),
			width:  500,
			height: 500,
			want:   image.Rect(30, 30, 120, 120),
		},
		{
			name:   "clipped at image bounds",
			box:    image.Rect(0, 0, 100, 100),
			width:  110,
			height: 110,
			want:   image.Rect(0, 0, 110, 110),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandWithMargin(tt.box, tt.width, tt.height)
			if got != tt.want {
				t.Errorf("expandWithMargin() = %v, want %v", got, tt.want)
			}
		})
	}
}
