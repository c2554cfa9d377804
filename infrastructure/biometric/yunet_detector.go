package biometric

import (
	"fmt"
	"image"
	"os"
	"sync"

	"kyc.igtapps.io/infrastructure/logger"

	"gocv.io/x/gocv"
)

// FaceDetector locates faces in an image. The production implementation wraps
// a YuNet model whose instance is not proven safe for concurrent inference,
// so calls are serialised.
type FaceDetector interface {
	DetectFaces(img gocv.Mat) ([]image.Rectangle, error)
	Close() error
}

// YuNetDetector provides face detection using YuNet
type YuNetDetector struct {
	detector     gocv.FaceDetectorYN
	modelsLoaded bool
	mutex        sync.Mutex
}

// YuNetConfig holds configuration for the YuNet detector
type YuNetConfig struct {
	ModelPath           string
	InputSize           image.Point
	ConfidenceThreshold float32
	NMSThreshold        float32
	TopK                int
}

func DefaultYuNetConfig() YuNetConfig {
	modelPath := os.Getenv("YUNET_MODEL_PATH")
	if modelPath == "" {
		modelPath = "./models/face_detection_yunet.onnx"
	}
	return YuNetConfig{
		ModelPath:           modelPath,
		InputSize:           image.Pt(320, 320),
		ConfidenceThreshold: 0.3,
		NMSThreshold:        0.3,
		TopK:                5000,
	}
}

// NewYuNetDetector loads the YuNet model once; the instance is reused
// read-only by every subsequent call.
func NewYuNetDetector(config YuNetConfig) (*YuNetDetector, error) {
	if _, err := os.Stat(config.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", config.ModelPath)
	}

	detector := gocv.NewFaceDetectorYN(config.ModelPath, "", config.InputSize)
	detector.SetScoreThreshold(config.ConfidenceThreshold)
	detector.SetNMSThreshold(config.NMSThreshold)
	detector.SetTopK(config.TopK)

	logger.Info("YuNet detector initialised", logger.LoggerOptions{
		Key: "model_info",
		Data: map[string]interface{}{
			"model_path":           config.ModelPath,
			"confidence_threshold": config.ConfidenceThreshold,
			"nms_threshold":        config.NMSThreshold,
		},
	})

	return &YuNetDetector{detector: detector, modelsLoaded: true}, nil
}

// DetectFaces runs YuNet over the image and returns face bounding boxes
// sorted as delivered by the model.
func (yd *YuNetDetector) DetectFaces(img gocv.Mat) ([]image.Rectangle, error) {
	if !yd.modelsLoaded {
		return nil, fmt.Errorf("YuNet model not loaded")
	}

	yd.mutex.Lock()
	defer yd.mutex.Unlock()

	yd.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	facesMat := gocv.NewMat()
	defer facesMat.Close()
	yd.detector.Detect(img, &facesMat)

	return parseDetections(facesMat, img), nil
}

// parseDetections parses the YuNet output matrix.
// Each row holds 15 values: [x, y, w, h, 5 landmark x/y pairs, score].
func parseDetections(facesMat gocv.Mat, img gocv.Mat) []image.Rectangle {
	var faces []image.Rectangle
	if facesMat.Empty() || facesMat.Rows() == 0 {
		return faces
	}

	for i := 0; i < facesMat.Rows(); i++ {
		x := int(facesMat.GetFloatAt(i, 0))
		y := int(facesMat.GetFloatAt(i, 1))
		w := int(facesMat.GetFloatAt(i, 2))
		h := int(facesMat.GetFloatAt(i, 3))

		if x >= 0 && y >= 0 && x+w <= img.Cols() && y+h <= img.Rows() && w > 0 && h > 0 {
			faces = append(faces, image.Rect(x, y, x+w, y+h))
		}
	}
	return faces
}

func (yd *YuNetDetector) Close() error {
	yd.mutex.Lock()
	defer yd.mutex.Unlock()
	if yd.modelsLoaded {
		yd.detector.Close()
		yd.modelsLoaded = false
	}
	return nil
}
