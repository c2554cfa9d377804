package biometric

import (
	"fmt"
	"image"
	"os"
	"sync"

	"kyc.igtapps.io/infrastructure/logger"

	"gocv.io/x/gocv"
)

// MeshDetector produces a dense facial landmark mesh for the most prominent
// face in a frame. A frame with no detectable face yields ErrNoFace, which
// liveness verification skips rather than fails.
type MeshDetector interface {
	DetectMesh(img gocv.Mat) ([]image.Point, error)
	Close() error
}

// FaceMeshDetector runs a FaceMesh ONNX model over the detected face region.
type FaceMeshDetector struct {
	net          gocv.Net
	detector     FaceDetector
	inputSize    image.Point
	points       int
	modelsLoaded bool
	mutex        sync.Mutex
}

// FaceMeshConfig holds configuration for the FaceMesh model
type FaceMeshConfig struct {
	ModelPath string
	InputSize image.Point
	Points    int
}

func DefaultFaceMeshConfig() FaceMeshConfig {
	modelPath := os.Getenv("FACEMESH_MODEL_PATH")
	if modelPath == "" {
		modelPath = "./models/face_mesh.onnx"
	}
	return FaceMeshConfig{
		ModelPath: modelPath,
		InputSize: image.Pt(192, 192),
		Points:    468, // dense mesh landmark count
	}
}

func NewFaceMeshDetector(config FaceMeshConfig, detector FaceDetector) (*FaceMeshDetector, error) {
	if _, err := os.Stat(config.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", config.ModelPath)
	}

	net := gocv.ReadNet(config.ModelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load FaceMesh model from %s", config.ModelPath)
	}

	logger.Info("FaceMesh detector initialised", logger.LoggerOptions{
		Key: "model_info",
		Data: map[string]interface{}{
			"model_path": config.ModelPath,
			"points":     config.Points,
		},
	})

	return &FaceMeshDetector{
		net:          net,
		detector:     detector,
		inputSize:    config.InputSize,
		points:       config.Points,
		modelsLoaded: true,
	}, nil
}

// DetectMesh locates the largest face, runs the mesh model over its region
// and maps the landmarks back into full-frame pixel coordinates.
func (fm *FaceMeshDetector) DetectMesh(img gocv.Mat) ([]image.Point, error) {
	if !fm.modelsLoaded {
		return nil, fmt.Errorf("FaceMesh model not loaded")
	}
	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	faces, err := fm.detector.DetectFaces(img)
	if err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, ErrNoFace
	}
	roi := LargestFace(faces)

	face := img.Region(roi)
	defer face.Close()

	fm.mutex.Lock()
	defer fm.mutex.Unlock()

	blob := gocv.BlobFromImage(
		face,
		1.0/255.0,
		fm.inputSize,
		gocv.NewScalar(0, 0, 0, 0),
		true,
		false,
	)
	defer blob.Close()

	fm.net.SetInput(blob, "")
	output := fm.net.Forward("")
	defer output.Close()

	// Output is a flat [x, y, z] triple per landmark in model input space.
	flat := output.Clone()
	defer flat.Close()
	total := flat.Total()
	if total != fm.points*3 {
		return nil, fmt.Errorf("unexpected FaceMesh output size %d", total)
	}

	scaleX := float64(roi.Dx()) / float64(fm.inputSize.X)
	scaleY := float64(roi.Dy()) / float64(fm.inputSize.Y)

	reshaped := flat.Reshape(1, fm.points)
	defer reshaped.Close()

	mesh := make([]image.Point, fm.points)
	for i := 0; i < fm.points; i++ {
		x := float64(reshaped.GetFloatAt(i, 0))
		y := float64(reshaped.GetFloatAt(i, 1))
		mesh[i] = image.Pt(
			roi.Min.X+int(x*scaleX),
			roi.Min.Y+int(y*scaleY),
		)
	}
	return mesh, nil
}

func (fm *FaceMeshDetector) Close() error {
	fm.mutex.Lock()
	defer fm.mutex.Unlock()
	if fm.modelsLoaded {
		fm.net.Close()
		fm.modelsLoaded = false
	}
	return nil
}
