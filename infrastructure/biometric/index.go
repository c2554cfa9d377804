package biometric

import (
	"kyc.igtapps.io/infrastructure/logger"
)

var (
	FaceMatch *FaceMatchService
	Liveness  *LivenessService
)

// InitialiseBiometricService loads the detection, embedding and landmark
// models once and wires the services that every request reuses. Model
// instances are owned here; components receive them by injection.
func InitialiseBiometricService() {
	detector, err := NewYuNetDetector(DefaultYuNetConfig())
	if err != nil {
		logger.Error("failed to initialise face detector", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}

	embedder, err := NewArcFaceEmbedder(DefaultArcFaceConfig(), detector)
	if err != nil {
		logger.Error("failed to initialise face embedder", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}

	mesh, err := NewFaceMeshDetector(DefaultFaceMeshConfig(), detector)
	if err != nil {
		logger.Error("failed to initialise face mesh detector", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}

	FaceMatch = NewFaceMatchService(detector, embedder, DefaultFaceMatchConfig())
	Liveness = NewLivenessService(mesh, DefaultLivenessConfig())
	logger.Info("biometric services initialised")
}
