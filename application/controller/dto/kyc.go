package dto

// UploadedImage is a multipart file part already read into memory. Controllers
// fill it in so usecases never touch multipart plumbing.
type UploadedImage struct {
	Data        []byte
	ContentType string
}

type UploadDocumentDTO struct {
	Front UploadedImage `validate:"required"`
	Back  *UploadedImage
}

type UploadSelfieDTO struct {
	Selfie UploadedImage `validate:"required"`
}

type LivenessChallengeRequestDTO struct {
	Action string `json:"action" validate:"required,liveness_action"`
}

type LivenessStepDTO struct {
	Action string `validate:"required,liveness_action"`
	Frames [][]byte
}
