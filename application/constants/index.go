package constants

// User KYC progression statuses.
const (
	KYC_STATUS_BASIC_SUBMITTED = "BASIC_SUBMITTED"
	KYC_STATUS_DOC_UPLOADED    = "DOC_UPLOADED"
	KYC_STATUS_SELFIE_UPLOADED = "SELFIE_UPLOADED"
	KYC_STATUS_FACE_VERIFIED   = "FACE_VERIFIED"
	KYC_STATUS_FACE_FAILED     = "FACE_FAILED"
	KYC_STATUS_NAME_VERIFIED   = "NAME_VERIFIED"
	KYC_STATUS_NAME_MISMATCH   = "NAME_MISMATCH"
	KYC_STATUS_VERIFIED        = "VERIFIED"
	KYC_STATUS_MANUAL_REVIEW   = "MANUAL_REVIEW"
	KYC_STATUS_FAILED          = "FAILED"
)

// Liveness challenge actions.
const (
	LIVENESS_ACTION_BLINK = "blink"
	LIVENESS_ACTION_LEFT  = "left"
	LIVENESS_ACTION_RIGHT = "right"
)

const MAX_UPLOAD_BYTES = 5 * 1024 * 1024
