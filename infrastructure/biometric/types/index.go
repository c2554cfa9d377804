package types

// FaceMatchResult is the outcome of comparing a document face against a live
// face. NoFace is set when either side has no detectable face, which callers
// must treat differently from an honest low similarity.
type FaceMatchResult struct {
	Similarity float64 `json:"similarity"`
	Match      bool    `json:"match"`
	NoFace     bool    `json:"no_face"`
}

// ActionResult is the outcome of verifying one liveness challenge step
// against a frame batch.
type ActionResult struct {
	Action  string `json:"action"`
	Success bool   `json:"success"`
}
