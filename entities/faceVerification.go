package entities

import (
	"time"

	"kyc.igtapps.io/application/utils"
)

// FaceVerification is the latest face-match outcome for a user. NoFace marks
// a detection miss, which downstream policy must be able to tell apart from a
// genuine low-similarity result.
type FaceVerification struct {
	UserID     string  `bson:"userID" json:"userID"`
	Similarity float64 `bson:"similarity" json:"similarity"`
	Match      bool    `bson:"match" json:"match"`
	NoFace     bool    `bson:"noFace" json:"noFace"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model FaceVerification) ParseModel() any {
	now := time.Now()
	model.Similarity = utils.Clamp01(model.Similarity)
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
