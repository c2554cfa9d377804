package entities

import (
	"time"

	"kyc.igtapps.io/application/utils"
)

// KYCDocument tracks the stored capture artifacts for a user. A new upload
// replaces the previous record, there is no history.
type KYCDocument struct {
	UserID        string  `bson:"userID" json:"userID"`
	FrontPath     string  `bson:"frontPath" json:"-"`
	BackPath      string  `bson:"backPath" json:"-"`
	FaceCropPath  *string `bson:"faceCropPath" json:"-"`
	SelfiePath    *string `bson:"selfiePath" json:"-"`
	FaceExtracted bool    `bson:"faceExtracted" json:"faceExtracted"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model KYCDocument) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
