package entities

import (
	"time"

	"kyc.igtapps.io/application/utils"
)

// DocumentFields is the structured output of document text extraction.
// IdentifierMasked is the default external representation; IdentifierFull is
// only released through the elevated access path.
type DocumentFields struct {
	UserID           string  `bson:"userID" json:"userID"`
	IdentifierMasked *string `bson:"identifierMasked" json:"identifierMasked"`
	IdentifierFull   *string `bson:"identifierFull" json:"-"`
	Name             *string `bson:"name" json:"name"`
	DateOfBirth      *string `bson:"dateOfBirth" json:"dateOfBirth"`
	Gender           *string `bson:"gender" json:"gender"`
	Confidence       float64 `bson:"confidence" json:"confidence"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model DocumentFields) ParseModel() any {
	now := time.Now()
	model.Confidence = utils.Clamp01(model.Confidence)
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
