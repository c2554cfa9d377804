package entities

import (
	"time"

	"kyc.igtapps.io/application/utils"
)

// LivenessSession accumulates challenge progress across step calls. The
// detection flags only ever flip false to true; OverallStatus is recomputed
// after every step.
type LivenessSession struct {
	UserID            string `bson:"userID" json:"userID"`
	BlinkDetected     bool   `bson:"blinkDetected" json:"blinkDetected"`
	HeadTurnDetected  bool   `bson:"headTurnDetected" json:"headTurnDetected"`
	OverallStatus     bool   `bson:"overallStatus" json:"overallStatus"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Apply folds one step result into the session, preserving monotonic
// progress.
func (model LivenessSession) Apply(action string, success bool) LivenessSession {
	switch action {
	case "blink":
		if success {
			model.BlinkDetected = true
		}
	case "left", "right":
		if success {
			model.HeadTurnDetected = true
		}
	}
	model.OverallStatus = model.BlinkDetected && model.HeadTurnDetected
	return model
}

func (model LivenessSession) ParseModel() any {
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
