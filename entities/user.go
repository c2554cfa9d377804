package entities

import (
	"time"

	"kyc.igtapps.io/application/utils"
)

type User struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Email     string `bson:"email" json:"email"`
	Mobile    string `bson:"mobile" json:"mobile"`
	Password  string `bson:"password" json:"-"`
	KYCStatus string `bson:"kycStatus" json:"kycStatus"`

	ID        string     `bson:"_id" json:"id"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt *time.Time `bson:"deletedAt" json:"deletedAt"`
}

// FullName is the claimed name matched against the extracted document name.
func (model User) FullName() string {
	return model.FirstName + " " + model.LastName
}

func (model User) ParseModel() any {
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
