package repository

import (
	"sync"

	"kyc.igtapps.io/entities"
	"kyc.igtapps.io/infrastructure/database/connection/datastore"
	"kyc.igtapps.io/infrastructure/database/repository/mongo"
)

var faceVerificationOnce = sync.Once{}

var faceVerificationRepository mongo.MongoRepository[entities.FaceVerification]

func FaceVerificationRepo() *mongo.MongoRepository[entities.FaceVerification] {
	faceVerificationOnce.Do(func() {
		faceVerificationRepository = mongo.MongoRepository[entities.FaceVerification]{Model: datastore.FaceVerificationModel}
	})
	return &faceVerificationRepository
}
