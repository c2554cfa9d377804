package repository

import (
	"sync"

	"kyc.igtapps.io/entities"
	"kyc.igtapps.io/infrastructure/database/connection/datastore"
	"kyc.igtapps.io/infrastructure/database/repository/mongo"
)

var livenessSessionOnce = sync.Once{}

var livenessSessionRepository mongo.MongoRepository[entities.LivenessSession]

func LivenessSessionRepo() *mongo.MongoRepository[entities.LivenessSession] {
	livenessSessionOnce.Do(func() {
		livenessSessionRepository = mongo.MongoRepository[entities.LivenessSession]{Model: datastore.LivenessSessionModel}
	})
	return &livenessSessionRepository
}
