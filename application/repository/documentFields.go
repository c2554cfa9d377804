package repository

import (
	"sync"

	"kyc.igtapps.io/entities"
	"kyc.igtapps.io/infrastructure/database/connection/datastore"
	"kyc.igtapps.io/infrastructure/database/repository/mongo"
)

var documentFieldsOnce = sync.Once{}

var documentFieldsRepository mongo.MongoRepository[entities.DocumentFields]

func DocumentFieldsRepo() *mongo.MongoRepository[entities.DocumentFields] {
	documentFieldsOnce.Do(func() {
		documentFieldsRepository = mongo.MongoRepository[entities.DocumentFields]{Model: datastore.DocumentFieldsModel}
	})
	return &documentFieldsRepository
}
