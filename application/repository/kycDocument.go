package repository

import (
	"sync"

	"kyc.igtapps.io/entities"
	"kyc.igtapps.io/infrastructure/database/connection/datastore"
	"kyc.igtapps.io/infrastructure/database/repository/mongo"
)

var kycDocumentOnce = sync.Once{}

var kycDocumentRepository mongo.MongoRepository[entities.KYCDocument]

func KYCDocumentRepo() *mongo.MongoRepository[entities.KYCDocument] {
	kycDocumentOnce.Do(func() {
		kycDocumentRepository = mongo.MongoRepository[entities.KYCDocument]{Model: datastore.KYCDocumentModel}
	})
	return &kycDocumentRepository
}
