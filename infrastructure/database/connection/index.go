package connection

import (
	"kyc.igtapps.io/infrastructure/database/connection/cache"
	"kyc.igtapps.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.ConnectToDatabase()
	cache.ConnectToCache()
}
