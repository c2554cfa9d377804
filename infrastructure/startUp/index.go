package startup

import (
	"kyc.igtapps.io/infrastructure/biometric"
	"kyc.igtapps.io/infrastructure/database"
	"kyc.igtapps.io/infrastructure/database/connection/datastore"
	"kyc.igtapps.io/infrastructure/filestore"
	"kyc.igtapps.io/infrastructure/logger"
	"kyc.igtapps.io/infrastructure/ocr"
)

// Used to start services such as loggers, databases, model runtimes, etc.
func StartServices() {
	logger.InitializeLogger()
	database.SetUpDatabase()
	filestore.InitialiseFilestore()
	ocr.InitialiseDocumentTextService()
	biometric.InitialiseBiometricService()
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
}
