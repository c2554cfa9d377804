package cryptography

import (
	"github.com/matthewhartstonge/argon2"
	"kyc.igtapps.io/infrastructure/logger"
)

var CryptoHasher Hasher = argonHasher{}

type argonHasher struct{}

func (ah argonHasher) HashString(data string) ([]byte, error) {
	config := argon2.DefaultConfig()
	raw, err := config.HashRaw([]byte(data))
	if err != nil {
		logger.Error("argon - error while hashing data", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return raw.Encode(), nil
}

func (ah argonHasher) VerifyHashData(hash string, data string) bool {
	raw, err := argon2.Decode([]byte(hash))
	if err != nil {
		logger.Error("argon - could not decode hash", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false
	}
	ok, err := raw.Verify([]byte(data))
	if err != nil {
		logger.Error("argon - error while verifying data", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false
	}
	return ok
}
