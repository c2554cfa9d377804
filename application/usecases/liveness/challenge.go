package liveness_usecases

import (
	"fmt"
	"math/rand"
	"time"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/constants"
	"kyc.igtapps.io/infrastructure/database/repository/cache"
)

const challengeTTL = time.Minute * 2

var challengeActions = []string{
	constants.LIVENESS_ACTION_BLINK,
	constants.LIVENESS_ACTION_LEFT,
	constants.LIVENESS_ACTION_RIGHT,
}

func challengeKey(userID string) string {
	return fmt.Sprintf("%s-liveness-challenge", userID)
}

// IssueChallengeUseCase picks the next action the client must perform. The
// issued action is what the step endpoint verifies against, so a client
// cannot pick its own easiest action.
func IssueChallengeUseCase(ctx any, userID string) (*string, error) {
	action := challengeActions[rand.Intn(len(challengeActions))]
	ok := cache.Cache.CreateEntry(challengeKey(userID), action, challengeTTL)
	if !ok {
		err := fmt.Errorf("could not persist liveness challenge for user %s", userID)
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	return &action, nil
}
