package liveness_usecases

import (
	"context"
	"errors"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/controller/dto"
	"kyc.igtapps.io/application/repository"
	"kyc.igtapps.io/entities"
	"kyc.igtapps.io/infrastructure/biometric"
	"kyc.igtapps.io/infrastructure/biometric/types"
	"kyc.igtapps.io/infrastructure/database/repository/cache"
)

// LivenessStepUseCase verifies one challenge action against the submitted
// frame batch and folds the result into the user's session. Session flags
// only ever progress; a failed retry never clears an earlier success.
func LivenessStepUseCase(ctx any, userID string, payload *dto.LivenessStepDTO) (*types.ActionResult, *entities.LivenessSession, error) {
	issued := cache.Cache.FindOne(challengeKey(userID))
	if issued == nil {
		apperrors.ClientError(ctx, "request a liveness challenge first", nil)
		return nil, nil, errors.New("")
	}
	if *issued != payload.Action {
		apperrors.ClientError(ctx, "submitted action does not match the issued challenge", nil)
		return nil, nil, errors.New("")
	}

	result, err := biometric.Liveness.VerifyAction(payload.Frames, payload.Action)
	if err != nil {
		if errors.Is(err, biometric.ErrEmptyFrameBatch) {
			apperrors.ClientError(ctx, "submit at least one frame", nil)
		} else {
			apperrors.FatalServerError(ctx, err)
		}
		return nil, nil, err
	}
	cache.Cache.DeleteOne(challengeKey(userID))

	sessionRepo := repository.LivenessSessionRepo()
	existing, err := sessionRepo.FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, nil, err
	}
	session := entities.LivenessSession{UserID: userID}
	if existing != nil {
		session = *existing
	}
	session = session.Apply(result.Action, result.Success)

	_, err = sessionRepo.UpdateOrCreateByFilter(context.TODO(), map[string]any{
		"userID": userID,
	}, session)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, nil, err
	}
	return &result, &session, nil
}
