package kyc_usecases

import (
	"context"
	"errors"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/repository"
	"kyc.igtapps.io/application/services/decision"
	"kyc.igtapps.io/application/services/names"
)

// FinalDecisionUseCase fuses the latest stored signals into a verification
// verdict. Nothing is cached: calling it again after any signal changes
// recomputes the verdict from scratch.
func FinalDecisionUseCase(ctx any, userID string) (*decision.Decision, error) {
	user, err := repository.UserRepo().FindByID(userID)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	if user == nil {
		apperrors.NotFoundError(ctx, "user not found")
		return nil, errors.New("")
	}

	signals := decision.Signals{}

	fields, err := repository.DocumentFieldsRepo().FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	extractedName := ""
	if fields != nil {
		signals.OCRConfidence = fields.Confidence
		if fields.Name != nil {
			extractedName = *fields.Name
		}
	}

	nameResult := names.Match(user.FullName(), extractedName, names.DefaultConfig())
	signals.NameMatch = nameResult.Match
	signals.NameScore = nameResult.Score

	session, err := repository.LivenessSessionRepo().FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	if session != nil {
		signals.LivenessStatus = session.OverallStatus
	}

	verification, err := repository.FaceVerificationRepo().FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	if verification != nil && !verification.NoFace {
		signals.FaceSimilarity = verification.Similarity
	}

	verdict := decision.Decide(signals, decision.DefaultConfig())

	_, err = repository.UserRepo().UpdatePartialByFilter(context.TODO(), map[string]any{
		"_id": userID,
	}, map[string]any{
		"kycStatus": string(verdict.Status),
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	return &verdict, nil
}
