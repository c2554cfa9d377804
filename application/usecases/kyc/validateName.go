package kyc_usecases

import (
	"context"
	"errors"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/constants"
	"kyc.igtapps.io/application/repository"
	"kyc.igtapps.io/application/services/names"
)

// ValidateNameUseCase scores the user's registered name against the name
// read off the document.
func ValidateNameUseCase(ctx any, userID string) (*names.MatchResult, error) {
	user, err := repository.UserRepo().FindByID(userID)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	if user == nil {
		apperrors.NotFoundError(ctx, "user not found")
		return nil, errors.New("")
	}

	fields, err := repository.DocumentFieldsRepo().FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	if fields == nil {
		apperrors.ClientError(ctx, "upload your identity document first", nil)
		return nil, errors.New("")
	}

	extractedName := ""
	if fields.Name != nil {
		extractedName = *fields.Name
	}
	result := names.Match(user.FullName(), extractedName, names.DefaultConfig())

	status := constants.KYC_STATUS_NAME_MISMATCH
	if result.Match {
		status = constants.KYC_STATUS_NAME_VERIFIED
	}
	_, err = repository.UserRepo().UpdatePartialByFilter(context.TODO(), map[string]any{
		"_id": userID,
	}, map[string]any{
		"kycStatus": status,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	return &result, nil
}
