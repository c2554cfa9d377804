package kyc_usecases

import (
	"errors"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/repository"
)

// KYCStatusUseCase is the read-only summary of where a user sits in the
// pipeline: which captures exist and what each signal stage last recorded.
func KYCStatusUseCase(ctx any, userID string) (map[string]any, error) {
	user, err := repository.UserRepo().FindByID(userID)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	if user == nil {
		apperrors.NotFoundError(ctx, "user not found")
		return nil, errors.New("")
	}

	document, err := repository.KYCDocumentRepo().FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	fields, err := repository.DocumentFieldsRepo().FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	session, err := repository.LivenessSessionRepo().FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	verification, err := repository.FaceVerificationRepo().FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}

	payload := map[string]any{
		"kycStatus":        user.KYCStatus,
		"documentUploaded": document != nil,
		"selfieUploaded":   document != nil && document.SelfiePath != nil,
		"faceExtracted":    document != nil && document.FaceExtracted,
		"documentFields":   fields,
		"livenessSession":  session,
		"faceVerification": verification,
	}
	return payload, nil
}
