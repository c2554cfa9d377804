package kyc_usecases

import (
	"context"
	"errors"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/constants"
	"kyc.igtapps.io/application/repository"
	"kyc.igtapps.io/entities"
	"kyc.igtapps.io/infrastructure/biometric"
	"kyc.igtapps.io/infrastructure/filestore"
)

// FaceMatchUseCase compares the stored document face crop against the stored
// selfie and records the outcome. Latest result wins; rerunning after a new
// capture overwrites the previous verdict.
func FaceMatchUseCase(ctx any, userID string) (*entities.FaceVerification, error) {
	document, err := repository.KYCDocumentRepo().FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	if document == nil {
		apperrors.ClientError(ctx, "upload your identity document first", nil)
		return nil, errors.New("")
	}
	if document.SelfiePath == nil {
		apperrors.ClientError(ctx, "upload a selfie first", nil)
		return nil, errors.New("")
	}

	verification := entities.FaceVerification{UserID: userID}
	if document.FaceCropPath == nil {
		// No face was found on the document at upload time. Record the miss
		// instead of failing so the decision stage can weigh it.
		verification.NoFace = true
	} else {
		cropBuf, err := filestore.Store.Read(*document.FaceCropPath)
		if err != nil {
			apperrors.FatalServerError(ctx, err)
			return nil, err
		}
		selfieBuf, err := filestore.Store.Read(*document.SelfiePath)
		if err != nil {
			apperrors.FatalServerError(ctx, err)
			return nil, err
		}

		result, err := biometric.FaceMatch.CompareFaces(cropBuf, selfieBuf)
		if err != nil {
			if errors.Is(err, biometric.ErrUndecodableImage) {
				apperrors.ClientError(ctx, "a stored capture could not be decoded, re-upload it", nil)
			} else {
				apperrors.FatalServerError(ctx, err)
			}
			return nil, err
		}
		verification.Similarity = result.Similarity
		verification.Match = result.Match
		verification.NoFace = result.NoFace
	}

	_, err = repository.FaceVerificationRepo().UpdateOrCreateByFilter(context.TODO(), map[string]any{
		"userID": userID,
	}, verification)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}

	status := constants.KYC_STATUS_FACE_FAILED
	if verification.Match {
		status = constants.KYC_STATUS_FACE_VERIFIED
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
	return &verification, nil
}
