package document_usecases

import (
	"context"
	"errors"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/constants"
	"kyc.igtapps.io/application/controller/dto"
	"kyc.igtapps.io/application/repository"
	"kyc.igtapps.io/entities"
	"kyc.igtapps.io/infrastructure/biometric"
	"kyc.igtapps.io/infrastructure/filestore"
)

func UploadSelfieUseCase(ctx any, userID string, payload *dto.UploadSelfieDTO) (*entities.KYCDocument, error) {
	documentRepo := repository.KYCDocumentRepo()
	document, err := documentRepo.FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	if document == nil {
		apperrors.ClientError(ctx, "upload your identity document before a selfie", nil)
		return nil, errors.New("")
	}

	faceCount, err := biometric.FaceMatch.DetectFaceCount(payload.Selfie.Data)
	if err != nil {
		if errors.Is(err, biometric.ErrUndecodableImage) {
			apperrors.ClientError(ctx, "the selfie image could not be decoded", nil)
		} else {
			apperrors.FatalServerError(ctx, err)
		}
		return nil, err
	}
	if faceCount == 0 {
		apperrors.ClientError(ctx, "no face was found in the selfie, retake it facing the camera", nil)
		return nil, errors.New("")
	}

	selfiePath, err := filestore.Store.Save("selfies", payload.Selfie.Data)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}

	previousSelfie := document.SelfiePath
	_, err = documentRepo.UpdatePartialByFilter(context.TODO(), map[string]any{
		"userID": userID,
	}, map[string]any{
		"selfiePath": selfiePath,
	})
	if err != nil {
		filestore.Store.Delete(selfiePath)
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	if previousSelfie != nil {
		filestore.Store.Delete(*previousSelfie)
	}

	_, err = repository.UserRepo().UpdatePartialByFilter(context.TODO(), map[string]any{
		"_id": userID,
	}, map[string]any{
		"kycStatus": constants.KYC_STATUS_SELFIE_UPLOADED,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}

	document.SelfiePath = &selfiePath
	return document, nil
}
