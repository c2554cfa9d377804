package document_usecases

import (
	"context"
	"errors"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/constants"
	"kyc.igtapps.io/application/controller/dto"
	"kyc.igtapps.io/application/repository"
	"kyc.igtapps.io/application/utils"
	"kyc.igtapps.io/entities"
	"kyc.igtapps.io/infrastructure/biometric"
	"kyc.igtapps.io/infrastructure/filestore"
	"kyc.igtapps.io/infrastructure/logger"
	"kyc.igtapps.io/infrastructure/ocr"
)

// UploadDocumentUseCase stores a fresh document capture and runs the two
// extraction stages that depend only on it: the document face crop and the
// text fields. A re-upload replaces the previous capture and its artifacts.
func UploadDocumentUseCase(ctx any, userID string, payload *dto.UploadDocumentDTO) (*entities.DocumentFields, error) {
	scope := filestore.Store.NewScope()

	frontPath, err := scope.Save("documents", payload.Front.Data)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	var backPath string
	if payload.Back != nil {
		backPath, err = scope.Save("documents", payload.Back.Data)
		if err != nil {
			scope.Cleanup()
			apperrors.FatalServerError(ctx, err)
			return nil, err
		}
	}

	faceCrop, err := biometric.FaceMatch.ExtractDocumentFace(payload.Front.Data)
	if err != nil && errors.Is(err, biometric.ErrUndecodableImage) {
		scope.Cleanup()
		apperrors.ClientError(ctx, "the document image could not be decoded", nil)
		return nil, err
	}
	var faceCropPath *string
	faceExtracted := false
	if err != nil {
		logger.Warning("no face found on uploaded document", logger.LoggerOptions{
			Key:  "userID",
			Data: userID,
		})
	} else {
		path, saveErr := scope.Save("faces", faceCrop)
		if saveErr != nil {
			scope.Cleanup()
			apperrors.FatalServerError(ctx, saveErr)
			return nil, saveErr
		}
		faceCropPath = &path
		faceExtracted = true
	}

	extracted, err := ocr.Service.ExtractFields(payload.Front.Data)
	if err != nil {
		scope.Cleanup()
		if errors.Is(err, ocr.ErrUndecodableImage) {
			apperrors.ClientError(ctx, "the document image could not be decoded", nil)
		} else {
			apperrors.FatalServerError(ctx, err)
		}
		return nil, err
	}

	documentRepo := repository.KYCDocumentRepo()
	previous, err := documentRepo.FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		scope.Cleanup()
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}

	document := entities.KYCDocument{
		UserID:        userID,
		FrontPath:     frontPath,
		BackPath:      backPath,
		FaceCropPath:  faceCropPath,
		FaceExtracted: faceExtracted,
	}
	if previous != nil {
		document.SelfiePath = previous.SelfiePath
	}
	_, err = documentRepo.UpdateOrCreateByFilter(context.TODO(), map[string]any{
		"userID": userID,
	}, document)
	if err != nil {
		scope.Cleanup()
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}

	// The new record is committed. Old capture artifacts are now orphaned.
	if previous != nil {
		filestore.Store.Delete(previous.FrontPath)
		filestore.Store.Delete(previous.BackPath)
		if previous.FaceCropPath != nil {
			filestore.Store.Delete(*previous.FaceCropPath)
		}
	}

	fields := entities.DocumentFields{
		UserID:      userID,
		Name:        extracted.Name,
		DateOfBirth: extracted.DateOfBirth,
		Gender:      extracted.Gender,
		Confidence:  extracted.Confidence,
	}
	if extracted.IdentifierFull != nil {
		fields.IdentifierFull = extracted.IdentifierFull
		fields.IdentifierMasked = utils.GetStringPointer(utils.MaskIdentifier(*extracted.IdentifierFull))
	}
	fieldsRepo := repository.DocumentFieldsRepo()
	_, err = fieldsRepo.UpdateOrCreateByFilter(context.TODO(), map[string]any{
		"userID": userID,
	}, fields)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}

	_, err = repository.UserRepo().UpdatePartialByFilter(context.TODO(), map[string]any{
		"_id": userID,
	}, map[string]any{
		"kycStatus": constants.KYC_STATUS_DOC_UPLOADED,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}

	saved, err := fieldsRepo.FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	return saved, nil
}
