package kyc_usecases

import (
	"errors"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/repository"
	"kyc.igtapps.io/entities"
)

// DocumentFieldsUseCase returns the extracted document fields. The full
// identifier never leaves this function unless the caller's token carries
// the elevated claim; everyone else gets the masked form.
func DocumentFieldsUseCase(ctx any, userID string, elevated bool) (map[string]any, error) {
	fields, err := repository.DocumentFieldsRepo().FindOneByFilter(map[string]any{
		"userID": userID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	if fields == nil {
		apperrors.NotFoundError(ctx, "no document has been processed for this user")
		return nil, errors.New("")
	}

	payload := fieldsView(fields)
	if elevated && fields.IdentifierFull != nil {
		payload["identifier"] = *fields.IdentifierFull
	}
	return payload, nil
}

func fieldsView(fields *entities.DocumentFields) map[string]any {
	return map[string]any{
		"identifierMasked": fields.IdentifierMasked,
		"name":             fields.Name,
		"dateOfBirth":      fields.DateOfBirth,
		"gender":           fields.Gender,
		"confidence":       fields.Confidence,
		"updatedAt":        fields.UpdatedAt,
	}
}
