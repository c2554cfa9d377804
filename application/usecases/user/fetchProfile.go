package user_usecases

import (
	"errors"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/repository"
	"kyc.igtapps.io/entities"
)

func FetchProfileUseCase(ctx any, userID string) (*entities.User, error) {
	user, err := repository.UserRepo().FindByID(userID)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	if user == nil {
		apperrors.NotFoundError(ctx, "user not found")
		return nil, errors.New("")
	}
	return user, nil
}
