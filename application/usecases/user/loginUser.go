package user_usecases

import (
	"errors"
	"strings"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/controller/dto"
	"kyc.igtapps.io/application/repository"
	"kyc.igtapps.io/entities"
	"kyc.igtapps.io/infrastructure/auth"
	"kyc.igtapps.io/infrastructure/cryptography"
)

func LoginUserUseCase(ctx any, payload *dto.LoginDTO) (*entities.User, *string, error) {
	payload.Email = strings.ToLower(payload.Email)
	userRepo := repository.UserRepo()
	user, err := userRepo.FindOneByFilter(map[string]any{
		"email": payload.Email,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, nil, err
	}
	if user == nil || !cryptography.CryptoHasher.VerifyHashData(user.Password, payload.Password) {
		apperrors.AuthenticationError(ctx, "invalid email or password")
		return nil, nil, errors.New("")
	}

	token, err := auth.GenerateAuthToken(user.ID, user.Email, false)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, nil, err
	}
	return user, token, nil
}
