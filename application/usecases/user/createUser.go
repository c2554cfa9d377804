package user_usecases

import (
	"context"
	"errors"
	"strings"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/constants"
	"kyc.igtapps.io/application/controller/dto"
	"kyc.igtapps.io/application/repository"
	"kyc.igtapps.io/entities"
	"kyc.igtapps.io/infrastructure/auth"
	"kyc.igtapps.io/infrastructure/cryptography"
	"kyc.igtapps.io/infrastructure/logger"
)

func CreateUserUseCase(ctx any, payload *dto.CreateUserDTO) (*entities.User, *string, error) {
	payload.Email = strings.ToLower(payload.Email)
	userRepo := repository.UserRepo()
	exists, err := userRepo.CountDocs(map[string]any{
		"email": payload.Email,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, nil, err
	}
	if exists != 0 {
		apperrors.EntityAlreadyExistsError(ctx, "User with email already exists")
		return nil, nil, errors.New("")
	}

	hashedPassword, err := cryptography.CryptoHasher.HashString(payload.Password)
	if err != nil {
		logger.Error("an error occured while hashing user password", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.FatalServerError(ctx, err)
		return nil, nil, err
	}

	user, err := userRepo.CreateOne(context.TODO(), entities.User{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Mobile:    payload.Mobile,
		Password:  string(hashedPassword),
		KYCStatus: constants.KYC_STATUS_BASIC_SUBMITTED,
	})
	if err != nil {
		logger.Error("an error occured while creating user", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "email",
			Data: payload.Email,
		})
		apperrors.FatalServerError(ctx, err)
		return nil, nil, err
	}

	token, err := auth.GenerateAuthToken(user.ID, user.Email, false)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, nil, err
	}
	return user, token, nil
}
