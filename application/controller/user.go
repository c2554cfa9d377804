package controller

import (
	"net/http"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/controller/dto"
	"kyc.igtapps.io/application/interfaces"
	user_usecases "kyc.igtapps.io/application/usecases/user"
	server_response "kyc.igtapps.io/infrastructure/serverResponse"
	"kyc.igtapps.io/infrastructure/validator"
)

func CreateUser(ctx *interfaces.ApplicationContext[dto.CreateUserDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	user, token, err := user_usecases.CreateUserUseCase(ctx.Ctx, ctx.Body)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "account created", map[string]any{
		"user":  user,
		"token": token,
	}, nil)
}

func LoginUser(ctx *interfaces.ApplicationContext[dto.LoginDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	user, token, err := user_usecases.LoginUserUseCase(ctx.Ctx, ctx.Body)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "login successful", map[string]any{
		"user":  user,
		"token": token,
	}, nil)
}

func FetchProfile(ctx *interfaces.ApplicationContext[any]) {
	user, err := user_usecases.FetchProfileUseCase(ctx.Ctx, ctx.UserID)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "profile fetched", user, nil)
}
