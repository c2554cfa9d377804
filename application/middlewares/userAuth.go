package middlewares

import (
	"strings"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/interfaces"
	"kyc.igtapps.io/infrastructure/auth"
	"kyc.igtapps.io/infrastructure/logger"
)

func UserAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any]) (*interfaces.ApplicationContext[any], bool) {
	authTokenHeader := ctx.GetHeader("Authorization")
	if authTokenHeader == "" {
		apperrors.AuthenticationError(ctx.Ctx, "provide an auth token")
		return nil, false
	}
	authToken := strings.TrimPrefix(authTokenHeader, "Bearer ")
	if authToken == authTokenHeader {
		apperrors.AuthenticationError(ctx.Ctx, "invalid auth token format")
		return nil, false
	}

	claims, err := auth.DecodeAuthToken(authToken)
	if err != nil {
		apperrors.AuthenticationError(ctx.Ctx, "this session has expired")
		return nil, false
	}
	if claims.UserID == "" {
		logger.Warning("auth token decoded without a subject")
		apperrors.AuthenticationError(ctx.Ctx, "this session has expired")
		return nil, false
	}

	ctx.UserID = claims.UserID
	ctx.Elevated = claims.Elevated
	return ctx, true
}
