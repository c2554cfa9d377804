package controller

import (
	"net/http"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/controller/dto"
	"kyc.igtapps.io/application/interfaces"
	document_usecases "kyc.igtapps.io/application/usecases/document"
	kyc_usecases "kyc.igtapps.io/application/usecases/kyc"
	liveness_usecases "kyc.igtapps.io/application/usecases/liveness"
	server_response "kyc.igtapps.io/infrastructure/serverResponse"
	"kyc.igtapps.io/infrastructure/validator"
)

func UploadDocument(ctx *interfaces.ApplicationContext[dto.UploadDocumentDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	fields, err := document_usecases.UploadDocumentUseCase(ctx.Ctx, ctx.UserID, ctx.Body)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "document processed", fields, nil)
}

func UploadSelfie(ctx *interfaces.ApplicationContext[dto.UploadSelfieDTO]) {
	document, err := document_usecases.UploadSelfieUseCase(ctx.Ctx, ctx.UserID, ctx.Body)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "selfie saved", map[string]any{
		"faceExtracted": document.FaceExtracted,
	}, nil)
}

func IssueLivenessChallenge(ctx *interfaces.ApplicationContext[any]) {
	action, err := liveness_usecases.IssueChallengeUseCase(ctx.Ctx, ctx.UserID)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "challenge issued", map[string]any{
		"action": action,
	}, nil)
}

func LivenessStep(ctx *interfaces.ApplicationContext[dto.LivenessStepDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	result, session, err := liveness_usecases.LivenessStepUseCase(ctx.Ctx, ctx.UserID, ctx.Body)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "step processed", map[string]any{
		"action":  result.Action,
		"success": result.Success,
		"session": session,
	}, nil)
}

func FaceMatch(ctx *interfaces.ApplicationContext[any]) {
	verification, err := kyc_usecases.FaceMatchUseCase(ctx.Ctx, ctx.UserID)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face match complete", verification, nil)
}

func ValidateName(ctx *interfaces.ApplicationContext[any]) {
	result, err := kyc_usecases.ValidateNameUseCase(ctx.Ctx, ctx.UserID)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "name validated", result, nil)
}

func FinalDecision(ctx *interfaces.ApplicationContext[any]) {
	verdict, err := kyc_usecases.FinalDecisionUseCase(ctx.Ctx, ctx.UserID)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "decision computed", verdict, nil)
}

func KYCStatus(ctx *interfaces.ApplicationContext[any]) {
	status, err := kyc_usecases.KYCStatusUseCase(ctx.Ctx, ctx.UserID)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "kyc status", status, nil)
}

// DocumentFields always serves the masked representation, elevated token or
// not. The unmasked read lives on its own route.
func DocumentFields(ctx *interfaces.ApplicationContext[any]) {
	fields, err := kyc_usecases.DocumentFieldsUseCase(ctx.Ctx, ctx.UserID, false)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "document fields", fields, nil)
}

// UnmaskedDocumentFields is the elevated read path. The auth middleware has
// already decoded the token; the claim check happens here so the route can
// share the same middleware chain as everything else.
func UnmaskedDocumentFields(ctx *interfaces.ApplicationContext[any]) {
	if !ctx.Elevated {
		apperrors.AuthenticationError(ctx.Ctx, "this endpoint requires elevated access")
		return
	}
	fields, err := kyc_usecases.DocumentFieldsUseCase(ctx.Ctx, ctx.UserID, true)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "document fields", fields, nil)
}
