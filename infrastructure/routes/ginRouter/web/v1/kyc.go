package routev1

import (
	"io"

	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/constants"
	"kyc.igtapps.io/application/controller"
	"kyc.igtapps.io/application/controller/dto"
	"kyc.igtapps.io/application/interfaces"
	middlewares "kyc.igtapps.io/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

var acceptedImageTypes = []string{"image/jpeg", "image/png"}

// readImagePart pulls one uploaded image out of the multipart form and
// enforces the size and content-type limits before any pixel ever reaches
// the pipeline. Returns false after responding if the part is unusable.
func readImagePart(ctx *gin.Context, field string, required bool) (*dto.UploadedImage, bool) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		if required {
			apperrors.ClientError(ctx, "missing file field "+field, nil)
			return nil, false
		}
		return nil, true
	}
	if fileHeader.Size > constants.MAX_UPLOAD_BYTES {
		apperrors.ClientError(ctx, "uploaded image exceeds the 5MB limit", nil)
		return nil, false
	}
	contentType := fileHeader.Header.Get("Content-Type")
	accepted := false
	for _, t := range acceptedImageTypes {
		if contentType == t {
			accepted = true
			break
		}
	}
	if !accepted {
		apperrors.UnsupportedContentType(ctx, contentType)
		return nil, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		apperrors.ErrorProcessingPayload(ctx)
		return nil, false
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		apperrors.ErrorProcessingPayload(ctx)
		return nil, false
	}
	return &dto.UploadedImage{Data: data, ContentType: contentType}, true
}

func appContext(ctx *gin.Context) *interfaces.ApplicationContext[any] {
	return ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
}

func KYCRouter(router *gin.RouterGroup) {
	kycRouter := router.Group("/kyc")
	kycRouter.Use(middlewares.UserAuthenticationMiddleware())
	{
		kycRouter.POST("/document", func(ctx *gin.Context) {
			savedCtx := appContext(ctx)
			front, ok := readImagePart(ctx, "front", true)
			if !ok {
				return
			}
			back, ok := readImagePart(ctx, "back", false)
			if !ok {
				return
			}
			body := dto.UploadDocumentDTO{Front: *front, Back: back}
			controller.UploadDocument(&interfaces.ApplicationContext[dto.UploadDocumentDTO]{
				Ctx:      ctx,
				Body:     &body,
				UserID:   savedCtx.UserID,
				Elevated: savedCtx.Elevated,
			})
		})

		kycRouter.POST("/selfie", func(ctx *gin.Context) {
			savedCtx := appContext(ctx)
			selfie, ok := readImagePart(ctx, "selfie", true)
			if !ok {
				return
			}
			body := dto.UploadSelfieDTO{Selfie: *selfie}
			controller.UploadSelfie(&interfaces.ApplicationContext[dto.UploadSelfieDTO]{
				Ctx:    ctx,
				Body:   &body,
				UserID: savedCtx.UserID,
			})
		})

		kycRouter.POST("/liveness/challenge", func(ctx *gin.Context) {
			savedCtx := appContext(ctx)
			controller.IssueLivenessChallenge(&interfaces.ApplicationContext[any]{
				Ctx:    ctx,
				UserID: savedCtx.UserID,
			})
		})

		kycRouter.POST("/liveness/step", func(ctx *gin.Context) {
			savedCtx := appContext(ctx)
			form, err := ctx.MultipartForm()
			if err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			action := ctx.PostForm("action")
			frames := [][]byte{}
			for _, fileHeader := range form.File["frames"] {
				if fileHeader.Size > constants.MAX_UPLOAD_BYTES {
					apperrors.ClientError(ctx, "a frame exceeds the 5MB limit", nil)
					return
				}
				file, err := fileHeader.Open()
				if err != nil {
					apperrors.ErrorProcessingPayload(ctx)
					return
				}
				data, err := io.ReadAll(file)
				file.Close()
				if err != nil {
					apperrors.ErrorProcessingPayload(ctx)
					return
				}
				frames = append(frames, data)
			}
			body := dto.LivenessStepDTO{Action: action, Frames: frames}
			controller.LivenessStep(&interfaces.ApplicationContext[dto.LivenessStepDTO]{
				Ctx:    ctx,
				Body:   &body,
				UserID: savedCtx.UserID,
			})
		})

		kycRouter.POST("/face/match", func(ctx *gin.Context) {
			savedCtx := appContext(ctx)
			controller.FaceMatch(&interfaces.ApplicationContext[any]{
				Ctx:    ctx,
				UserID: savedCtx.UserID,
			})
		})

		kycRouter.POST("/name/validate", func(ctx *gin.Context) {
			savedCtx := appContext(ctx)
			controller.ValidateName(&interfaces.ApplicationContext[any]{
				Ctx:    ctx,
				UserID: savedCtx.UserID,
			})
		})

		kycRouter.POST("/decision", func(ctx *gin.Context) {
			savedCtx := appContext(ctx)
			controller.FinalDecision(&interfaces.ApplicationContext[any]{
				Ctx:    ctx,
				UserID: savedCtx.UserID,
			})
		})

		kycRouter.GET("/status", func(ctx *gin.Context) {
			savedCtx := appContext(ctx)
			controller.KYCStatus(&interfaces.ApplicationContext[any]{
				Ctx:    ctx,
				UserID: savedCtx.UserID,
			})
		})

		kycRouter.GET("/document/fields", func(ctx *gin.Context) {
			savedCtx := appContext(ctx)
			controller.DocumentFields(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				UserID:   savedCtx.UserID,
				Elevated: savedCtx.Elevated,
			})
		})

		kycRouter.GET("/document/fields/unmasked", func(ctx *gin.Context) {
			savedCtx := appContext(ctx)
			controller.UnmaskedDocumentFields(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				UserID:   savedCtx.UserID,
				Elevated: savedCtx.Elevated,
			})
		})
	}
}
