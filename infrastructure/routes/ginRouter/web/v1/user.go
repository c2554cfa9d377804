package routev1

import (
	apperrors "kyc.igtapps.io/application/appErrors"
	"kyc.igtapps.io/application/controller"
	"kyc.igtapps.io/application/controller/dto"
	"kyc.igtapps.io/application/interfaces"
	middlewares "kyc.igtapps.io/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

func UserRouter(router *gin.RouterGroup) {
	userRouter := router.Group("/auth")
	{
		userRouter.POST("/register", func(ctx *gin.Context) {
			var body dto.CreateUserDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CreateUser(&interfaces.ApplicationContext[dto.CreateUserDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})

		userRouter.POST("/login", func(ctx *gin.Context) {
			var body dto.LoginDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.LoginUser(&interfaces.ApplicationContext[dto.LoginDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})
	}

	profileRouter := router.Group("/user")
	profileRouter.Use(middlewares.UserAuthenticationMiddleware())
	{
		profileRouter.GET("/profile", func(ctx *gin.Context) {
			savedCtx := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchProfile(&interfaces.ApplicationContext[any]{
				Ctx:    ctx,
				UserID: savedCtx.UserID,
			})
		})
	}
}
