package middlewares

import (
	"github.com/gin-gonic/gin"
	"kyc.igtapps.io/application/interfaces"
	"kyc.igtapps.io/application/middlewares"
)

func UserAuthenticationMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext, next := middlewares.UserAuthenticationMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:    ctx,
			Header: ctx.Request.Header,
		})
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
