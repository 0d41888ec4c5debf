package middleware

import "github.com/gin-gonic/gin"

const contentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline' 'unsafe-eval'; " +
	"worker-src blob: ; connect-src 'self'; style-src 'self' 'unsafe-inline';"

func ContentSecurityPolicy() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Content-Security-Policy", contentSecurityPolicy)
		ctx.Next()
	}
}
