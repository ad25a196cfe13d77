package router

import (
	"time"

	"wallet/api"
	"wallet/config"
	_ "wallet/docs"
	"wallet/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg)
		passwordResetHandler := api.NewPasswordResetHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(10, time.Minute), authHandler.Login)

			// 密码重置
			auth.POST("/password/request-reset", passwordResetHandler.RequestPasswordReset)
			auth.GET("/password/verify-token", passwordResetHandler.VerifyResetToken)
			auth.POST("/password/reset", passwordResetHandler.ResetPassword)
		}

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			// 钱包相关
			walletHandler := api.NewWalletHandler()
			wallets := authorized.Group("/wallets")
			{
				wallets.POST("", walletHandler.Create)
				wallets.GET("", walletHandler.List)
				wallets.GET("/:id", walletHandler.Get)
				wallets.POST("/:id/members", walletHandler.AddMember)

				// 流水相关
				ledgerHandler := api.NewLedgerHandler()
				wallets.POST("/:id/entries", ledgerHandler.Create)
				wallets.GET("/:id/entries", ledgerHandler.List)
				wallets.PUT("/:id/entries/:entry_id", ledgerHandler.Update)
				wallets.DELETE("/:id/entries/:entry_id", ledgerHandler.Delete)

				// 类别相关
				categoryHandler := api.NewCategoryHandler()
				wallets.GET("/:id/categories", categoryHandler.List)
				wallets.POST("/:id/categories/reset", categoryHandler.Reset)

				// 报表导出
				exportHandler := api.NewExportHandler()
				wallets.GET("/:id/export/:format", exportHandler.Export)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
