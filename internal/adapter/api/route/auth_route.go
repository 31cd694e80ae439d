package route

import (
	"github.com/gin-gonic/gin"
	"github.com/soliciteia/assistente/internal/adapter/api/controller"
	"github.com/soliciteia/assistente/pkg/auth"
)

// SetupAuthRoutes configura as rotas para autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	{
		// Rota de login (não requer autenticação)
		authRouter.POST("/login", authController.Login)

		// Rota para renovar token (não requer autenticação pois usa o token de refresh)
		authRouter.POST("/refresh-token", authController.RefreshToken)

		// Rota para obter informações do administrador logado (requer autenticação)
		authRouter.GET("/me", auth.JWTAuthMiddleware(), authController.Me)

		// Rota para criar administradores (apenas admins)
		authRouter.POST("/admins", auth.JWTAuthMiddleware(), auth.RoleAuthMiddleware("admin"), authController.CreateAdmin)
	}
}
