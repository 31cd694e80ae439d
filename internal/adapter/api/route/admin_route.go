package route

import (
	"github.com/gin-gonic/gin"
	"github.com/soliciteia/assistente/internal/adapter/api/controller"
	"github.com/soliciteia/assistente/pkg/auth"
)

// SetupAdminRoutes configura as rotas do painel administrativo
func SetupAdminRoutes(router *gin.RouterGroup, adminController *controller.AdminController) {
	adminRouter := router.Group("/admin")
	adminRouter.Use(auth.JWTAuthMiddleware())
	{
		adminRouter.GET("/estatisticas", adminController.Estatisticas)
		adminRouter.GET("/conversas", adminController.ListConversas)
		adminRouter.GET("/usuarios", adminController.ListUsuarios)
		adminRouter.GET("/prestadores", adminController.ListPrestadores)
		adminRouter.GET("/produtos", adminController.ListProdutos)
		adminRouter.GET("/achados-perdidos", adminController.ListAchados)
		adminRouter.GET("/reclamacoes", adminController.ListReclamacoes)
	}
}
