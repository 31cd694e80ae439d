package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/soliciteia/assistente/internal/adapter/api/dto"
	"github.com/soliciteia/assistente/internal/domain/complaint"
	"github.com/soliciteia/assistente/internal/domain/conversation"
	"github.com/soliciteia/assistente/internal/domain/lostfound"
	"github.com/soliciteia/assistente/internal/domain/product"
	"github.com/soliciteia/assistente/internal/domain/provider"
	"github.com/soliciteia/assistente/internal/domain/user"
)

// AdminController gerencia as consultas do painel administrativo
type AdminController struct {
	conversas   conversation.Repository
	usuarios    user.Repository
	prestadores provider.Repository
	produtos    product.Repository
	achados     lostfound.Repository
	reclamacoes complaint.Repository
}

// NewAdminController cria uma nova instância de AdminController
func NewAdminController(
	conversas conversation.Repository,
	usuarios user.Repository,
	prestadores provider.Repository,
	produtos product.Repository,
	achados lostfound.Repository,
	reclamacoes complaint.Repository,
) *AdminController {
	return &AdminController{
		conversas:   conversas,
		usuarios:    usuarios,
		prestadores: prestadores,
		produtos:    produtos,
		achados:     achados,
		reclamacoes: reclamacoes,
	}
}

// pagination extrai os parâmetros de paginação da query string
func pagination(ctx *gin.Context) dto.PaginationParams {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	return dto.GetPagination(page, pageSize)
}

// Estatisticas retorna as estatísticas agregadas de uso
// @Summary Estatísticas de uso
// @Description Retorna totais de conversas, remetentes únicos e distribuição por intenção
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} conversation.Estatisticas
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/estatisticas [get]
func (c *AdminController) Estatisticas(ctx *gin.Context) {
	stats, err := c.conversas.Stats(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao calcular estatísticas", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// ListConversas lista as conversas mais recentes
// @Summary Lista conversas
// @Description Lista as conversas registradas, mais recentes primeiro
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Param telefone query string false "Filtrar por remetente"
// @Success 200 {object} dto.ListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/conversas [get]
func (c *AdminController) ListConversas(ctx *gin.Context) {
	p := pagination(ctx)

	var (
		conversas []*conversation.Conversa
		err       error
	)

	if telefone := ctx.Query("telefone"); telefone != "" {
		conversas, err = c.conversas.ListByTelefone(ctx, telefone, p.PageSize, p.Offset())
	} else {
		conversas, err = c.conversas.ListRecent(ctx, p.PageSize, p.Offset())
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar conversas", err.Error()))
		return
	}

	stats, err := c.conversas.Stats(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao contar conversas", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(conversas, stats.TotalConversas, p))
}

// ListUsuarios lista os contatos registrados
// @Summary Lista contatos
// @Description Lista os contatos que já escreveram ao assistente
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Success 200 {object} dto.ListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/usuarios [get]
func (c *AdminController) ListUsuarios(ctx *gin.Context) {
	p := pagination(ctx)

	usuarios, err := c.usuarios.List(ctx, p.PageSize, p.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar contatos", err.Error()))
		return
	}

	total, err := c.usuarios.Count(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao contar contatos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(usuarios, total, p))
}

// ListPrestadores lista os prestadores de serviços cadastrados
// @Summary Lista prestadores
// @Description Lista os prestadores de serviços cadastrados
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Success 200 {object} dto.ListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/prestadores [get]
func (c *AdminController) ListPrestadores(ctx *gin.Context) {
	p := pagination(ctx)

	prestadores, err := c.prestadores.List(ctx, p.PageSize, p.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar prestadores", err.Error()))
		return
	}

	total, err := c.prestadores.Count(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao contar prestadores", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(prestadores, total, p))
}

// ListProdutos lista os anúncios do marketplace
// @Summary Lista anúncios
// @Description Lista os anúncios publicados no marketplace
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Success 200 {object} dto.ListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/produtos [get]
func (c *AdminController) ListProdutos(ctx *gin.Context) {
	p := pagination(ctx)

	produtos, err := c.produtos.List(ctx, p.PageSize, p.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar anúncios", err.Error()))
		return
	}

	total, err := c.produtos.Count(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao contar anúncios", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(produtos, total, p))
}

// ListAchados lista os relatos de achados e perdidos
// @Summary Lista achados e perdidos
// @Description Lista os relatos de objetos perdidos e achados
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Success 200 {object} dto.ListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/achados-perdidos [get]
func (c *AdminController) ListAchados(ctx *gin.Context) {
	p := pagination(ctx)

	registros, err := c.achados.List(ctx, p.PageSize, p.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar relatos", err.Error()))
		return
	}

	total, err := c.achados.Count(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao contar relatos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(registros, total, p))
}

// ListReclamacoes lista as reclamações registradas
// @Summary Lista reclamações
// @Description Lista as reclamações registradas contra empresas
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Success 200 {object} dto.ListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/reclamacoes [get]
func (c *AdminController) ListReclamacoes(ctx *gin.Context) {
	p := pagination(ctx)

	reclamacoes, err := c.reclamacoes.List(ctx, p.PageSize, p.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar reclamações", err.Error()))
		return
	}

	total, err := c.reclamacoes.Count(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao contar reclamações", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(reclamacoes, total, p))
}
