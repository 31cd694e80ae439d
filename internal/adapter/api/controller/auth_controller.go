package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soliciteia/assistente/internal/adapter/api/dto"
	"github.com/soliciteia/assistente/internal/domain/user"
	"github.com/soliciteia/assistente/pkg/auth"
)

// AuthController gerencia as requisições relacionadas à autenticação
type AuthController struct {
	adminRepository user.AdminRepository
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(adminRepository user.AdminRepository) *AuthController {
	return &AuthController{
		adminRepository: adminRepository,
	}
}

// Login autentica um administrador e retorna um token JWT
// @Summary Autentica um administrador
// @Description Verifica as credenciais do administrador e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credenciais de login"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	a, err := c.adminRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, user.ErrAdminNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", "Email ou senha incorretos"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao autenticar administrador", err.Error()))
		return
	}

	if err := a.CheckPassword(request.Password); err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", "Email ou senha incorretos"))
		return
	}

	jwtService, err := auth.NewJWTService()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao configurar autenticação", err.Error()))
		return
	}

	token, err := jwtService.GenerateToken(a)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar token", err.Error()))
		return
	}

	response := dto.LoginResponse{
		User:        dto.ToAdminResponse(a),
		AccessToken: token,
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}

	ctx.JSON(http.StatusOK, response)
}

// RefreshToken renova um token JWT
// @Summary Renova um token JWT
// @Description Renova um token JWT existente
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Token a ser renovado"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh-token [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var request dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	jwtService, err := auth.NewJWTService()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao configurar autenticação", err.Error()))
		return
	}

	token, err := jwtService.RefreshToken(request.RefreshToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Token inválido", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Token renovado", gin.H{"access_token": token}))
}

// Me retorna as informações do administrador autenticado
// @Summary Informações do administrador autenticado
// @Description Retorna os dados do administrador dono do token
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.AdminResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID, _, _, _ := auth.GetCurrentUser(ctx)
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Autenticação requerida", ""))
		return
	}

	a, err := c.adminRepository.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrAdminNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Administrador não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar administrador", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAdminResponse(a))
}

// CreateAdmin cria um novo administrador
// @Summary Cria um administrador
// @Description Cria um novo administrador do painel
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Param admin body dto.CreateAdminRequest true "Dados do administrador"
// @Success 201 {object} dto.AdminResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/admins [post]
func (c *AuthController) CreateAdmin(ctx *gin.Context) {
	var request dto.CreateAdminRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	role := user.Role(request.Role)
	if request.Role == "" {
		role = user.RoleOperador
	}

	a, err := user.NewAdmin(request.Email, request.Nome, request.Password, role)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados inválidos", err.Error()))
		return
	}

	if err := c.adminRepository.Create(ctx, a); err != nil {
		if errors.Is(err, user.ErrEmailJaRegistado) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Email já registado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar administrador", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAdminResponse(a))
}
