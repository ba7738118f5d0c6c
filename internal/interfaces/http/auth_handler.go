package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/romero-panificados/inventario-api/internal/application/auth"
	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/application/usecase"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

// AuthHandler maneja login, logout, perfil y alta de usuarios.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	users *usecase.UserUseCase
	audit auditRecorder
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, users *usecase.UserUseCase, rec auditRecorder) *AuthHandler {
	return &AuthHandler{uc: uc, users: users, audit: rec}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.SuccessResponse{data=dto.LoginResponse}
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", "email y password son requeridos")
	}
	out, err := withTimeout(c, LookupTimeout, func(ctx context.Context) (*dto.LoginResponse, error) {
		return h.uc.Login(ctx, in)
	})
	if err != nil {
		recordAudit(h.audit, c, entity.AuditLogin, "usuario", "", fiber.Map{"email": in.Email, "exito": false})
		return writeError(c, err)
	}
	c.Locals(LocalUserID, out.Usuario.ID)
	recordAudit(h.audit, c, entity.AuditLogin, "usuario", out.Usuario.ID, fiber.Map{"exito": true})
	return c.JSON(dto.OK(out))
}

// Logout godoc
// @Summary      Cerrar sesión (el JWT no tiene estado; solo se audita)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	uid := GetUserID(c)
	recordAudit(h.audit, c, entity.AuditLogout, "usuario", uid, nil)
	return c.JSON(dto.OK(nil))
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse{data=dto.UserResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	uid := GetUserID(c)
	out, err := withTimeout(c, LookupTimeout, func(ctx context.Context) (*dto.UserResponse, error) {
		return h.users.GetByID(ctx, uid)
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// CreateUser godoc
// @Summary      Crear usuario (administrador)
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "email, password, nombre, rol"
// @Success      201   {object}  dto.SuccessResponse{data=dto.UserResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateUser(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	recordAudit(h.audit, c, entity.AuditCreate, "usuario", out.ID, fiber.Map{"email": out.Email, "rol": out.Rol})
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}
