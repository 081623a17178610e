package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"usuarios-api/internal/domain"
	"usuarios-api/internal/service"
)

const healthTimeout = 2 * time.Second

const (
	msgInvalidBody     = "Cuerpo de solicitud inválido"
	msgNotFound        = "Usuario no encontrado"
	msgNotFoundDelete  = "Usuario no encontrado para eliminar"
	msgEmailRegistered = "El email ya está registrado"
	msgEmailInUse      = "El email ya está en uso por otro usuario"
	msgDeleted         = "Usuario eliminado"

	msgListFailed   = "Error interno del servidor al obtener usuarios"
	msgGetFailed    = "Error interno del servidor al obtener usuario"
	msgCreateFailed = "Error interno del servidor al registrar usuario"
	msgUpdateFailed = "Error interno del servidor al actualizar usuario"
	msgDeleteFailed = "Error interno del servidor al eliminar usuario"
)

// Handler wires HTTP routes to the user service.
type Handler struct {
	users       service.UserService
	log         *logrus.Logger
	metrics     *Metrics
	corsOrigins []string
}

func NewHandler(users service.UserService, logger *logrus.Logger, metrics *Metrics, corsOrigins []string) *Handler {
	return &Handler{
		users:       users,
		log:         logger,
		metrics:     metrics,
		corsOrigins: corsOrigins,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestID(), requestLogger(h.log), corsMiddleware(h.corsOrigins))
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	router.GET("/healthz", h.healthz)

	users := router.Group("/usuarios")
	{
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.POST("", h.createUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}
}

func (h *Handler) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.users.Ping(ctx); err != nil {
		h.entry(c).WithError(err).Error("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.entry(c).WithError(err).Error("list users")
		c.JSON(http.StatusInternalServerError, messageResponse{Message: msgListFailed})
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getUser(c *gin.Context) {
	id := c.Param("id")

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			h.entry(c).WithField("user_id", id).Warn("user not found")
			c.JSON(http.StatusNotFound, messageResponse{Message: msgNotFound})
			return
		}
		h.entry(c).WithField("user_id", id).WithError(err).Error("get user")
		c.JSON(http.StatusInternalServerError, messageResponse{Message: msgGetFailed})
		return
	}

	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.entry(c).WithError(err).Warn("decode create user body")
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
		return
	}

	user, err := h.users.Register(c.Request.Context(), domain.NewUser{
		Nombre:   req.Nombre,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			h.entry(c).WithError(err).Warn("register user: email taken")
			c.JSON(http.StatusConflict, messageResponse{Message: msgEmailRegistered})
			return
		}
		h.entry(c).WithError(err).Error("register user")
		c.JSON(http.StatusInternalServerError, messageResponse{Message: msgCreateFailed})
		return
	}

	c.JSON(http.StatusCreated, userToResponse(*user))
}

func (h *Handler) updateUser(c *gin.Context) {
	id := c.Param("id")

	var req updateUserRequest
	// An empty body is an empty patch.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.entry(c).WithField("user_id", id).WithError(err).Warn("decode update user body")
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, domain.UserPatch{
		Nombre:   req.Nombre,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			h.entry(c).WithField("user_id", id).Warn("update user: not found")
			c.JSON(http.StatusNotFound, messageResponse{Message: msgNotFound})
		case errors.Is(err, domain.ErrEmailTaken):
			h.entry(c).WithField("user_id", id).WithError(err).Warn("update user: email taken")
			c.JSON(http.StatusConflict, messageResponse{Message: msgEmailInUse})
		default:
			h.entry(c).WithField("user_id", id).WithError(err).Error("update user")
			c.JSON(http.StatusInternalServerError, messageResponse{Message: msgUpdateFailed})
		}
		return
	}

	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id := c.Param("id")

	user, err := h.users.Remove(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			h.entry(c).WithField("user_id", id).Warn("delete user: not found")
			c.JSON(http.StatusNotFound, messageResponse{Message: msgNotFoundDelete})
			return
		}
		h.entry(c).WithField("user_id", id).WithError(err).Error("delete user")
		c.JSON(http.StatusInternalServerError, messageResponse{Message: msgDeleteFailed})
		return
	}

	c.JSON(http.StatusOK, deleteUserResponse{
		Message: msgDeleted,
		User:    userToResponse(*user),
	})
}

func (h *Handler) entry(c *gin.Context) *logrus.Entry {
	return h.log.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	})
}
