// Package http wires the HTTP routes to domain services. All authorization
// decisions happen here (role gates) or in the services (ownership gates);
// handlers only translate between the wire and the domain.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mygames/internal/domain"
	"mygames/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	tokens  service.TokenService
	reset   service.PasswordResetService
	myGames service.MyGameService
	games   service.GameService
	lookups service.LookupService
	logger  *logrus.Logger
}

func NewHandler(
	users service.UserService,
	tokens service.TokenService,
	reset service.PasswordResetService,
	myGames service.MyGameService,
	games service.GameService,
	lookups service.LookupService,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:   users,
		tokens:  tokens,
		reset:   reset,
		myGames: myGames,
		games:   games,
		lookups: lookups,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := router.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/register", h.register)
	}

	password := router.Group("/password")
	{
		password.POST("/forgot", h.forgotPassword)
		password.GET("/reset/validate", h.validateResetToken)
		password.POST("/reset", h.resetPassword)
	}

	authed := router.Group("", h.authRequired())

	myGames := authed.Group("/my-games")
	{
		myGames.GET("", h.listMyGames)
		myGames.GET("/:id", h.getMyGame)
		myGames.POST("", h.createMyGame)
		myGames.PUT("", h.updateMyGame)
		myGames.PATCH("/:id/status", h.updateMyGameStatus)
		myGames.DELETE("/:id", h.deleteMyGame)
	}

	admin := authed.Group("/admin", h.requireRole(domain.RoleAdmin))
	{
		admin.GET("/users", h.listUsers)
		admin.GET("/my-games", h.listAllMyGames)
		admin.DELETE("/users/:id", h.deleteUser)
		admin.PATCH("/users/:id/enable", h.enableUser)
		admin.PATCH("/users/:id/disable", h.disableUser)
	}

	games := authed.Group("/games")
	{
		games.GET("", h.listGames)
		games.GET("/:id", h.getGame)

		writes := games.Group("", h.requireRole(domain.RoleAdmin))
		writes.POST("", h.createGame)
		writes.PUT("/:id", h.updateGame)
		writes.DELETE("/:id", h.deleteGame)
		writes.POST("/:id/genres/:refId", h.addGameGenre)
		writes.DELETE("/:id/genres/:refId", h.removeGameGenre)
		writes.POST("/:id/themes/:refId", h.addGameTheme)
		writes.DELETE("/:id/themes/:refId", h.removeGameTheme)
	}

	for _, kind := range domain.LookupKinds {
		h.registerLookupRoutes(authed, kind)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
