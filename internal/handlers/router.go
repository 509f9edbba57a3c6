package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/SAP-F-2025/llm-dissector/internal/services"
	"github.com/SAP-F-2025/llm-dissector/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const AdminTokenHeader = "X-Admin-Token"

type HandlerManager struct {
	sessionHandler *SessionHandler
	catalogHandler *CatalogHandler
	adminToken     string
	corsOrigins    []string
}

type RouterConfig struct {
	AdminToken  string
	CORSOrigins []string
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	cfg RouterConfig,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		sessionHandler: NewSessionHandler(serviceManager.Session(), logger),
		catalogHandler: NewCatalogHandler(serviceManager.Catalog(), serviceManager.Export(), logger),
		adminToken:     cfg.AdminToken,
		corsOrigins:    cfg.CORSOrigins,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(CORSMiddleware(hm.corsOrigins))

	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.CreateSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.DELETE("/:id", hm.sessionHandler.EndSession)

			sessions.PUT("/:id/question", hm.sessionHandler.UpdateQuestion)
			sessions.POST("/:id/presets/:preset_id", hm.sessionHandler.ApplyPreset)
			sessions.POST("/:id/send", hm.sessionHandler.Send)

			// Quiz and stage navigation
			sessions.PUT("/:id/choice", hm.sessionHandler.SelectChoice)
			sessions.POST("/:id/check", hm.sessionHandler.CheckAnswer)
			sessions.POST("/:id/next", hm.sessionHandler.NextStage)
			sessions.POST("/:id/back", hm.sessionHandler.Back)
		}

		v1.GET("/stages", hm.catalogHandler.ListStages)
		v1.GET("/quiz-options", hm.catalogHandler.ListQuizOptions)
		v1.GET("/presets", hm.catalogHandler.ListPresets)

		admin := v1.Group("/catalog", AdminMiddleware(hm.adminToken))
		{
			admin.GET("/export", hm.catalogHandler.ExportCatalog)
		}

		v1.DELETE("/admin/sessions", AdminMiddleware(hm.adminToken), hm.sessionHandler.EndAllSessions)
	}
}

// AdminMiddleware requires the X-Admin-Token header to match token. An
// empty token disables every admin route.
func AdminMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Admin routes are disabled",
			})
			return
		}

		provided := c.GetHeader(AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Access denied",
			})
			return
		}

		c.Next()
	}
}

// CORSMiddleware allows the browser front end to call the API. A "*" entry
// opens the API to every origin without credentials.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-Request-ID", AdminTokenHeader},
	}

	allowAll := len(origins) == 0
	for _, origin := range origins {
		if origin == "*" {
			allowAll = true
			break
		}
	}

	if allowAll {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}

	return cors.New(config)
}
