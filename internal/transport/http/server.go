package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appsvc "docanalyzer/internal/app"
	"docanalyzer/internal/bootstrap"
	"docanalyzer/internal/repository"
	"docanalyzer/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	docRepo := repository.NewDocumentRepository(app.DB)
	sessionRepo := repository.NewSessionRepository(app.DB)
	queryRepo := repository.NewQueryRepository(app.DB)

	docService := appsvc.NewDocumentService(docRepo, app.Store, app.Logger)
	queryService := appsvc.NewQueryService(docRepo, app.Generator, app.Logger)
	sessionService := appsvc.NewSessionService(sessionRepo, docRepo, queryRepo, queryService, app.Logger)

	urlTimeout := time.Duration(app.Config.Ingest.URLTimeoutSeconds) * time.Second
	docHandler := handler.NewDocumentHandler(docService, app.Ingestor, urlTimeout)
	queryHandler := handler.NewQueryHandler(queryService)
	sessionHandler := handler.NewSessionHandler(sessionService)

	v1 := router.Group("/api/v1")

	docGroup := v1.Group("/documents")
	docGroup.POST("", docHandler.Upload)
	docGroup.POST("/upload", docHandler.Upload)
	docGroup.POST("/url", docHandler.UploadURL)
	docGroup.GET("", docHandler.List)
	docGroup.GET("/:id", docHandler.Get)
	docGroup.DELETE("/:id", docHandler.Delete)

	v1.POST("/query", queryHandler.Ask)

	analysisGroup := v1.Group("/analysis")
	analysisGroup.POST("", sessionHandler.Create)
	analysisGroup.GET("/sessions", sessionHandler.List)
	analysisGroup.GET("/sessions/:id", sessionHandler.Get)
	analysisGroup.GET("/sessions/:id/documents", sessionHandler.Documents)
	analysisGroup.GET("/sessions/:id/chat_history", sessionHandler.History)
	analysisGroup.POST("/sessions/:id/query", sessionHandler.Ask)
	analysisGroup.DELETE("/sessions/:id", sessionHandler.Delete)

	return router
}
