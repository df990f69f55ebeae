package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Sowmiya2022/clinical-bert-api/internal/adapter/http/handler"
	"github.com/Sowmiya2022/clinical-bert-api/internal/adapter/http/middleware"
	"github.com/Sowmiya2022/clinical-bert-api/internal/usecase"
)

// Setup creates and configures the Gin router
func Setup(assertionUC usecase.AssertionUsecase, modelName string, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.ProcessTime())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics())

	// Handlers
	infoHandler := handler.NewInfoHandler(modelName)
	healthHandler := handler.NewHealthHandler(assertionUC)
	predictHandler := handler.NewPredictHandler(assertionUC, logger)

	// Meta endpoints
	router.GET("/", infoHandler.Info)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Inference endpoints
	router.POST("/predict", predictHandler.Predict)
	router.POST("/predict/batch", predictHandler.PredictBatch)

	return router
}
