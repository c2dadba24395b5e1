package routes

import (
	"net/http"
	"time"

	"simple-memo/src/domain"
	"simple-memo/src/interface/handler"
	"simple-memo/src/logger"
	"simple-memo/src/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter creates a gin engine with global middleware and all API routes
func NewRouter(memoHandler *handler.MemoHandler, memoRepo domain.MemoRepository, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// グローバルmiddlewareを適用
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(allowedOrigins))

	// NoRouteハンドラー（404）
	r.NoRoute(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"uri":       c.Request.RequestURI,
			"client_ip": c.ClientIP(),
		}).Warn("404: ルートが見つかりません")
		c.JSON(http.StatusNotFound, handler.ErrorResponseDTO{Error: "Route not found"})
	})

	// NoMethodハンドラー（405）
	r.NoMethod(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"uri":       c.Request.RequestURI,
			"client_ip": c.ClientIP(),
		}).Warn("405: サポートされていないメソッド")
		c.JSON(http.StatusMethodNotAllowed, handler.ErrorResponseDTO{Error: "Method not allowed"})
	})

	SetupRoutes(r, memoHandler, memoRepo)
	return r
}

// SetupRoutes sets up all API routes
func SetupRoutes(r *gin.Engine, memoHandler *handler.MemoHandler, memoRepo domain.MemoRepository) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Hello World",
			"version": "1.0",
			"service": "simple-memo",
		})
	})

	// ヘルスチェック用のエンドポイント
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
			"memos":     memoRepo.Count(c.Request.Context()),
		})
	})

	v1 := r.Group("/api/v1")
	memos := v1.Group("/memos")
	{
		memos.POST("", memoHandler.CreateMemo)       // POST /api/v1/memos
		memos.GET("", memoHandler.ListMemos)         // GET /api/v1/memos
		memos.GET("/:id", memoHandler.GetMemo)       // GET /api/v1/memos/:id
		memos.PUT("/:id", memoHandler.UpdateMemo)    // PUT /api/v1/memos/:id
		memos.DELETE("/:id", memoHandler.DeleteMemo) // DELETE /api/v1/memos/:id
	}
}
