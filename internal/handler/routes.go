package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/school-inventory-api/internal/middleware"
)

// Handlers groups every API handler mounted by RegisterRoutes. Reports is
// optional and its routes are skipped when nil.
type Handlers struct {
	Auth         *AuthHandler
	Materials    *MaterialHandler
	Books        *BookHandler
	Categories   *TaxonomyHandler
	Publishers   *TaxonomyHandler
	Requests     *RequestHandler
	Users        *UserHandler
	SecurityLogs *SecurityLogHandler
	Reports      *ReportHandler
}

// RegisterRoutes mounts the inventory API on api. Every route except login
// and refresh requires a valid access token. Administrative mutations are
// written to audit.
func RegisterRoutes(api gin.IRouter, h Handlers, tokens middleware.TokenValidator, audit *zap.Logger) {
	api.POST("/login", h.Auth.Login)
	api.POST("/refresh", h.Auth.Refresh)

	secured := api.Group("")
	secured.Use(middleware.JWT(tokens))
	admin := middleware.AdminOnly()

	secured.POST("/logout", h.Auth.Logout)
	secured.GET("/current-user", h.Auth.CurrentUser)
	secured.POST("/change-password", h.Auth.ChangePassword)

	secured.GET("/materials", h.Materials.List)
	secured.POST("/materials", h.Materials.Create)
	secured.GET("/materials/:id", h.Materials.Get)
	secured.PUT("/materials/:id", h.Materials.Update)
	secured.DELETE("/materials/:id", h.Materials.Delete)
	secured.PATCH("/materials/:id/quantity", h.Materials.AdjustQuantity)
	secured.GET("/categories", h.Materials.Categories)
	secured.GET("/stats", h.Materials.Stats)

	secured.GET("/books", h.Books.List)
	secured.POST("/books", h.Books.Create)
	secured.GET("/books/grades", h.Books.Grades)
	secured.GET("/books/publishers", h.Books.Publishers)
	secured.GET("/books/stats", h.Books.Stats)
	secured.GET("/books/:id", h.Books.Get)
	secured.PUT("/books/:id", h.Books.Update)
	secured.DELETE("/books/:id", h.Books.Delete)
	secured.PATCH("/books/:id/quantity", h.Books.AdjustQuantity)

	registerTaxonomy(secured.Group("/admin/categories", admin), h.Categories, audit, "category")
	registerTaxonomy(secured.Group("/admin/publishers", admin), h.Publishers, audit, "publisher")

	secured.GET("/requests", h.Requests.List)
	secured.POST("/requests", h.Requests.Submit)
	secured.GET("/requests/stats", admin, h.Requests.Stats)
	secured.GET("/requests/history/:user_id", h.Requests.History)
	secured.GET("/requests/:id", h.Requests.Get)
	secured.PUT("/requests/:id", admin, middleware.Audit(audit, "request.process"), h.Requests.Process)
	secured.DELETE("/requests/:id", h.Requests.Cancel)

	users := secured.Group("/users", admin)
	users.GET("", h.Users.List)
	users.POST("", middleware.Audit(audit, "user.create"), h.Users.Create)
	users.GET("/:id", h.Users.Get)
	users.PUT("/:id", middleware.Audit(audit, "user.update"), h.Users.Update)
	users.DELETE("/:id", middleware.Audit(audit, "user.delete"), h.Users.Delete)

	secured.GET("/security-logs", admin, h.SecurityLogs.List)

	if h.Reports != nil {
		secured.GET("/reports/materials", h.Reports.Materials)
		secured.GET("/reports/books", h.Reports.Books)
	}
}

func registerTaxonomy(group *gin.RouterGroup, h *TaxonomyHandler, audit *zap.Logger, kind string) {
	group.GET("", h.List)
	group.POST("", middleware.Audit(audit, kind+".create"), h.Create)
	group.PUT("", middleware.Audit(audit, kind+".rename"), h.Rename)
	group.DELETE("", middleware.Audit(audit, kind+".delete"), h.Delete)
	group.DELETE("/:name", middleware.Audit(audit, kind+".delete"), h.Delete)
}
