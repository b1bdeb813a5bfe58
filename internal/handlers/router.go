package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/critiq-labs/review-service/internal/services"
	"github.com/critiq-labs/review-service/internal/utils"
)

// HandlerManager owns the handlers and wires them into the router.
type HandlerManager struct {
	base     BaseHandler
	auth     *AuthHandler
	catalog  *CatalogHandler
	titles   *TitleHandler
	reviews  *ReviewHandler
	comments *CommentHandler
	users    *UserHandler

	authMW   *AuthMiddleware
	services *services.ServiceManager
}

func NewHandlerManager(sm *services.ServiceManager, authMW *AuthMiddleware, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		base:     NewBaseHandler(logger),
		auth:     NewAuthHandler(sm.Auth, logger),
		catalog:  NewCatalogHandler(sm.Catalog, logger),
		titles:   NewTitleHandler(sm.Titles, logger),
		reviews:  NewReviewHandler(sm.Reviews, logger),
		comments: NewCommentHandler(sm.Comment, logger),
		users:    NewUserHandler(sm.Users, logger),
		authMW:   authMW,
		services: sm,
	}
}

// SetupRoutes registers the full route table under /api/v1.
func (m *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", m.health)

	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", m.auth.Signup)
		authGroup.POST("/token", m.auth.Token)
	}

	optional := m.authMW.Optional()
	required := m.authMW.Required()

	categories := api.Group("/categories")
	{
		categories.GET("", optional, m.catalog.ListCategories)
		categories.POST("", required, m.catalog.CreateCategory)
		categories.DELETE("/:slug", required, m.catalog.DeleteCategory)
		m.denyUnsupported(categories, categoryCapabilities, "/:slug")
	}

	genres := api.Group("/genres")
	{
		genres.GET("", optional, m.catalog.ListGenres)
		genres.POST("", required, m.catalog.CreateGenre)
		genres.DELETE("/:slug", required, m.catalog.DeleteGenre)
		m.denyUnsupported(genres, genreCapabilities, "/:slug")
	}

	titles := api.Group("/titles")
	{
		titles.GET("", optional, m.titles.List)
		titles.POST("", required, m.titles.Create)
		titles.GET("/:title_id", optional, m.titles.Get)
		titles.PATCH("/:title_id", required, m.titles.Update)
		titles.DELETE("/:title_id", required, m.titles.Delete)
		m.denyUnsupported(titles, titleCapabilities, "/:title_id")

		reviews := titles.Group("/:title_id/reviews")
		{
			reviews.GET("", optional, m.reviews.List)
			reviews.POST("", required, m.reviews.Create)
			reviews.GET("/:review_id", optional, m.reviews.Get)
			reviews.PATCH("/:review_id", required, m.reviews.Update)
			reviews.DELETE("/:review_id", required, m.reviews.Delete)

			comments := reviews.Group("/:review_id/comments")
			{
				comments.GET("", optional, m.comments.List)
				comments.POST("", required, m.comments.Create)
				comments.GET("/:comment_id", optional, m.comments.Get)
				comments.PATCH("/:comment_id", required, m.comments.Update)
				comments.DELETE("/:comment_id", required, m.comments.Delete)
			}
		}
	}

	users := api.Group("/users", required)
	{
		users.GET("/me", m.users.GetSelf)
		users.PATCH("/me", m.users.UpdateSelf)

		users.GET("", m.users.List)
		users.POST("", m.users.Create)
		users.GET("/:username", m.users.Get)
		users.PATCH("/:username", m.users.Update)
		users.DELETE("/:username", m.users.Delete)
	}

}

// denyUnsupported registers explicit denial handlers for the detail verbs a
// resource kind rules out. Full replacement (PUT) is denied for every catalog
// kind, admins included.
func (m *HandlerManager) denyUnsupported(group *gin.RouterGroup, caps Capabilities, detailPath string) {
	group.PUT(detailPath, m.base.MethodNotAllowed)
	if !caps.Retrieve {
		group.GET(detailPath, m.base.NotSupported)
	}
	if !caps.PartialUpdate {
		group.PATCH(detailPath, m.base.NotSupported)
	}
}

func (m *HandlerManager) health(c *gin.Context) {
	if err := m.services.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
