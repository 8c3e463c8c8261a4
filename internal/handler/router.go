package handler

import (
	"log/slog"

	"familytree/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the API routes.
func NewRouter(personHandler *PersonHandler, relationshipHandler *RelationshipHandler, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	api := router.Group("/api/v1")
	{
		people := api.Group("/people")
		{
			people.POST("", personHandler.CreatePerson)
			people.GET("", personHandler.ListPeople)
			people.GET("/:id", personHandler.GetPerson)
			people.PUT("/:id/mother", personHandler.SetMother)
			people.PUT("/:id/father", personHandler.SetFather)
			people.PUT("/:id/spouse", personHandler.SetSpouse)
			people.POST("/:id/children", personHandler.AddChild)
			people.GET("/:id/relationships/:relationship", relationshipHandler.GetRelationship)
			people.GET("/:id/relatives/:relative", relationshipHandler.GetRelative)
		}

		api.GET("/relationships", relationshipHandler.ListRelationships)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
