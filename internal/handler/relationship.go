package handler

import (
	"familytree/internal/service"

	"github.com/gin-gonic/gin"
)

// RelationshipHandler serves derived relationship queries.
type RelationshipHandler struct {
	relationshipService *service.RelationshipService
}

// NewRelationshipHandler creates a relationship handler.
func NewRelationshipHandler(relationshipService *service.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{
		relationshipService: relationshipService,
	}
}

// GetRelationship lists the relatives of a person for one relationship.
func (h *RelationshipHandler) GetRelationship(c *gin.Context) {
	people, err := h.relationshipService.Query(c.Param("id"), c.Param("relationship"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, people)
}

// GetRelative returns a single relative, or null when none is recorded.
func (h *RelationshipHandler) GetRelative(c *gin.Context) {
	person, err := h.relationshipService.Relative(c.Param("id"), c.Param("relative"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, map[string]interface{}{
		"relative": c.Param("relative"),
		"person":   person,
	})
}

// ListRelationships lists the relationship vocabulary.
func (h *RelationshipHandler) ListRelationships(c *gin.Context) {
	Success(c, h.relationshipService.ListKinds())
}
