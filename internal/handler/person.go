package handler

import (
	"net/http"
	"strconv"

	"familytree/internal/service"

	"github.com/gin-gonic/gin"
)

// PersonHandler serves person creation and edge mutation.
type PersonHandler struct {
	personService *service.PersonService
}

// NewPersonHandler creates a person handler.
func NewPersonHandler(personService *service.PersonService) *PersonHandler {
	return &PersonHandler{
		personService: personService,
	}
}

// CreatePerson creates a person.
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req service.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.personService.CreatePerson(req)
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, view)
}

// GetPerson returns one person.
func (h *PersonHandler) GetPerson(c *gin.Context) {
	view, err := h.personService.GetPerson(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, view)
}

// ListPeople returns a page of people.
func (h *PersonHandler) ListPeople(c *gin.Context) {
	var items []ErrorItem
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		items = append(items, ErrorItem{Field: "offset", Message: "must be an integer"})
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		items = append(items, ErrorItem{Field: "limit", Message: "must be an integer"})
	}
	if len(items) > 0 {
		ValidationError(c, items)
		return
	}

	people, total, err := h.personService.ListPeople(offset, limit)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, map[string]interface{}{
		"items":  people,
		"total":  total,
		"offset": offset,
		"limit":  limit,
	})
}

// SetMother sets the mother of a person.
func (h *PersonHandler) SetMother(c *gin.Context) {
	h.link(c, h.personService.SetMother)
}

// SetFather sets the father of a person.
func (h *PersonHandler) SetFather(c *gin.Context) {
	h.link(c, h.personService.SetFather)
}

// SetSpouse sets the spouse of a person.
func (h *PersonHandler) SetSpouse(c *gin.Context) {
	h.link(c, h.personService.SetSpouse)
}

// AddChild appends a child to a person.
func (h *PersonHandler) AddChild(c *gin.Context) {
	h.link(c, h.personService.AddChild)
}

func (h *PersonHandler) link(c *gin.Context, apply func(id string, req service.LinkRequest) (service.PersonView, error)) {
	var req service.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := apply(c.Param("id"), req)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, view)
}
