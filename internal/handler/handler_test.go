package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"familytree/internal/family"
	"familytree/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tree := family.NewTree()
	personService := service.NewPersonService(tree, nil, service.NewRequestValidator(), logger)
	relationshipService := service.NewRelationshipService(tree, logger)
	return NewRouter(NewPersonHandler(personService), NewRelationshipHandler(relationshipService), logger)
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []ErrorItem     `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func createPeople(t *testing.T, router *gin.Engine, people ...service.CreatePersonRequest) {
	t.Helper()
	for _, p := range people {
		w := performRequest(router, http.MethodPost, "/api/v1/people", p)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func TestCreateAndGetPerson(t *testing.T) {
	router := newTestRouter()
	createPeople(t, router, service.CreatePersonRequest{ID: "zim", Name: "Zim", Gender: "male"})

	w := performRequest(router, http.MethodGet, "/api/v1/people/zim", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view service.PersonView
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &view))
	assert.Equal(t, "Zim", view.Name)
	assert.Equal(t, "male", view.Gender)

	w = performRequest(router, http.MethodGet, "/api/v1/people/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePersonErrors(t *testing.T) {
	router := newTestRouter()

	w := performRequest(router, http.MethodPost, "/api/v1/people", service.CreatePersonRequest{ID: "a", Name: "A", Gender: "Male"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodPost, "/api/v1/people", service.CreatePersonRequest{ID: "a", Gender: "male"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "name", env.Errors[0].Field)

	createPeople(t, router, service.CreatePersonRequest{ID: "a", Name: "A", Gender: "male"})
	w = performRequest(router, http.MethodPost, "/api/v1/people", service.CreatePersonRequest{ID: "a", Name: "A", Gender: "male"})
	assert.Equal(t, http.StatusConflict, w.Code)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/people", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLinkAndQuery(t *testing.T) {
	router := newTestRouter()
	createPeople(t, router,
		service.CreatePersonRequest{ID: "zim", Name: "Zim", Gender: "male"},
		service.CreatePersonRequest{ID: "wife", Name: "Wife", Gender: "female"},
		service.CreatePersonRequest{ID: "mil", Name: "MIL", Gender: "female"},
		service.CreatePersonRequest{ID: "tom", Name: "BroTom", Gender: "male"},
	)

	steps := []struct {
		method, path, id string
	}{
		{http.MethodPut, "/api/v1/people/zim/spouse", "wife"},
		{http.MethodPut, "/api/v1/people/wife/mother", "mil"},
		{http.MethodPost, "/api/v1/people/mil/children", "wife"},
		{http.MethodPost, "/api/v1/people/mil/children", "tom"},
	}
	for _, s := range steps {
		w := performRequest(router, s.method, s.path, service.LinkRequest{ID: s.id})
		require.Equal(t, http.StatusOK, w.Code, "%s %s: %s", s.method, s.path, w.Body.String())
	}

	w := performRequest(router, http.MethodGet, "/api/v1/people/zim/relationships/brother_in_law", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var people []service.PersonView
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &people))
	require.Len(t, people, 1)
	assert.Equal(t, "BroTom", people[0].Name)

	w = performRequest(router, http.MethodGet, "/api/v1/people/zim/relationships/sister_in_law", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &people))
	assert.Empty(t, people)

	w = performRequest(router, http.MethodGet, "/api/v1/people/zim/relationships/unknown_token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(decode(t, w).Data))

	w = performRequest(router, http.MethodGet, "/api/v1/people/zim/relatives/spouse_mother", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var relative struct {
		Person *service.PersonView `json:"person"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &relative))
	require.NotNil(t, relative.Person)
	assert.Equal(t, "MIL", relative.Person.Name)

	w = performRequest(router, http.MethodGet, "/api/v1/people/zim/relatives/maternal_grandmother", nil)
	require.Equal(t, http.StatusOK, w.Code)
	relative.Person = nil
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &relative))
	assert.Nil(t, relative.Person)
}

func TestLinkErrors(t *testing.T) {
	router := newTestRouter()
	createPeople(t, router,
		service.CreatePersonRequest{ID: "zim", Name: "Zim", Gender: "male"},
		service.CreatePersonRequest{ID: "bob", Name: "Bob", Gender: "male"},
	)

	w := performRequest(router, http.MethodPut, "/api/v1/people/zim/mother", service.LinkRequest{ID: "bob"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodPost, "/api/v1/people/zim/children", service.LinkRequest{ID: "not-a-person"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Message, "not a person")

	w = performRequest(router, http.MethodPut, "/api/v1/people/ghost/father", service.LinkRequest{ID: "bob"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, http.MethodGet, "/api/v1/people/ghost/relationships/son", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPeopleAndRelationships(t *testing.T) {
	router := newTestRouter()
	createPeople(t, router,
		service.CreatePersonRequest{ID: "a", Name: "A", Gender: "male"},
		service.CreatePersonRequest{ID: "b", Name: "B", Gender: "female"},
	)

	w := performRequest(router, http.MethodGet, "/api/v1/people?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []service.PersonView `json:"items"`
		Total int                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].ID)

	w = performRequest(router, http.MethodGet, "/api/v1/people?offset=1&limit=9223372036854775807", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b", page.Items[0].ID)

	w = performRequest(router, http.MethodGet, "/api/v1/people?offset=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodGet, "/api/v1/people?offset=-1&limit=-1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	require.Len(t, env.Errors, 2)
	assert.Equal(t, "offset", env.Errors[0].Field)
	assert.Equal(t, "limit", env.Errors[1].Field)

	w = performRequest(router, http.MethodGet, "/api/v1/relationships", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var kinds []string
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &kinds))
	assert.Len(t, kinds, 9)
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestRouter()

	w := performRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
