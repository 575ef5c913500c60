package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/textproto"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// newTestRouter mounts routes behind the error middleware. A non-nil caller is
// placed on the context the way the auth middleware would.
func newTestRouter(caller *uuid.UUID, mount func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(logger.Nop()))
	if caller != nil {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", *caller)
			c.Set("email", "caller@example.com")
			c.Next()
		})
	}
	mount(r)
	return r
}

func serve(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func isActor(id uuid.UUID) interface{} {
	return mock.MatchedBy(func(actor *uuid.UUID) bool { return actor != nil && *actor == id })
}

func TestListRecipesParsesQuery(t *testing.T) {
	caller := uuid.New()
	recipes := new(mockRecipeService)
	h := NewRecipeHandler(recipes)
	r := newTestRouter(&caller, func(r *gin.Engine) { r.GET("/recipes", h.ListRecipes) })

	want := service.ListFilter{Mine: true, Tag: "Dessert", Query: "pie", Limit: 5, Offset: 10}
	recipes.On("List", mock.Anything, isActor(caller), want).Return([]service.EnrichedRecipe{}, nil).Once()

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/recipes?mine=true&tag=Dessert&q=pie&limit=5&offset=10", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "recipes")
	recipes.AssertExpectations(t)
}

func TestListRecipesRejectsBadQuery(t *testing.T) {
	recipes := new(mockRecipeService)
	h := NewRecipeHandler(recipes)
	r := newTestRouter(nil, func(r *gin.Engine) { r.GET("/recipes", h.ListRecipes) })

	tests := []struct {
		query string
		field string
	}{
		{"limit=abc", "limit"},
		{"offset=1.5", "offset"},
		{"mine=maybe", "mine"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w, body := serve(r, httptest.NewRequest(http.MethodGet, "/recipes?"+tt.query, nil))
			require.Equal(t, http.StatusBadRequest, w.Code)
			details := body["details"].(map[string]interface{})
			assert.Contains(t, details, tt.field)
		})
	}
	recipes.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestStoreErrorIsHidden(t *testing.T) {
	recipes := new(mockRecipeService)
	h := NewRecipeHandler(recipes)
	r := newTestRouter(nil, func(r *gin.Engine) { r.GET("/recipes/:id", h.GetRecipe) })

	id := uuid.New()
	recipes.On("Get", mock.Anything, (*uuid.UUID)(nil), id).
		Return(nil, apperrors.Store(errors.New("pq: connection refused"))).Once()

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/recipes/"+id.String(), nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "something went wrong, please try again", body["error"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestCreateRecipeDecodesBody(t *testing.T) {
	caller := uuid.New()
	recipes := new(mockRecipeService)
	h := NewRecipeHandler(recipes)
	r := newTestRouter(&caller, func(r *gin.Engine) { r.POST("/recipes", h.CreateRecipe) })

	created := &models.Recipe{ID: uuid.New(), Title: "Apple Pie", Slug: "apple-pie", UserID: caller}
	recipes.On("Create", mock.Anything, isActor(caller), mock.MatchedBy(func(in service.RecipeInput) bool {
		return in.Title == "Apple Pie" && in.IsPublic != nil && !*in.IsPublic && len(in.Tags) == 2
	})).Return(created, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/recipes",
		strings.NewReader(`{"title":"Apple Pie","is_public":false,"tags":["dessert","baking"]}`))
	req.Header.Set("Content-Type", "application/json")
	w, body := serve(r, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "apple-pie", body["slug"])
	recipes.AssertExpectations(t)

	req = httptest.NewRequest(http.MethodPost, "/recipes", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	w, body = serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", body["error"])
}

func TestUploadImageSniffsContentType(t *testing.T) {
	caller := uuid.New()
	recipes := new(mockRecipeService)
	h := NewRecipeHandler(recipes)
	r := newTestRouter(&caller, func(r *gin.Engine) { r.POST("/recipes/:id/image", h.UploadImage) })

	id := uuid.New()
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	recipes.On("SetImage", mock.Anything, isActor(caller), id, mock.MatchedBy(func(u service.Upload) bool {
		return u.Body != nil && u.ContentType == "image/png" && u.Filename == "pie.bin" && u.Size == int64(len(png))
	})).Return(&models.Recipe{ID: id, ImageURL: "https://cdn.example.com/pie.png"}, nil).Once()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "pie.bin")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/recipes/"+id.String()+"/image", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w, body := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://cdn.example.com/pie.png", body["image_url"])
	recipes.AssertExpectations(t)
}

func TestUploadImageRejectsMismatchedType(t *testing.T) {
	caller := uuid.New()
	recipes := new(mockRecipeService)
	h := NewRecipeHandler(recipes)
	r := newTestRouter(&caller, func(r *gin.Engine) { r.POST("/recipes/:id/image", h.UploadImage) })

	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0}, 32)...)
	tests := []struct {
		name string
		data []byte
	}{
		{"jpeg bytes", jpeg},
		{"html bytes", []byte("<html><script>alert(1)</script></html>")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			form := multipart.NewWriter(&buf)
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition", `form-data; name="file"; filename="pie.png"`)
			header.Set("Content-Type", "image/png")
			part, err := form.CreatePart(header)
			require.NoError(t, err)
			_, err = part.Write(tt.data)
			require.NoError(t, err)
			require.NoError(t, form.Close())

			req := httptest.NewRequest(http.MethodPost, "/recipes/"+uuid.NewString()+"/image", &buf)
			req.Header.Set("Content-Type", form.FormDataContentType())
			w, body := serve(r, req)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, body["details"].(map[string]interface{})["file"], "does not match")
		})
	}
	recipes.AssertNotCalled(t, "SetImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadImageRequiresFile(t *testing.T) {
	caller := uuid.New()
	recipes := new(mockRecipeService)
	h := NewRecipeHandler(recipes)
	r := newTestRouter(&caller, func(r *gin.Engine) { r.POST("/recipes/:id/image", h.UploadImage) })

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("note", "no file here"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/recipes/"+uuid.NewString()+"/image", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w, body := serve(r, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "is required", body["details"].(map[string]interface{})["file"])
	recipes.AssertNotCalled(t, "SetImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMeWithoutProfile(t *testing.T) {
	caller := uuid.New()
	profiles := new(mockProfileService)
	h := NewAuthHandler(nil, profiles)
	r := newTestRouter(&caller, func(r *gin.Engine) { r.GET("/me", h.Me) })

	profiles.On("Get", mock.Anything, caller).Return(nil, apperrors.NotFound("profile not found")).Once()
	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, caller.String(), body["id"])
	assert.Equal(t, "caller@example.com", body["email"])
	assert.Nil(t, body["profile"])

	profiles.On("Get", mock.Anything, caller).Return(nil, apperrors.Store(errors.New("timeout"))).Once()
	w, _ = serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUsernameAvailable(t *testing.T) {
	profiles := new(mockProfileService)
	h := NewProfileHandler(profiles)
	r := newTestRouter(nil, func(r *gin.Engine) {
		r.GET("/profiles/username/:username/available", h.UsernameAvailable)
	})

	profiles.On("UsernameAvailable", mock.Anything, "baker").Return(true, nil).Once()
	profiles.On("UsernameAvailable", mock.Anything, "x").
		Return(false, apperrors.ValidationWithDetails("invalid input", map[string]string{"username": "too short"})).Once()

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/profiles/username/baker/available", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["available"])

	w, _ = serve(r, httptest.NewRequest(http.MethodGet, "/profiles/username/x/available", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	profiles.AssertExpectations(t)
}
