package dto

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/xup/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorResponse_Builders(t *testing.T) {
	resp := NewErrorResponse(ErrorCodeNotFound, "doctrine \"kite\" not found").WithTraceID("abc")

	assert.Equal(t, ErrorCodeNotFound, resp.Error.Code)
	assert.Equal(t, "abc", resp.TraceID)
	assert.Nil(t, resp.Error.Details)

	resp.WithDetail("line", "").WithDetail("path", "doctrines[0]")
	assert.Equal(t, map[string]string{"path": "doctrines[0]"}, resp.Error.Details)

	body, err := json.Marshal(NewErrorResponse(ErrorCodeTimeout, "late"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"code":"TIMEOUT","message":"late"}}`, string(body))
}

func TestNewDoctrineResponse(t *testing.T) {
	resp := NewDoctrineResponse(domain.Doctrine{
		Name: "shield",
		Categories: []domain.Category{
			{Ships: []string{"Monitor"}},
			{},
			{Ships: []string{"Guardian", "Basilisk"}},
		},
	})

	assert.Equal(t, "shield", resp.Name)
	require.Len(t, resp.Categories, 3)
	assert.NotNil(t, resp.Categories[1].Ships)
	assert.Empty(t, resp.Categories[1].Ships)
	assert.Equal(t, []string{"Monitor", "Guardian", "Basilisk"}, resp.Ships)
}

func TestNewDoctrineResponse_NoCategories(t *testing.T) {
	resp := NewDoctrineResponse(domain.Doctrine{Name: "empty"})

	assert.NotNil(t, resp.Categories)
	assert.NotNil(t, resp.Ships)
}

func TestBindURIAndValidate(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		expectErr bool
	}{
		{name: "plain name", path: "/d/shield", expectErr: false},
		{name: "name too long", path: "/d/" + strings.Repeat("x", 300), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				uri DoctrineURI
				err error
			)

			r := gin.New()
			r.GET("/d/:name", func(c *gin.Context) {
				err = BindURIAndValidate(c, &uri)
				c.Status(http.StatusOK)
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			if tt.expectErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)

				var verr *domain.ValidationError
				require.ErrorAs(t, RequestError(err), &verr)
				assert.Equal(t, "name", verr.Field)
				assert.Equal(t, "must be at most 256 characters", verr.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "shield", uri.Name)
		})
	}
}

func TestValidate_Required(t *testing.T) {
	err := Validate(DoctrineURI{})

	require.Error(t, err)
	assert.EqualError(t, RequestError(err), "validation failed for name: this field is required")
}

func TestRequestError_NotAFieldError(t *testing.T) {
	err := RequestError(ErrBinding)

	assert.True(t, domain.IsValidation(err))
	assert.EqualError(t, err, "validation failed: binding failed")
}
