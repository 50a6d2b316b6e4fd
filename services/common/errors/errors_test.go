package errors_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/vendora-platform/backend/services/common/errors"
)

func serve(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorMiddleware_RendersAttachedError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	r.GET("/conflict", func(c *gin.Context) {
		c.Error(apperrors.New(http.StatusConflict, "already processed", nil))
	})

	w := serve(r, "/conflict")

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "already processed", resp.Message)
}

func TestErrorMiddleware_WrapsForeignErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	r.GET("/boom", func(c *gin.Context) {
		c.Error(fmt.Errorf("pq: connection refused"))
	})

	w := serve(r, "/boom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// the wrapped cause must not reach the client
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestErrorMiddleware_LeavesWrittenResponsesAlone(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	r.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		c.Error(apperrors.New(http.StatusInternalServerError, "late error", nil))
	})

	w := serve(r, "/written")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("row not found")
	err := apperrors.New(http.StatusNotFound, "cart not found", cause)

	assert.Equal(t, "cart not found: row not found", err.Error())
	assert.Equal(t, cause, err.Unwrap())
}
