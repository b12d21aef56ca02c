package content

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGranted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/courses", Granted("courses"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"feature":"courses","access":"granted"}`, w.Body.String())
}
