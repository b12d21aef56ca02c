package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func echoBody(c *gin.Context) {
	b, _ := io.ReadAll(c.Request.Body)
	c.String(http.StatusOK, string(b))
}

func TestSanitizeAndCleanInputMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantJSON    string
		wantRaw     string
	}{
		{
			name:        "nested_strings",
			contentType: "application/json",
			body:        `{"name":"<b>Ada</b>","tags":["<script>x</script>ok"],"meta":{"bio":"<i>hi</i>"},"age":3}`,
			wantStatus:  http.StatusOK,
			wantJSON:    `{"name":"Ada","tags":["ok"],"meta":{"bio":"hi"},"age":3}`,
		},
		{
			name:        "malformed",
			contentType: "application/json",
			body:        `{"name":`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "empty_body_passes",
			contentType: "application/json",
			body:        "",
			wantStatus:  http.StatusOK,
			wantRaw:     "",
		},
		{
			name:        "non_json_untouched",
			contentType: "text/plain",
			body:        "<b>raw</b>",
			wantStatus:  http.StatusOK,
			wantRaw:     "<b>raw</b>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/x", SanitizeAndCleanInputMiddleware(), echoBody)

			req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			switch {
			case tt.wantJSON != "":
				assert.JSONEq(t, tt.wantJSON, w.Body.String())
			case tt.wantStatus == http.StatusOK:
				assert.Equal(t, tt.wantRaw, w.Body.String())
			}
		})
	}
}

func TestSanitizeAndCleanInputMiddleware_SkipsGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", SanitizeAndCleanInputMiddleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
