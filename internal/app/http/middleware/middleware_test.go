package middleware

import (
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"linkbio/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func authRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id"), "role": c.GetString("role")})
	})
	r.GET("/admin", AuthMiddleware(), RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	prev := config.JWT_SECRET
	config.JWT_SECRET = "test-secret"
	t.Cleanup(func() { config.JWT_SECRET = prev })

	valid := signed(t, "test-secret", jwt.MapClaims{
		"user_id": 7, "email": "a@b.io", "role": "user",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	expired := signed(t, "test-secret", jwt.MapClaims{
		"user_id": 7, "exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signed(t, "other", jwt.MapClaims{
		"user_id": 7, "exp": time.Now().Add(time.Hour).Unix(),
	})
	noUser := signed(t, "test-secret", jwt.MapClaims{
		"email": "a@b.io", "exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", valid, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"no user id", "Bearer " + noUser, http.StatusUnauthorized},
	}

	r := authRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user_id":7,"role":"user"}`, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	prev := config.JWT_SECRET
	config.JWT_SECRET = "test-secret"
	t.Cleanup(func() { config.JWT_SECRET = prev })

	r := authRouter()
	for role, want := range map[string]int{"admin": http.StatusNoContent, "user": http.StatusForbidden} {
		tok := signed(t, "test-secret", jwt.MapClaims{
			"user_id": 1, "role": role, "exp": time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, role)
	}
}

func TestSanitizeNested(t *testing.T) {
	r := gin.New()
	r.POST("/echo", SanitizeAndCleanInputMiddleware(), func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", b)
	})

	body := `{"message":"<b>hi</b> & bye","history":[{"role":"user","content":"<script>x</script>ok"}],"url":"https://x.io/?a=1&b=2","bio":"&amp;lt;script&amp;gt;x&amp;lt;/script&amp;gt;ok","n":3}`
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"hi & bye","history":[{"role":"user","content":"ok"}],"url":"https://x.io/?a=1&b=2","bio":"ok","n":3}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"broken`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCleanStringEncodedMarkup(t *testing.T) {
	policy := bluemonday.StrictPolicy()

	encode := func(s string, layers int) string {
		for i := 0; i < layers; i++ {
			s = html.EscapeString(s)
		}
		return s
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "Tom & Jerry", "Tom & Jerry"},
		{"less than", "a < b", "a < b"},
		{"raw tag", "<script>alert(1)</script>hi", "hi"},
		{"encoded once", encode("<b>bold</b>", 1), "bold"},
		{"encoded four times", "&amp;amp;lt;script&amp;amp;gt;alert(1)&amp;amp;lt;/script&amp;amp;gt;", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanString(policy, tt.in))
		})
	}

	// deeper than the pass limit still comes back escaped, never as markup
	for _, layers := range []int{maxCleanRounds - 1, maxCleanRounds + 4} {
		out := cleanString(policy, encode("<script>alert(1)</script>", layers))
		assert.NotContains(t, out, "<", "layers=%d", layers)
	}
}

func TestSanitizeRejectsOversizedBody(t *testing.T) {
	r := gin.New()
	r.POST("/echo", SanitizeAndCleanInputMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	big := `{"message":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(big)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"message":"ok"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, p := range []string{"/ok", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(404), entries[1].ContextMap()["status"])
}
