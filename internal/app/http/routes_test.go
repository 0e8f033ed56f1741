package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"linkbio/config"
	routes "linkbio/internal/app/http"
	"linkbio/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type client struct {
	t     *testing.T
	r     *gin.Engine
	token string
}

func newClient(t *testing.T) *client {
	t.Helper()
	testutil.UseDB(t)

	prevSecret, prevBase := config.JWT_SECRET, config.PUBLIC_BASE_URL
	config.JWT_SECRET = "routes-test-secret"
	config.PUBLIC_BASE_URL = "https://lnk.example"
	t.Cleanup(func() {
		config.JWT_SECRET = prevSecret
		config.PUBLIC_BASE_URL = prevBase
	})

	r := gin.New()
	routes.RegisterRoutes(r)
	return &client{t: t, r: r}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type blockJSON struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Content    json.RawMessage `json:"content"`
	OrderIndex int             `json:"order_index"`
	IsVisible  bool            `json:"is_visible"`
}

func (c *client) signUp(email string) {
	c.t.Helper()
	w := c.do(http.MethodPost, "/register", gin.H{"email": email, "password": "s3cretpass"})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())
	c.token = decode[map[string]string](c.t, w)["token"]
	require.NotEmpty(c.t, c.token)
}

func (c *client) createBlock(typ string, content any) blockJSON {
	c.t.Helper()
	w := c.do(http.MethodPost, "/blocks", gin.H{"type": typ, "content": content})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[blockJSON](c.t, w)
}

func TestHealth(t *testing.T) {
	c := newClient(t)
	w := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBlocksRequireAuth(t *testing.T) {
	c := newClient(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/blocks"},
		{http.MethodPost, "/blocks"},
		{http.MethodPut, "/blocks/reorder"},
		{http.MethodDelete, "/blocks/x"},
		{http.MethodGet, "/analytics"},
	} {
		w := c.do(tc.method, tc.path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}
}

func TestEditorFlow(t *testing.T) {
	c := newClient(t)
	c.signUp("jane@example.com")

	w := c.do(http.MethodPost, "/profile", gin.H{"username": "jane", "display_name": "Jane & Co"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	profile := decode[map[string]any](t, w)
	assert.Equal(t, "https://lnk.example/jane", profile["public_url"])
	assert.Equal(t, "Jane & Co", profile["display_name"])

	a := c.createBlock("text", gin.H{"title": "Hello"})
	b := c.createBlock("button", gin.H{"label": "Shop", "url": "https://shop.example.com/?a=1&b=2"})
	cc := c.createBlock("social_links", gin.H{"links": []gin.H{{"platform": "github", "url": "https://github.com/jane"}}})
	assert.Equal(t, []int{0, 1, 2}, []int{a.OrderIndex, b.OrderIndex, cc.OrderIndex})
	assert.JSONEq(t, `{"label":"Shop","url":"https://shop.example.com/?a=1&b=2"}`, string(b.Content))

	w = c.do(http.MethodPost, "/blocks", gin.H{"type": "button", "content": gin.H{"label": "", "url": "nope"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "label", decode[map[string]any](t, w)["field"])

	w = c.do(http.MethodPost, "/blocks", gin.H{"type": "carousel", "content": gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodGet, "/blocks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Blocks  []blockJSON `json:"blocks"`
		Version int64       `json:"version"`
	}](t, w)
	require.Len(t, list.Blocks, 3)
	version := list.Version

	// stale version is rejected and nothing moves
	w = c.do(http.MethodPut, "/blocks/reorder", gin.H{"block_ids": []string{cc.ID, a.ID, b.ID}, "version": version - 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = c.do(http.MethodPut, "/blocks/reorder", gin.H{"block_ids": []string{cc.ID, a.ID}, "version": version})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodPut, "/blocks/reorder", gin.H{"block_ids": []string{cc.ID, a.ID, b.ID}, "version": version})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Greater(t, int64(decode[map[string]any](t, w)["version"].(float64)), version)

	w = c.do(http.MethodPut, "/blocks/"+a.ID+"/visibility", gin.H{"is_visible": false})
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodPut, "/blocks/"+b.ID, gin.H{"content": gin.H{"label": "Store", "url": "https://shop.example.com"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"label":"Store","url":"https://shop.example.com"}`, string(decode[blockJSON](t, w).Content))

	// public page shows only visible blocks in order
	c.token = ""
	w = c.do(http.MethodGet, "/u/Jane", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[struct {
		Profile map[string]any `json:"profile"`
		Blocks  []blockJSON    `json:"blocks"`
	}](t, w)
	assert.Equal(t, "jane", page.Profile["username"])
	require.Len(t, page.Blocks, 2)
	assert.Equal(t, cc.ID, page.Blocks[0].ID)
	assert.Equal(t, b.ID, page.Blocks[1].ID)

	w = c.do(http.MethodPost, "/u/jane/blocks/"+b.ID+"/click", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = c.do(http.MethodPost, "/u/jane/blocks/"+a.ID+"/click", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "hidden blocks are not clickable")

	w = c.do(http.MethodGet, "/u/nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBlocksAreScopedToOwner(t *testing.T) {
	c := newClient(t)
	c.signUp("owner@example.com")
	blk := c.createBlock("text", gin.H{"title": "Mine"})

	c.signUp("other@example.com")
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/blocks/"+blk.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, "/blocks/"+blk.ID, nil).Code)
	assert.Equal(t, http.StatusBadRequest,
		c.do(http.MethodPut, "/blocks/reorder", gin.H{"block_ids": []string{blk.ID}}).Code)

	w := c.do(http.MethodGet, "/blocks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"blocks":[],"version":0}`, w.Body.String())
}

func TestLoginAndMe(t *testing.T) {
	c := newClient(t)
	c.signUp("jane@example.com")
	c.createBlock("text", gin.H{"title": "One"})

	c.token = ""
	w := c.do(http.MethodPost, "/login", gin.H{"email": "JANE@example.com", "password": "wrongpass1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodPost, "/login", gin.H{"email": "JANE@example.com", "password": "s3cretpass"})
	require.Equal(t, http.StatusOK, w.Code)
	c.token = decode[map[string]string](t, w)["token"]

	w = c.do(http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"user":{"id":1,"email":"jane@example.com","role":"user","auth_provider":"local","has_password":true},
		"profile":null,
		"stats":{"total":1,"visible":1}
	}`, w.Body.String())

	// users cannot reach admin routes
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodGet, "/admin/users", nil).Code)
}
