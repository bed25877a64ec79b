package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRichTextRouter(defaultMaxLength int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	controller := NewRichTextController(defaultMaxLength)
	router := gin.New()
	router.POST("/render", controller.Render)
	router.POST("/truncate", controller.Truncate)
	router.POST("/urls", controller.URLs)
	return router
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRichTextController_Render(t *testing.T) {
	router := setupRichTextRouter(0)

	t.Run("renders links and line breaks", func(t *testing.T) {
		w := postJSON(router, "/render", `{"text":"Visit https://a.com now\nThanks"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp RenderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t,
			`Visit <a href="https://a.com" target="_blank" rel="noopener noreferrer" class="rich-link">https://a.com</a> now<br>Thanks`,
			resp.HTML)
	})

	t.Run("escape option escapes markup", func(t *testing.T) {
		w := postJSON(router, "/render", `{"text":"<b>x</b>","escape":true}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp RenderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "&lt;b&gt;x&lt;/b&gt;", resp.HTML)
	})

	t.Run("missing text renders empty", func(t *testing.T) {
		w := postJSON(router, "/render", `{}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"html":""}`, w.Body.String())
	})

	t.Run("empty body renders empty", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/render", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"html":""}`, w.Body.String())
	})

	t.Run("empty chunked body renders empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = -1
		req.TransferEncoding = []string{"chunked"}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"html":""}`, w.Body.String())
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		w := postJSON(router, "/render", `{"text":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRichTextController_Truncate(t *testing.T) {
	t.Run("explicit max length", func(t *testing.T) {
		router := setupRichTextRouter(0)
		w := postJSON(router, "/truncate", `{"text":"abcdefgh","max_length":5}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"text":"abcde...","truncated":true}`, w.Body.String())
	})

	t.Run("uses configured default", func(t *testing.T) {
		router := setupRichTextRouter(3)
		w := postJSON(router, "/truncate", `{"text":"abcdefgh"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"text":"abc...","truncated":true}`, w.Body.String())
	})

	t.Run("falls back to 200 when no default is configured", func(t *testing.T) {
		router := setupRichTextRouter(0)
		long := strings.Repeat("x", 201)
		w := postJSON(router, "/truncate", `{"text":"`+long+`"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp TruncateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Truncated)
		assert.Equal(t, strings.Repeat("x", 200)+"...", resp.Text)
	})

	t.Run("short text is not truncated", func(t *testing.T) {
		router := setupRichTextRouter(0)
		w := postJSON(router, "/truncate", `{"text":"short","max_length":10}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"text":"short","truncated":false}`, w.Body.String())
	})

	t.Run("negative max length is rejected", func(t *testing.T) {
		router := setupRichTextRouter(0)
		w := postJSON(router, "/truncate", `{"text":"abc","max_length":-1}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "invalid_max_length", resp.Code)
	})
}

func TestRichTextController_URLs(t *testing.T) {
	router := setupRichTextRouter(0)

	t.Run("extracts urls in order", func(t *testing.T) {
		w := postJSON(router, "/urls", `{"text":"see http://x.io and https://y.io/p?q=1"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"urls":["http://x.io","https://y.io/p?q=1"],"has_urls":true}`, w.Body.String())
	})

	t.Run("no urls gives an empty list, not null", func(t *testing.T) {
		w := postJSON(router, "/urls", `{"text":"nothing"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"urls":[],"has_urls":false}`, w.Body.String())
	})
}
