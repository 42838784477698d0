package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/m-mizutani/gt"
	httpCtrl "github.com/secmon-lab/prpulse/pkg/controller/http"
)

func testFS() http.FileSystem {
	return http.FS(fstest.MapFS{
		"index.html": {Data: []byte(`<!DOCTYPE html><html><body><main id="charts"></main></body></html>`)},
		"app.js":     {Data: []byte(`console.log("charts")`)},
		"style.css":  {Data: []byte(`body { margin: 0; }`)},
		"data.json":  {Data: []byte(`{}`)},
	})
}

func TestSPAHandler(t *testing.T) {
	handler, err := httpCtrl.NewSPAHandler(testFS())
	gt.NoError(t, err).Required()

	t.Run("serve existing static file", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/app.js", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Header().Get("Content-Type"), "application/javascript; charset=utf-8")
		gt.S(t, w.Body.String()).Contains("console.log")
	})

	t.Run("serve index.html for root path", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Header().Get("Content-Type"), "text/html; charset=utf-8")
		gt.Equal(t, w.Header().Get("Cache-Control"), "no-cache")
		gt.S(t, w.Body.String()).Contains(`<main id="charts">`)
	})

	t.Run("unknown paths fall back to index.html", func(t *testing.T) {
		for _, path := range []string{"/weeks", "/weeks/2025-W14", "/unknown/deep/path", "/../../etc/passwd"} {
			req := httptest.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			gt.Equal(t, w.Code, http.StatusOK)
			gt.Equal(t, w.Header().Get("Content-Type"), "text/html; charset=utf-8")
			gt.S(t, w.Body.String()).Contains("<html")
		}
	})
}

func TestSPAHandlerContentTypes(t *testing.T) {
	handler, err := httpCtrl.NewSPAHandler(testFS())
	gt.NoError(t, err).Required()

	testCases := []struct {
		path        string
		contentType string
	}{
		{"/app.js", "application/javascript; charset=utf-8"},
		{"/style.css", "text/css; charset=utf-8"},
		{"/data.json", "application/json; charset=utf-8"},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest("GET", tc.path, nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Header().Get("Content-Type"), tc.contentType)
	}
}

func TestNewSPAHandlerError(t *testing.T) {
	_, err := httpCtrl.NewSPAHandler(http.FS(fstest.MapFS{}))
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("failed to open index.html")
}
