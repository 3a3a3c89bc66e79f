package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/easayliu/media-url-resolver/internal/application/container"
	"github.com/easayliu/media-url-resolver/internal/domain/entities"
	"github.com/easayliu/media-url-resolver/internal/infrastructure/cache"
	"github.com/easayliu/media-url-resolver/internal/infrastructure/config"
	"github.com/easayliu/media-url-resolver/internal/infrastructure/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router    *gin.Engine
	container *container.ServiceContainer
	lib       *entities.MediaLibrary
	file      *entities.MediaFile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := repository.NewMediaRepository("")
	require.NoError(t, err)

	lib := &entities.MediaLibrary{Name: "Images", SiteName: "corporate"}
	require.NoError(t, catalog.UpsertLibrary(lib))
	file := &entities.MediaFile{Name: "hero", Extension: ".jpg", LibraryID: lib.ID, Path: "banners/hero.jpg"}
	require.NoError(t, catalog.UpsertFile(file))

	cfg := &config.Config{Media: config.MediaConfig{
		SiteName:        "corporate",
		CacheMinutes:    60,
		CleanupMinutes:  10,
		SkipSegments:    []string{"assets"},
		ResolvedMarkers: []string{"getmedia"},
	}}
	c, err := container.NewServiceContainerWithCatalog(cfg, catalog)
	require.NoError(t, err)

	return &fixture{router: SetupRoutesWithContainer(c), container: c, lib: lib, file: file}
}

func (f *fixture) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, 0, env.Code)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func resizeTarget(imageURL, width, height string) string {
	q := url.Values{}
	q.Set("url", imageURL)
	if width != "" {
		q.Set("width", width)
	}
	if height != "" {
		q.Set("height", height)
	}
	return "/api/v1/media/resize?" + q.Encode()
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestResize(t *testing.T) {
	f := newFixture(t)
	base := "/getmedia/" + f.file.GUID.String() + "/hero"

	tests := []struct {
		name          string
		url           string
		width, height string
		want          string
		resolved      bool
	}{
		{"原图", "/media/corporate/Images/banners/hero.jpg", "", "", base, true},
		{"宽高", "/media/corporate/Images/banners/hero.jpg", "200", "100", base + "?width=200&height=100&ext=.jpg", true},
		{"静态资源原样返回", "/media/corporate/assets/site.css", "200", "", "/media/corporate/assets/site.css", false},
		{"文件不存在原样返回", "/media/corporate/Images/missing.jpg", "200", "", "/media/corporate/Images/missing.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodGet, resizeTarget(tt.url, tt.width, tt.height), nil)
			require.Equal(t, http.StatusOK, w.Code)

			var got struct {
				URL      string `json:"url"`
				Original string `json:"original"`
				Resolved bool   `json:"resolved"`
			}
			decode(t, w, &got)
			assert.Equal(t, tt.want, got.URL)
			assert.Equal(t, tt.url, got.Original)
			assert.Equal(t, tt.resolved, got.Resolved)
		})
	}
}

func TestResize_InvalidDimensions(t *testing.T) {
	f := newFixture(t)

	for _, width := range []string{"abc", "-5"} {
		w := f.do(t, http.MethodGet, resizeTarget("/media/corporate/Images/banners/hero.jpg", width, ""), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	}
}

func TestRedirect(t *testing.T) {
	f := newFixture(t)

	q := url.Values{"url": {"/media/corporate/Images/banners/hero.jpg"}, "width": {"300"}}
	w := f.do(t, http.MethodGet, "/api/v1/media/redirect?"+q.Encode(), nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/getmedia/"+f.file.GUID.String()+"/hero?width=300&ext=.jpg", w.Header().Get("Location"))

	w = f.do(t, http.MethodGet, "/api/v1/media/redirect", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRedirect_ExternalURLRejected(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		url      string
		status   int
		location string
	}{
		{"外部绝对地址", "https://evil.example/x/y/z.png", http.StatusBadRequest, ""},
		{"协议相对地址", "//evil.example/x/y/z.png", http.StatusBadRequest, ""},
		{"站内未解析路径", "/media/corporate/Images/missing.jpg", http.StatusFound, "/media/corporate/Images/missing.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{"url": {tt.url}, "width": {"200"}}
			w := f.do(t, http.MethodGet, "/api/v1/media/redirect?"+q.Encode(), nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
}

func TestCacheEndpoints(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodGet, resizeTarget("/media/corporate/Images/banners/hero.jpg", "", ""), nil)

	var stats cache.Stats
	decode(t, f.do(t, http.MethodGet, "/api/v1/cache/stats", nil), &stats)
	assert.Equal(t, 2, stats.Items)

	var invalidated struct {
		Removed int `json:"removed"`
	}
	w := f.do(t, http.MethodPost, "/api/v1/cache/invalidate", map[string]string{"tag": cache.FileTag(f.file.GUID)})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &invalidated)
	assert.Equal(t, 1, invalidated.Removed)

	w = f.do(t, http.MethodPost, "/api/v1/cache/invalidate", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodDelete, "/api/v1/cache", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, f.container.GetTagCache().Stats().Items)
}

func TestCatalogEndpoints(t *testing.T) {
	f := newFixture(t)
	imageURL := "/media/corporate/Images/logo.png"

	// 先查询一次，文件不存在
	w := f.do(t, http.MethodGet, resizeTarget(imageURL, "", ""), nil)
	assert.Contains(t, w.Body.String(), `"resolved":false`)

	var created entities.MediaFile
	w = f.do(t, http.MethodPut, "/api/v1/catalog/files", entities.MediaFile{
		Name: "logo", Extension: ".png", LibraryID: f.lib.ID, Path: "logo.png",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &created)

	w = f.do(t, http.MethodGet, resizeTarget(imageURL, "", ""), nil)
	assert.Contains(t, w.Body.String(), "/getmedia/"+created.GUID.String()+"/logo")

	var listed struct {
		Count int `json:"count"`
	}
	decode(t, f.do(t, http.MethodGet, "/api/v1/catalog/libraries/1/files", nil), &listed)
	assert.Equal(t, 2, listed.Count)

	w = f.do(t, http.MethodDelete, "/api/v1/catalog/files/"+created.GUID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, resizeTarget(imageURL, "", ""), nil)
	assert.Contains(t, w.Body.String(), `"resolved":false`)

	w = f.do(t, http.MethodDelete, "/api/v1/catalog/files/not-a-guid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPut, "/api/v1/catalog/files", entities.MediaFile{Name: "x", Path: "x.png", LibraryID: 99})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogLibraries(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPut, "/api/v1/catalog/libraries", entities.MediaLibrary{Name: "Documents"})
	require.Equal(t, http.StatusOK, w.Code)

	var lib entities.MediaLibrary
	decode(t, w, &lib)
	assert.Equal(t, "corporate", lib.SiteName)

	var listed struct {
		Count int `json:"count"`
	}
	decode(t, f.do(t, http.MethodGet, "/api/v1/catalog/libraries", nil), &listed)
	assert.Equal(t, 2, listed.Count)

	w = f.do(t, http.MethodGet, "/api/v1/catalog/libraries/abc/files", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogSyncWithoutFile(t *testing.T) {
	f := newFixture(t)

	var result struct {
		Changed int `json:"changed"`
	}
	w := f.do(t, http.MethodPost, "/api/v1/catalog/sync", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &result)
	assert.Equal(t, 0, result.Changed)
}
