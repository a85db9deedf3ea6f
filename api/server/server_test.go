package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"toolbox/api/dto"
	"toolbox/api/handlers"
	"toolbox/api/service"
	"toolbox/api/session"
	"toolbox/catalog"
	"toolbox/converter"
	"toolbox/pool"
)

func newTestServer(t *testing.T, healthCheck func(context.Context) error) *httptest.Server {
	logger := zaptest.NewLogger(t)
	store := session.NewMemoryStore(time.Hour)
	svc := service.NewImageService(store, converter.NewConverter(logger), pool.NewLimiter(2), service.ImageServiceConfig{
		DefaultQuality: 90,
		MaxUploadSize:  1 << 20,
	}, logger)

	today := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	h := Handlers{
		Catalog:    handlers.NewCatalogHandler(catalog.Default(), 5<<20, logger),
		Image:      handlers.NewImageHandler(svc, 1<<20, logger),
		Calculator: handlers.NewCalculatorHandler(func() time.Time { return today }, time.UTC, logger),
		Text:       handlers.NewTextHandler(logger),
		Health:     healthCheck,
	}

	srv := httptest.NewServer(Routes(h, logger))
	t.Cleanup(srv.Close)
	return srv
}

func transparentPNG(t *testing.T) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 80, 40))
	for y := 0; y < 40; y++ {
		for x := 40; x < 80; x++ {
			img.Set(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func upload(t *testing.T, srv *httptest.Server, tool, sessionID string, data []byte) *http.Response {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="banner.final.png"`)
	h.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", srv.URL+"/api/tools/"+tool+"/image", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if sessionID != "" {
		req.Header.Set(handlers.SessionHeader, sessionID)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestServer_ImageToJPGFlow(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := upload(t, srv, "image-to-jpg", "", transparentPNG(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	sid := resp.Header.Get(handlers.SessionHeader)
	require.NotEmpty(t, sid)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

	var uploaded dto.ImageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))
	assert.Equal(t, 80, uploaded.Width)

	preview, err := http.Get(srv.URL + uploaded.PreviewURL)
	require.NoError(t, err)
	preview.Body.Close()
	assert.Equal(t, http.StatusOK, preview.StatusCode)
	assert.Equal(t, "image/png", preview.Header.Get("Content-Type"))

	req, err := http.NewRequest("POST", srv.URL+"/api/tools/image-to-jpg/process", strings.NewReader("quality=90"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(handlers.SessionHeader, sid)
	processed, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer processed.Body.Close()

	require.Equal(t, http.StatusOK, processed.StatusCode)
	assert.Equal(t, "attachment; filename=banner.jpg", processed.Header.Get("Content-Disposition"))

	out, err := jpeg.Decode(processed.Body)
	require.NoError(t, err)
	r, g, b, _ := out.At(5, 20).RGBA()
	assert.True(t, r>>8 > 240 && g>>8 > 240 && b>>8 > 240, "transparent area must be white")
}

func TestServer_ClearThenProcessIsNotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := upload(t, srv, "image-to-png", "s1", transparentPNG(t))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req, _ := http.NewRequest("DELETE", srv.URL+"/api/tools/image-to-png/image", nil)
	req.Header.Set(handlers.SessionHeader, "s1")
	cleared, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	cleared.Body.Close()
	assert.Equal(t, http.StatusNoContent, cleared.StatusCode)

	req, _ = http.NewRequest("POST", srv.URL+"/api/tools/image-to-png/process", nil)
	req.Header.Set(handlers.SessionHeader, "s1")
	processed, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	processed.Body.Close()
	assert.Equal(t, http.StatusNotFound, processed.StatusCode)
}

func TestServer_UploadToNonImageTool(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := upload(t, srv, "bmi-calculator", "s1", transparentPNG(t))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Calculators(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.PostForm(srv.URL+"/api/tools/age-calculator", url.Values{"birth_date": {"2000-01-01"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var age dto.AgeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&age))
	assert.Equal(t, 24, age.Years)
	assert.Equal(t, "2024-01-01", age.NextBirthday)
	assert.Equal(t, 0, age.DaysUntilBirthday)

	resp2, err := http.PostForm(srv.URL+"/api/tools/bmi-calculator", url.Values{"weight": {"70"}})
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestServer_CatalogRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/tools/word-counter")
	require.NoError(t, err)
	defer resp.Body.Close()

	var tool dto.ToolResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tool))
	assert.True(t, tool.Found)
	assert.Equal(t, "Text Tools", tool.Category)

	resp2, err := http.Post(srv.URL+"/api/tools/word-counter", "application/json", strings.NewReader(`{"text":"one two"}`))
	require.NoError(t, err)
	defer resp2.Body.Close()

	var count dto.WordCountResponse
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&count))
	assert.Equal(t, 2, count.Stats.Words)
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	down := newTestServer(t, func(context.Context) error { return errors.New("redis down") })
	resp, err = http.Get(down.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
