package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sajtem/sajtem-backend/app/dto"
	businessflow "github.com/sajtem/sajtem-backend/business_flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubShortURLFlow struct {
	qrPNG []byte
	err   error
}

func (s *stubShortURLFlow) Create(ctx context.Context, req *dto.CreateShortURLRequest, createdBy *uuid.UUID, metadata *businessflow.ClientMetadata) (*dto.CreateShortURLResponse, error) {
	return nil, s.err
}

func (s *stubShortURLFlow) QRCode(ctx context.Context, code string, size int) ([]byte, error) {
	return s.qrPNG, s.err
}

type stubShortURLVisitFlow struct {
	resp *dto.ResolveShortURLResponse
	err  error
}

func (s *stubShortURLVisitFlow) Visit(ctx context.Context, code string, metadata *businessflow.ClientMetadata) (*dto.ResolveShortURLResponse, error) {
	return s.resp, s.err
}

func newShortURLTestApp(createFlow businessflow.ShortURLFlow, visitFlow businessflow.ShortURLVisitFlow) *fiber.App {
	h := NewShortURLHandler(createFlow, visitFlow)
	app := fiber.New()
	app.Get("/:code/qr", h.QRCode)
	app.Get("/:code", h.Resolve)
	return app
}

func TestResolveHandler_ReturnsOriginalURL(t *testing.T) {
	visit := &stubShortURLVisitFlow{resp: &dto.ResolveShortURLResponse{OriginalURL: "https://example.com/page"}}
	app := newShortURLTestApp(&stubShortURLFlow{}, visit)

	resp, err := app.Test(httptest.NewRequest("GET", "/abc12345", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "https://example.com/page")
}

func TestResolveHandler_UnknownAndExpiredBothAnswer404(t *testing.T) {
	for name, flowErr := range map[string]error{
		"unknown": businessflow.ErrShortURLNotFound,
		"expired": businessflow.ErrShortURLExpired,
	} {
		t.Run(name, func(t *testing.T) {
			app := newShortURLTestApp(&stubShortURLFlow{}, &stubShortURLVisitFlow{err: flowErr})

			resp, err := app.Test(httptest.NewRequest("GET", "/abc12345", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, "not found", string(body))
		})
	}
}

func TestQRCodeHandler_UnknownAndExpiredBothAnswer404(t *testing.T) {
	for name, flowErr := range map[string]error{
		"unknown": businessflow.ErrShortURLNotFound,
		"expired": businessflow.ErrShortURLExpired,
	} {
		t.Run(name, func(t *testing.T) {
			app := newShortURLTestApp(&stubShortURLFlow{err: flowErr}, &stubShortURLVisitFlow{})

			resp, err := app.Test(httptest.NewRequest("GET", "/abc12345/qr", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		})
	}
}
