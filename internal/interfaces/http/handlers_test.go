package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despensa-api/internal/application/catalog"
	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/application/inventory"
	"github.com/jhoicas/despensa-api/internal/application/usecase"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/infrastructure/memory"
	"github.com/jhoicas/despensa-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/despensa-api/internal/interfaces/http"
)

const leiteID = "11111111-1111-4111-8111-111111111111"

type fakeExtractor struct {
	items []dto.RawExtraction
	err   error
	block bool
}

func (f *fakeExtractor) Extract(ctx context.Context, _ string) ([]dto.RawExtraction, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.items, f.err
}

type fakeTranscriber struct{ language string }

func (f *fakeTranscriber) Transcribe(_ context.Context, audio io.Reader, _, _, language string) (string, error) {
	f.language = language
	_, _ = io.Copy(io.Discard, audio)
	return "meio quilo de arroz", nil
}

type testServer struct {
	app         *fiber.App
	store       *memory.Store
	extractor   *fakeExtractor
	transcriber *fakeTranscriber
	token       string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	store.Products().Seed(&entity.GenericProduct{ID: leiteID, Name: "Leite integral", NormalizedName: "leite integral"})
	resolver := catalog.NewResolver(store.Products(), catalog.NewScanSource(store.Products(), nil))

	ext := &fakeExtractor{}
	tr := &fakeTranscriber{}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Confirm:           inventory.NewConfirmVoiceUseCase(memory.NewTxRunner(store), resolver, zerolog.Nop()),
		StockView:         inventory.NewStockViewUseCase(store.Items(), store.Movements(), pdf.NewStockListPDF()),
		Voice:             usecase.NewVoiceUseCase(ext, tr, resolver, usecase.VoiceConfig{AITimeout: 50 * time.Millisecond}, zerolog.Nop()),
		JWTSecret:         testJWTSecret,
		ServiceName:       "despensa-test",
		TranscribeMaxSize: 1024,
		Logger:            zerolog.Nop(),
	})
	return &testServer{app: app, store: store, extractor: ext, transcriber: tr, token: bearer(t, testUserID)}
}

func (s *testServer) do(t *testing.T, method, path, contentType string, body io.Reader) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", s.token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) doJSON(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	return s.do(t, method, path, fiber.MIMEApplicationJSON, strings.NewReader(body))
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func audioUpload(t *testing.T, contentType string, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="audio"; filename="nota.ogg"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{'a'}, size))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHealth_Publico(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "despensa-test", body["service"])
	assert.Equal(t, catalog.ModeFallback, body["candidate_mode"])
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/stock/list", "/me/pantry", "/stock/list.pdf"} {
		resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestConfirmVoice_InsertaYApareceEnLista(t *testing.T) {
	s := newTestServer(t)

	expiry := time.Now().AddDate(0, 0, 5).Format("02/01/2006")
	resp := s.doJSON(t, http.MethodPost, "/stock/confirm-voice", fmt.Sprintf(`[
		{"source_text":"2 litros de leite","product_name":"leite","chosen_product_generic_id":%q,
		 "location":"geladeira","quantity":2,"unit_input":"litros","expiry_text":%q},
		{"source_text":"feijão","product_name":"feijão"}
	]`, leiteID, expiry))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	confirmed := decode[dto.ConfirmResponse](t, resp)
	assert.Equal(t, 1, confirmed.Inserted)
	assert.Equal(t, 0, confirmed.CreatedGeneric)
	require.Len(t, confirmed.ItemIDs, 1)

	list := decode[dto.StockListResponse](t, s.do(t, http.MethodGet, "/stock/list?q=leite", "", nil))
	require.Len(t, list.Groups, 1)
	assert.Equal(t, entity.LocationFridge, list.Groups[0].Location)
	require.Len(t, list.Groups[0].Items, 1)
	assert.Equal(t, confirmed.ItemIDs[0], list.Groups[0].Items[0].ID)
	assert.Equal(t, "Leite integral", list.Groups[0].Items[0].Name)
	assert.Equal(t, "warn", list.Groups[0].Items[0].Status)

	movs := decode[dto.StockMovementListResponse](t,
		s.do(t, http.MethodGet, "/stock/items/"+confirmed.ItemIDs[0]+"/movements", "", nil))
	require.Len(t, movs.Movements, 1)
	assert.Equal(t, string(entity.MovementEntrada), movs.Movements[0].Kind)

	pantry := decode[dto.PantryResponse](t, s.do(t, http.MethodGet, "/me/pantry", "", nil))
	require.Len(t, pantry.Items, 1)
	assert.Equal(t, "L", pantry.Items[0].Unit)
}

func TestConfirmVoice_Errores(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"cuerpo no JSON", `{`, http.StatusBadRequest, apphttp.CodeInvalidBody},
		{"objeto en lugar de lista", `{"product_name":"leite"}`, http.StatusBadRequest, apphttp.CodeInvalidBody},
		{"cantidad negativa", fmt.Sprintf(`[{"product_name":"leite","chosen_product_generic_id":%q,"quantity":-1}]`, leiteID),
			http.StatusBadRequest, apphttp.CodeValidation},
		{"producto inexistente", `[{"product_name":"leite","chosen_product_generic_id":"99999999-9999-4999-8999-999999999999"}]`,
			http.StatusNotFound, apphttp.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			resp := s.doJSON(t, http.MethodPost, "/stock/confirm-voice", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, decode[dto.ErrorResponse](t, resp).Code)

			_, _, items, movements := s.store.Counts()
			assert.Zero(t, items)
			assert.Zero(t, movements)
		})
	}
}

func TestConfirmVoice_ErrorIndicaSeleccion(t *testing.T) {
	s := newTestServer(t)
	resp := s.doJSON(t, http.MethodPost, "/stock/confirm-voice", fmt.Sprintf(`[
		{"product_name":"leite","chosen_product_generic_id":%q},
		{"product_name":"x","chosen_product_generic_id":"99999999-9999-4999-8999-999999999999"}
	]`, leiteID))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Message, "selección 1")
}

func TestMovements_ItemDesconocido(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/stock/items/99999999-9999-4999-8999-999999999999/movements", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, apphttp.CodeNotFound, decode[dto.ErrorResponse](t, resp).Code)
}

func TestListPDF(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/stock/list.pdf", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestParseText(t *testing.T) {
	s := newTestServer(t)
	qty := 2.0
	s.extractor.items = []dto.RawExtraction{{ProductName: "leite", Quantity: &qty}}

	resp := s.doJSON(t, http.MethodPost, "/voice/parse-text", `{"text":"2 litros de leite"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decode[[]map[string]any](t, resp)
	require.Len(t, items, 1)
	assert.Equal(t, "2 litros de leite", items[0]["source_text"])
	assert.Equal(t, "leite", items[0]["product_normalized"])
	assert.Nil(t, items[0]["quantity_base"])
	assert.Nil(t, items[0]["expiry_date"])
}

func TestParseText_Errores(t *testing.T) {
	t.Run("texto vacío", func(t *testing.T) {
		s := newTestServer(t)
		resp := s.doJSON(t, http.MethodPost, "/voice/parse-text", `{"text":"   "}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, apphttp.CodeValidation, decode[dto.ErrorResponse](t, resp).Code)
	})
	t.Run("proveedor", func(t *testing.T) {
		s := newTestServer(t)
		s.extractor.err = fmt.Errorf("%w: respuesta sin JSON", domain.ErrUpstream)
		resp := s.doJSON(t, http.MethodPost, "/voice/parse-text", `{"text":"leite"}`)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, apphttp.CodeUpstream, decode[dto.ErrorResponse](t, resp).Code)
	})
	t.Run("timeout", func(t *testing.T) {
		s := newTestServer(t)
		s.extractor.block = true
		resp := s.doJSON(t, http.MethodPost, "/voice/parse-text", `{"text":"leite"}`)
		assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
		assert.Equal(t, apphttp.CodeTimeout, decode[dto.ErrorResponse](t, resp).Code)
	})
}

func TestMatchItems(t *testing.T) {
	s := newTestServer(t)
	resp := s.doJSON(t, http.MethodPost, "/voice/match-items",
		`[{"source_text":"leite","product_name":"leite integral"},{"source_text":"x","product_name":"quiabo"}]`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[[]dto.MatchItemResponse](t, resp)
	require.Len(t, out, 2)

	require.NotEmpty(t, out[0].Candidates)
	assert.Equal(t, leiteID, out[0].Candidates[0].ID)
	assert.Equal(t, "select_candidate", out[0].SuggestedAction)
	assert.Empty(t, out[1].Candidates)
	assert.Equal(t, "create_new", out[1].SuggestedAction)
}

func TestTranscribe(t *testing.T) {
	t.Run("audio con idioma por defecto", func(t *testing.T) {
		s := newTestServer(t)
		body, ct := audioUpload(t, "audio/ogg", 16)
		resp := s.do(t, http.MethodPost, "/voice/transcribe", ct, body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "meio quilo de arroz", decode[dto.TranscribeResponse](t, resp).Text)
		assert.Equal(t, "pt", s.transcriber.language)
	})
	t.Run("auto", func(t *testing.T) {
		s := newTestServer(t)
		body, ct := audioUpload(t, "audio/webm", 16)
		resp := s.do(t, http.MethodPost, "/voice/transcribe?language=auto", ct, body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "", s.transcriber.language)
	})
	t.Run("no audio", func(t *testing.T) {
		s := newTestServer(t)
		body, ct := audioUpload(t, "text/plain", 16)
		resp := s.do(t, http.MethodPost, "/voice/transcribe", ct, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, apphttp.CodeInvalidContentType, decode[dto.ErrorResponse](t, resp).Code)
	})
	t.Run("demasiado grande", func(t *testing.T) {
		s := newTestServer(t)
		body, ct := audioUpload(t, "audio/ogg", 2048)
		resp := s.do(t, http.MethodPost, "/voice/transcribe", ct, body)
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})
	t.Run("sin archivo", func(t *testing.T) {
		s := newTestServer(t)
		resp := s.doJSON(t, http.MethodPost, "/voice/transcribe", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, apphttp.CodeInvalidBody, decode[dto.ErrorResponse](t, resp).Code)
	})
}
