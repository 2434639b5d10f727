package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/application/usecase"
)

const (
	audioFormField  = "audio"
	defaultLanguage = "pt"
)

// VoiceHandler maneja transcripción, extracción y emparejamiento (protegido).
type VoiceHandler struct {
	uc           *usecase.VoiceUseCase
	maxAudioSize int
	log          zerolog.Logger
}

// NewVoiceHandler construye el handler. maxAudioSize <= 0 desactiva el límite propio
// (queda el BodyLimit de Fiber).
func NewVoiceHandler(uc *usecase.VoiceUseCase, maxAudioSize int, log zerolog.Logger) *VoiceHandler {
	return &VoiceHandler{uc: uc, maxAudioSize: maxAudioSize, log: log}
}

// ParseText godoc
// @Summary      Extraer ítems de una frase
// @Description  Envía el texto al modelo de extracción y devuelve los ítems estructurados.
//
//	quantity_base, unit_base y expiry_date siempre vuelven nulos.
//
// @Tags         voice
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ParseTextRequest  true  "texto dictado o escrito"
// @Success      200   {array}   dto.RawExtraction
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /voice/parse-text [post]
func (h *VoiceHandler) ParseText(c *fiber.Ctx) error {
	var in dto.ParseTextRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ParseText(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// MatchItems godoc
// @Summary      Buscar candidatos del catálogo
// @Description  Para cada ítem extraído devuelve hasta 5 productos genéricos con score y la acción
//
//	sugerida (select_candidate o create_new).
//
// @Tags         voice
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.RawExtraction  true  "ítems devueltos por parse-text"
// @Success      200   {array}   dto.MatchItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /voice/match-items [post]
func (h *VoiceHandler) MatchItems(c *fiber.Ctx) error {
	var in []dto.RawExtraction
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.MatchItems(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Transcribe godoc
// @Summary      Transcribir audio
// @Tags         voice
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio     formData  file    true   "archivo de audio (audio/*)"
// @Param        language  query     string  false  "idioma (pt por defecto, auto para detectar)"
// @Success      200  {object}  dto.TranscribeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /voice/transcribe [post]
func (h *VoiceHandler) Transcribe(c *fiber.Ctx) error {
	fh, err := c.FormFile(audioFormField)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "campo 'audio' requerido")
	}
	contentType := strings.ToLower(strings.TrimSpace(fh.Header.Get(fiber.HeaderContentType)))
	if !strings.HasPrefix(contentType, "audio/") {
		return errorJSON(c, fiber.StatusBadRequest, CodeInvalidContentType, "envie um arquivo de áudio")
	}
	if h.maxAudioSize > 0 && fh.Size > int64(h.maxAudioSize) {
		return errorJSON(c, fiber.StatusRequestEntityTooLarge, CodePayloadTooLarge,
			fmt.Sprintf("audio supera %d bytes", h.maxAudioSize))
	}
	f, err := fh.Open()
	if err != nil {
		return invalidBody(c)
	}
	defer f.Close()

	language := c.Query("language", defaultLanguage)
	out, err := h.uc.Transcribe(c.UserContext(), f, fh.Filename, contentType, language)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
