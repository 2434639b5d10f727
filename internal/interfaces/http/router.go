package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/despensa-api/internal/application/inventory"
	"github.com/jhoicas/despensa-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Confirm           *inventory.ConfirmVoiceUseCase
	StockView         *inventory.StockViewUseCase
	Voice             *usecase.VoiceUseCase
	JWTSecret         string
	ServiceName       string
	TranscribeMaxSize int
	Logger            zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Logger))

	// Health (público)
	var mode func() string
	if deps.Voice != nil {
		mode = deps.Voice.CandidateMode
	}
	app.Get("/health", Health(deps.ServiceName, mode))

	// Rutas protegidas (requieren Bearer Token)
	auth := AuthMiddleware(deps.JWTSecret)

	stockHandler := NewStockHandler(deps.Confirm, deps.StockView, deps.Logger)
	stock := app.Group("/stock", auth)
	stock.Post("/confirm-voice", stockHandler.ConfirmVoice)
	stock.Get("/list", stockHandler.List)
	stock.Get("/list.pdf", stockHandler.ListPDF)
	stock.Get("/items/:id/movements", stockHandler.Movements)

	me := app.Group("/me", auth)
	me.Get("/pantry", stockHandler.Pantry)

	voiceHandler := NewVoiceHandler(deps.Voice, deps.TranscribeMaxSize, deps.Logger)
	voice := app.Group("/voice", auth)
	voice.Post("/parse-text", voiceHandler.ParseText)
	voice.Post("/match-items", voiceHandler.MatchItems)
	voice.Post("/transcribe", voiceHandler.Transcribe)
}
