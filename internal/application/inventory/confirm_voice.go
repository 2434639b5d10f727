package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/despensa-api/internal/application/catalog"
	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/domain/inventory"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
)

// OutcomeStatus resultado de una selección dentro del lote.
type OutcomeStatus string

const (
	OutcomeInserted OutcomeStatus = "inserted"
	OutcomeSkipped  OutcomeStatus = "skipped"
	OutcomeFailed   OutcomeStatus = "failed"
)

// SelectionOutcome resultado etiquetado por selección (en el mismo orden del lote).
type SelectionOutcome struct {
	Index          int
	Status         OutcomeStatus
	ItemID         string
	ProductID      string
	CreatedProduct bool
	Err            error
}

// ConfirmResult resultado del lote confirmado.
type ConfirmResult struct {
	Inserted       int
	CreatedGeneric int
	ItemIDs        []string
	Outcomes       []SelectionOutcome
}

// Response adapta el resultado al cuerpo HTTP.
func (r *ConfirmResult) Response() dto.ConfirmResponse {
	ids := r.ItemIDs
	if ids == nil {
		ids = []string{}
	}
	return dto.ConfirmResponse{Inserted: r.Inserted, CreatedGeneric: r.CreatedGeneric, ItemIDs: ids}
}

// SelectionError error de una selección concreta; aborta el lote completo.
type SelectionError struct {
	Index int
	Err   error
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("selección %d: %v", e.Index, e.Err)
}

func (e *SelectionError) Unwrap() error { return e.Err }

// ConfirmVoiceUseCase convierte las selecciones revisadas por el usuario en ítems de stock
// y movimientos ENTRADA, todo dentro de una única transacción.
type ConfirmVoiceUseCase struct {
	txRunner TxRunner
	resolver *catalog.Resolver
	log      zerolog.Logger
	now      func() time.Time
}

// NewConfirmVoiceUseCase construye el caso de uso.
func NewConfirmVoiceUseCase(txRunner TxRunner, resolver *catalog.Resolver, log zerolog.Logger) *ConfirmVoiceUseCase {
	return &ConfirmVoiceUseCase{txRunner: txRunner, resolver: resolver, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ConfirmVoiceUseCase) WithClock(now func() time.Time) *ConfirmVoiceUseCase {
	uc.now = now
	return uc
}

var validate = validator.New()

// validateSelection rechaza formas inválidas antes de abrir la transacción.
func validateSelection(sel dto.ConfirmSelectionRequest) error {
	if err := validate.Struct(sel); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	// La columna guarda 3 decimales: lo que redondea a cero no es una entrada válida.
	if sel.Quantity != nil && !inventory.ParseQuantity(sel.Quantity).IsPositive() {
		return fmt.Errorf("%w: la cantidad redondeada a 3 decimales debe ser > 0", domain.ErrInvalidInput)
	}
	if sel.ChosenProductGenericID == nil && sel.CreateNewIfMissing && inventory.FoldText(creationKeySource(sel)) == "" {
		return fmt.Errorf("%w: falta el nombre del producto a crear", domain.ErrInvalidInput)
	}
	return nil
}

// creationKeySource texto del que sale la clave de catálogo al crear: product_normalized
// si viene, si no el nombre nuevo o el dictado.
func creationKeySource(sel dto.ConfirmSelectionRequest) string {
	if hint := strings.TrimSpace(deref(sel.ProductNormalized)); hint != "" {
		return hint
	}
	return newProductName(sel)
}

func newProductName(sel dto.ConfirmSelectionRequest) string {
	if n := strings.TrimSpace(deref(sel.NewProductName)); n != "" {
		return n
	}
	return strings.TrimSpace(sel.ProductName)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Confirm procesa el lote del usuario. Las selecciones sin producto resoluble y sin permiso
// de creación se omiten (OutcomeSkipped) sin error. Cualquier fallo de persistencia o un
// producto elegido inexistente aborta el lote completo y no queda nada escrito.
func (uc *ConfirmVoiceUseCase) Confirm(ctx context.Context, userID string, selections []dto.ConfirmSelectionRequest) (*ConfirmResult, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	for i, sel := range selections {
		if err := validateSelection(sel); err != nil {
			return nil, &SelectionError{Index: i, Err: err}
		}
	}
	result := &ConfirmResult{ItemIDs: []string{}}
	if len(selections) == 0 {
		return result, nil
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.GenericProductRepository,
		locationRepo repository.LocationRepository,
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		b := &confirmBatch{
			userID:    userID,
			now:       uc.now(),
			resolver:  uc.resolver.WithRepository(productRepo),
			products:  productRepo,
			locations: locationRepo,
			items:     itemRepo,
			movements: movRepo,
			locCache:  map[string]string{},
		}
		// El resultado parcial se construye en la tx y solo se publica si hace commit.
		partial := &ConfirmResult{ItemIDs: []string{}}
		for i, sel := range selections {
			out := b.apply(ctx, i, sel)
			partial.Outcomes = append(partial.Outcomes, out)
			switch out.Status {
			case OutcomeFailed:
				return &SelectionError{Index: i, Err: out.Err}
			case OutcomeInserted:
				partial.Inserted++
				partial.ItemIDs = append(partial.ItemIDs, out.ItemID)
				if out.CreatedProduct {
					partial.CreatedGeneric++
				}
			}
		}
		*result = *partial
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Int("selections", len(selections)).
			Msg("confirmación por voz revertida")
		return nil, err
	}

	uc.log.Info().Str("user_id", userID).
		Int("inserted", result.Inserted).
		Int("skipped", len(selections)-result.Inserted).
		Int("created_generic", result.CreatedGeneric).
		Msg("confirmación por voz")
	return result, nil
}

// confirmBatch estado de un lote dentro de la transacción.
type confirmBatch struct {
	userID    string
	now       time.Time
	resolver  *catalog.Resolver
	products  repository.GenericProductRepository
	locations repository.LocationRepository
	items     repository.StockItemRepository
	movements repository.StockMovementRepository
	locCache  map[string]string
}

func (b *confirmBatch) apply(ctx context.Context, idx int, sel dto.ConfirmSelectionRequest) SelectionOutcome {
	out := SelectionOutcome{Index: idx}
	fail := func(err error) SelectionOutcome {
		out.Status = OutcomeFailed
		out.Err = err
		return out
	}

	// 1. Producto
	switch {
	case sel.ChosenProductGenericID != nil:
		p, err := b.products.GetByID(ctx, *sel.ChosenProductGenericID)
		if err != nil {
			return fail(err)
		}
		if p == nil {
			return fail(domain.ErrNotFound)
		}
		out.ProductID = p.ID
	case sel.CreateNewIfMissing:
		p, created, err := b.resolver.ResolveOrCreate(ctx, newProductName(sel), deref(sel.ProductNormalized), true)
		if err != nil {
			return fail(err)
		}
		out.ProductID = p.ID
		out.CreatedProduct = created
	default:
		out.Status = OutcomeSkipped
		return out
	}

	// 2. Ubicación
	locationID, err := b.location(ctx, deref(sel.Location))
	if err != nil {
		return fail(err)
	}

	// 3-4. Cantidad, unidad y vencimiento
	qty := inventory.ParseQuantity(sel.Quantity)
	unit := inventory.NormalizeUnit(deref(sel.UnitInput))
	expiry := inventory.ParseSoftDateAt(deref(sel.ExpiryText), b.now)

	// 5. Ítem + movimiento ENTRADA
	item := &entity.StockItem{
		ID:               uuid.New().String(),
		UserID:           b.userID,
		GenericProductID: out.ProductID,
		LocationID:       locationID,
		Quantity:         qty,
		Unit:             unit,
		ExpiryDate:       expiry,
		CreatedAt:        b.now,
	}
	if err := b.items.Create(ctx, item); err != nil {
		return fail(err)
	}
	reason := entity.ReasonConfirmVoice
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		ItemID:       item.ID,
		Kind:         entity.MovementEntrada,
		Quantity:     qty,
		ToLocationID: locationID,
		Reason:       &reason,
		CreatedAt:    b.now,
	}
	if err := b.movements.Create(ctx, mov); err != nil {
		return fail(err)
	}
	out.Status = OutcomeInserted
	out.ItemID = item.ID
	return out
}

// location resuelve (y crea si hace falta) la ubicación canónica del usuario.
func (b *confirmBatch) location(ctx context.Context, raw string) (*string, error) {
	name := inventory.NormalizeLocation(raw)
	if name == "" {
		return nil, nil
	}
	key := strings.ToLower(name)
	if id, ok := b.locCache[key]; ok {
		return &id, nil
	}
	loc, err := b.locations.GetByUserAndName(ctx, b.userID, name)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = &entity.Location{ID: uuid.New().String(), UserID: b.userID, Name: name, CreatedAt: b.now}
		if err := b.locations.Create(ctx, loc); err != nil {
			return nil, err
		}
	}
	b.locCache[key] = loc.ID
	id := loc.ID
	return &id, nil
}

// IsSelectionError indica si err proviene de una selección concreta y devuelve su índice.
func IsSelectionError(err error) (int, bool) {
	var se *SelectionError
	if errors.As(err, &se) {
		return se.Index, true
	}
	return 0, false
}
