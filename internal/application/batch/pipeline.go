// Package batch implementa el flujo de reposición masiva en dos fases:
// seleccionar candidatos → revisar/validar → commit atómico. Se usa para
// reposición de stock e importación masiva.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/ledger"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// Estados del pipeline.
type State string

const (
	StateSelecting  State = "selecting"
	StateReviewing  State = "reviewing"
	StateCommitting State = "committing"
	StateCommitted  State = "committed"
)

// Candidate es una fila en preparación. Quantity y UnitCost se mantienen como
// texto hasta el commit porque la UI los edita campo a campo y la validación
// corre en cada edición, no solo al enviar.
type Candidate struct {
	ItemID    string
	Quantity  string
	UnitCost  string
	Note      string
	Confirmed bool
}

// FieldError es un error de validación de un campo de un candidato.
type FieldError struct {
	Candidate int // índice dentro del lote
	Field     string
	Message   string
}

// Pipeline es la máquina de estados del lote. No es thread-safe: cada lote
// pertenece a una sola petición o sesión de usuario.
type Pipeline struct {
	txRunner   TxRunner
	itemRepo   repository.ItemRepository
	companyID  string
	userID     string
	state      State
	candidates []Candidate
}

// NewPipeline crea un pipeline vacío en estado Selecting.
func NewPipeline(txRunner TxRunner, itemRepo repository.ItemRepository, companyID, userID string) *Pipeline {
	return &Pipeline{
		txRunner:  txRunner,
		itemRepo:  itemRepo,
		companyID: companyID,
		userID:    userID,
		state:     StateSelecting,
	}
}

// State devuelve el estado actual.
func (p *Pipeline) State() State { return p.state }

// Candidates devuelve una copia de los candidatos en preparación.
func (p *Pipeline) Candidates() []Candidate {
	out := make([]Candidate, len(p.candidates))
	copy(out, p.candidates)
	return out
}

// AddCandidate agrega una fila al lote y devuelve sus errores de validación.
// Solo válido en Selecting.
func (p *Pipeline) AddCandidate(c Candidate) ([]FieldError, error) {
	if p.state != StateSelecting {
		return nil, domain.ErrInvalidInput
	}
	p.candidates = append(p.candidates, c)
	return p.validateCandidate(len(p.candidates)-1, c), nil
}

// UpdateCandidate reemplaza la fila i y la revalida. Solo válido en Selecting.
func (p *Pipeline) UpdateCandidate(i int, c Candidate) ([]FieldError, error) {
	if p.state != StateSelecting {
		return nil, domain.ErrInvalidInput
	}
	if i < 0 || i >= len(p.candidates) {
		return nil, domain.ErrNotFound
	}
	p.candidates[i] = c
	return p.validateCandidate(i, c), nil
}

// RemoveCandidate descarta la fila i. Solo válido en Selecting.
func (p *Pipeline) RemoveCandidate(i int) error {
	if p.state != StateSelecting {
		return domain.ErrInvalidInput
	}
	if i < 0 || i >= len(p.candidates) {
		return domain.ErrNotFound
	}
	p.candidates = append(p.candidates[:i], p.candidates[i+1:]...)
	return nil
}

// Validate revalida el lote completo.
func (p *Pipeline) Validate() []FieldError {
	var errs []FieldError
	for i, c := range p.candidates {
		errs = append(errs, p.validateCandidate(i, c)...)
	}
	return errs
}

// validateCandidate aplica las reglas de campo: cantidad y costo deben parsear
// como números ≥ 0 y el ítem debe existir en la empresa.
func (p *Pipeline) validateCandidate(i int, c Candidate) []FieldError {
	var errs []FieldError

	if qty, err := decimal.NewFromString(c.Quantity); err != nil {
		errs = append(errs, FieldError{Candidate: i, Field: "quantity", Message: "la cantidad no es un número"})
	} else if qty.LessThan(decimal.Zero) {
		errs = append(errs, FieldError{Candidate: i, Field: "quantity", Message: "la cantidad no puede ser negativa"})
	}

	if cost, err := decimal.NewFromString(c.UnitCost); err != nil {
		errs = append(errs, FieldError{Candidate: i, Field: "unit_cost", Message: "el costo no es un número"})
	} else if cost.LessThan(decimal.Zero) {
		errs = append(errs, FieldError{Candidate: i, Field: "unit_cost", Message: "el costo no puede ser negativo"})
	}

	if c.ItemID == "" {
		errs = append(errs, FieldError{Candidate: i, Field: "item_id", Message: "ítem requerido"})
	} else {
		item, err := p.itemRepo.GetByID(c.ItemID)
		if err != nil || item == nil || item.CompanyID != p.companyID {
			errs = append(errs, FieldError{Candidate: i, Field: "item_id", Message: "el ítem no existe"})
		}
	}
	return errs
}

// Review pasa de Selecting a Reviewing. Bloqueado sin candidatos confirmados.
func (p *Pipeline) Review() error {
	if p.state != StateSelecting {
		return domain.ErrInvalidInput
	}
	confirmed := 0
	for _, c := range p.candidates {
		if c.Confirmed {
			confirmed++
		}
	}
	if confirmed == 0 {
		return domain.ErrInvalidInput
	}
	p.state = StateReviewing
	return nil
}

// Back regresa de Reviewing a Selecting sin descartar candidatos.
func (p *Pipeline) Back() error {
	if p.state != StateReviewing {
		return domain.ErrInvalidInput
	}
	p.state = StateSelecting
	return nil
}

// Commit aplica el lote completo como una única transacción: cada candidato
// confirmado se vuelve un movimiento IN inmutable. Bloqueado mientras exista
// cualquier error de validación. Si la transacción falla, ningún movimiento
// queda aplicado y el lote vuelve a Reviewing con un solo error, no errores
// por fila después del hecho.
func (p *Pipeline) Commit(ctx context.Context) (int, error) {
	if p.state != StateReviewing {
		return 0, domain.ErrInvalidInput
	}
	if errs := p.Validate(); len(errs) > 0 {
		return 0, domain.ErrInvalidInput
	}
	p.state = StateCommitting

	now := time.Now()
	day := ledger.DateOf(now)
	applied := 0
	err := p.txRunner.RunStock(ctx, func(movRepo repository.StockMovementRepository) error {
		for _, c := range p.candidates {
			if !c.Confirmed {
				continue
			}
			qty, _ := decimal.NewFromString(c.Quantity)
			cost, _ := decimal.NewFromString(c.UnitCost)
			mov := &entity.StockMovement{
				ID:         uuid.New().String(),
				CompanyID:  p.companyID,
				ItemID:     c.ItemID,
				Kind:       entity.StockKindIN,
				Quantity:   qty,
				UnitCost:   cost,
				Note:       c.Note,
				OccurredAt: day,
				CreatedAt:  now,
				CreatedBy:  p.userID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			applied++
		}
		return nil
	})
	if err != nil {
		p.state = StateReviewing
		return 0, fmt.Errorf("%w: %v", domain.ErrAtomicityViolation, err)
	}
	p.state = StateCommitted
	p.candidates = nil
	return applied, nil
}
