package classification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trastienda-api/internal/application/classification"
	"github.com/jhoicas/Trastienda-api/internal/application/dto"
	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memClassRepo struct {
	classes map[string]*entity.Classification
	// failDelete simula un fallo de la BD a mitad de la transacción.
	failDelete bool
}

func newMemClassRepo() *memClassRepo {
	return &memClassRepo{classes: make(map[string]*entity.Classification)}
}

func (r *memClassRepo) Create(c *entity.Classification) error {
	cp := *c
	r.classes[c.ID] = &cp
	return nil
}

func (r *memClassRepo) GetByID(id string) (*entity.Classification, error) {
	c, ok := r.classes[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memClassRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Classification, error) {
	var out []*entity.Classification
	for _, c := range r.classes {
		if c.CompanyID == companyID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memClassRepo) Update(c *entity.Classification) error {
	if _, ok := r.classes[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.classes[c.ID] = &cp
	return nil
}

func (r *memClassRepo) Delete(id string) error {
	if r.failDelete {
		return errors.New("connection reset by peer")
	}
	if _, ok := r.classes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.classes, id)
	return nil
}

type memCashRepo struct {
	movements []*entity.CashMovement
}

func (r *memCashRepo) Create(m *entity.CashMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *memCashRepo) ListByDrawer(drawerID string, until *time.Time) ([]*entity.CashMovement, error) {
	var out []*entity.CashMovement
	for _, m := range r.movements {
		if m.DrawerID == drawerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memCashRepo) CountByClassification(classificationID string) (int, error) {
	n := 0
	for _, m := range r.movements {
		if m.ClassificationID == classificationID {
			n++
		}
	}
	return n, nil
}

func (r *memCashRepo) ReassignClassification(fromID, toID string) (int, error) {
	n := 0
	for _, m := range r.movements {
		if m.ClassificationID == fromID {
			m.ClassificationID = toID
			n++
		}
	}
	return n, nil
}

// memTxRunner simula transacciones con snapshot + restore: si fn falla, el
// estado de ambos repos vuelve exactamente al punto de partida.
type memTxRunner struct {
	cash  *memCashRepo
	class *memClassRepo
}

func (tx *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.CashMovementRepository,
	classRepo repository.ClassificationRepository,
) error) error {
	movSnap := make([]*entity.CashMovement, len(tx.cash.movements))
	for i, m := range tx.cash.movements {
		cp := *m
		movSnap[i] = &cp
	}
	classSnap := make(map[string]*entity.Classification, len(tx.class.classes))
	for id, c := range tx.class.classes {
		cp := *c
		classSnap[id] = &cp
	}

	if err := fn(tx.cash, tx.class); err != nil {
		tx.cash.movements = movSnap
		tx.class.classes = classSnap
		return err
	}
	return nil
}

var (
	_ repository.ClassificationRepository = (*memClassRepo)(nil)
	_ repository.CashMovementRepository   = (*memCashRepo)(nil)
	_ classification.TxRunner             = (*memTxRunner)(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	empresaA = "company-a"
	empresaB = "company-b"
)

func setup() (*classification.RegistryUseCase, *memClassRepo, *memCashRepo) {
	classRepo := newMemClassRepo()
	cashRepo := &memCashRepo{}
	tx := &memTxRunner{cash: cashRepo, class: classRepo}
	return classification.NewRegistryUseCase(tx, classRepo, cashRepo), classRepo, cashRepo
}

func clasificacion(repo *memClassRepo, id, companyID, name string) {
	now := time.Now()
	repo.classes[id] = &entity.Classification{
		ID: id, CompanyID: companyID, Name: name, CreatedAt: now, UpdatedAt: now,
	}
}

func movimientoConClase(repo *memCashRepo, classID string) {
	repo.movements = append(repo.movements, &entity.CashMovement{
		ID:               "mov-" + classID,
		CompanyID:        empresaA,
		DrawerID:         "drawer-1",
		ClassificationID: classID,
		Kind:             entity.CashKindOUT,
		Amount:           decimal.NewFromInt(10),
		OccurredAt:       time.Now(),
		CreatedAt:        time.Now(),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistry_CreateYRename(t *testing.T) {
	uc, classRepo, _ := setup()

	out, err := uc.Create(empresaA, dto.CreateClassificationRequest{Name: "OPEX"})
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)
	assert.Equal(t, "OPEX", out.Name)

	err = uc.Rename(empresaA, out.ID, dto.RenameClassificationRequest{Name: "Gastos operativos"})
	require.NoError(t, err)
	assert.Equal(t, "Gastos operativos", classRepo.classes[out.ID].Name,
		"el rename debe persistir el nombre nuevo")
}

func TestRegistry_RenameDeOtraEmpresa_Forbidden(t *testing.T) {
	uc, classRepo, _ := setup()
	clasificacion(classRepo, "clase-b", empresaB, "Remesas")

	err := uc.Rename(empresaA, "clase-b", dto.RenameClassificationRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"una clasificación de otra empresa no debe ser visible ni renombrable")
}

func TestRegistry_UsageCount(t *testing.T) {
	uc, classRepo, cashRepo := setup()
	clasificacion(classRepo, "opex", empresaA, "OPEX")
	movimientoConClase(cashRepo, "opex")
	movimientoConClase(cashRepo, "opex")

	usage, err := uc.UsageCount(empresaA, "opex")
	require.NoError(t, err)
	assert.Equal(t, 2, usage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Delete con guarda de uso
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistry_DeleteSinUso_Elimina(t *testing.T) {
	uc, classRepo, _ := setup()
	clasificacion(classRepo, "libre", empresaA, "Sin uso")

	err := uc.Delete(context.Background(), empresaA, "libre")
	require.NoError(t, err)
	assert.NotContains(t, classRepo.classes, "libre")
}

func TestRegistry_DeleteConUso_Bloqueado(t *testing.T) {
	uc, classRepo, cashRepo := setup()
	clasificacion(classRepo, "opex", empresaA, "OPEX")
	movimientoConClase(cashRepo, "opex")

	err := uc.Delete(context.Background(), empresaA, "opex")
	assert.ErrorIs(t, err, domain.ErrClassificationInUse,
		"eliminar una clasificación referenciada dejaría movimientos huérfanos")
	assert.Contains(t, classRepo.classes, "opex",
		"el bloqueo no debe dejar la clasificación a medio borrar")
}

func TestRegistry_DeleteInexistente_NotFound(t *testing.T) {
	uc, _, _ := setup()
	err := uc.Delete(context.Background(), empresaA, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests TransferAndDelete
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistry_TransferAndDelete_ReasignaYElimina(t *testing.T) {
	uc, classRepo, cashRepo := setup()
	clasificacion(classRepo, "vieja", empresaA, "Caja chica")
	clasificacion(classRepo, "nueva", empresaA, "OPEX")
	movimientoConClase(cashRepo, "vieja")
	movimientoConClase(cashRepo, "vieja")
	movimientoConClase(cashRepo, "nueva")

	err := uc.TransferAndDelete(context.Background(), empresaA, "vieja", "nueva")
	require.NoError(t, err)

	assert.NotContains(t, classRepo.classes, "vieja", "la clasificación origen debe desaparecer")
	for _, m := range cashRepo.movements {
		assert.Equal(t, "nueva", m.ClassificationID,
			"todos los movimientos deben terminar en la clasificación destino")
	}
}

func TestRegistry_TransferAndDelete_MismoOrigenYDestino(t *testing.T) {
	uc, classRepo, _ := setup()
	clasificacion(classRepo, "opex", empresaA, "OPEX")

	err := uc.TransferAndDelete(context.Background(), empresaA, "opex", "opex")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistry_TransferAndDelete_DestinoInexistente(t *testing.T) {
	uc, classRepo, cashRepo := setup()
	clasificacion(classRepo, "vieja", empresaA, "Caja chica")
	movimientoConClase(cashRepo, "vieja")

	err := uc.TransferAndDelete(context.Background(), empresaA, "vieja", "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "vieja", cashRepo.movements[0].ClassificationID,
		"sin destino válido no debe haber reasignación")
}

// Fallo a mitad de la transacción: la reasignación ya corrió pero el borrado
// falla. El estado final debe ser idéntico al inicial.
func TestRegistry_TransferAndDelete_FalloIntermedio_Rollback(t *testing.T) {
	uc, classRepo, cashRepo := setup()
	clasificacion(classRepo, "vieja", empresaA, "Caja chica")
	clasificacion(classRepo, "nueva", empresaA, "OPEX")
	movimientoConClase(cashRepo, "vieja")
	movimientoConClase(cashRepo, "vieja")

	classRepo.failDelete = true
	err := uc.TransferAndDelete(context.Background(), empresaA, "vieja", "nueva")
	require.Error(t, err)

	assert.Contains(t, classRepo.classes, "vieja",
		"tras el rollback la clasificación origen debe seguir existiendo")
	for _, m := range cashRepo.movements {
		assert.Equal(t, "vieja", m.ClassificationID,
			"tras el rollback ningún movimiento debe quedar reasignado")
	}
}
