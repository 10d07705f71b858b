package cashflow_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trastienda-api/internal/application/cashflow"
	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memDrawerRepo struct {
	drawers map[string]*entity.Drawer
}

func (r *memDrawerRepo) Create(d *entity.Drawer) error { r.drawers[d.ID] = d; return nil }
func (r *memDrawerRepo) GetByID(id string) (*entity.Drawer, error) {
	d, ok := r.drawers[id]
	if !ok {
		return nil, nil
	}
	return d, nil
}
func (r *memDrawerRepo) ListByCompany(string, int, int) ([]*entity.Drawer, error) {
	return nil, nil
}

// memMovRepo replica el filtro del repositorio real: until limita por fecha de
// negocio inclusive y el orden es (occurred_at, created_at).
type memMovRepo struct {
	movements []*entity.CashMovement
}

func (r *memMovRepo) Create(m *entity.CashMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *memMovRepo) ListByDrawer(drawerID string, until *time.Time) ([]*entity.CashMovement, error) {
	var out []*entity.CashMovement
	for _, m := range r.movements {
		if m.DrawerID != drawerID {
			continue
		}
		if until != nil && m.OccurredAt.After(*until) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *memMovRepo) CountByClassification(string) (int, error)       { return 0, nil }
func (r *memMovRepo) ReassignClassification(_, _ string) (int, error) { return 0, nil }

var (
	_ repository.DrawerRepository       = (*memDrawerRepo)(nil)
	_ repository.CashMovementRepository = (*memMovRepo)(nil)
)

const (
	empresa = "company-a"
	caja    = "caja-1"
)

func fecha(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func setupBalance() (*cashflow.BalanceUseCase, *memMovRepo) {
	drawerRepo := &memDrawerRepo{drawers: map[string]*entity.Drawer{
		caja: {ID: caja, CompanyID: empresa, Name: "Caja principal"},
	}}
	movRepo := &memMovRepo{}
	return cashflow.NewBalanceUseCase(movRepo, drawerRepo), movRepo
}

func mov(repo *memMovRepo, day int, kind string, amount int64) {
	repo.movements = append(repo.movements, &entity.CashMovement{
		ID: "m", CompanyID: empresa, DrawerID: caja, Kind: kind,
		Amount:     decimal.NewFromInt(amount),
		OccurredAt: fecha(day),
		CreatedAt:  fecha(day),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Apertura 500 @Mar1, venta 300 @Mar5, remesa 400 @Mar10. El rango [Mar6,
// Mar10] arrastra 800 y cierra en 400.
func TestGetRangeBalance_EscenarioCaja(t *testing.T) {
	uc, movRepo := setupBalance()
	mov(movRepo, 1, entity.CashKindIN, 500)
	mov(movRepo, 5, entity.CashKindIN, 300)
	mov(movRepo, 10, entity.CashKindOUT, 400)

	out, err := uc.GetRangeBalance(empresa, caja, fecha(6), fecha(10))
	require.NoError(t, err)
	assert.True(t, out.Forwarded.Equal(decimal.NewFromInt(800)), "forwarded = %s", out.Forwarded)
	assert.True(t, out.PeriodIn.IsZero())
	assert.True(t, out.PeriodOut.Equal(decimal.NewFromInt(400)))
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(400)))
}

// Ley de consistencia: forwarded + in − out del rango debe coincidir con el
// forwarded del día siguiente al cierre.
func TestGetRangeBalance_LeyDeConsistencia(t *testing.T) {
	uc, movRepo := setupBalance()
	mov(movRepo, 1, entity.CashKindIN, 500)
	mov(movRepo, 5, entity.CashKindIN, 300)
	mov(movRepo, 10, entity.CashKindOUT, 400)
	mov(movRepo, 15, entity.CashKindIN, 50)

	rango, err := uc.GetRangeBalance(empresa, caja, fecha(1), fecha(10))
	require.NoError(t, err)
	siguiente, err := uc.GetRangeBalance(empresa, caja, fecha(11), fecha(20))
	require.NoError(t, err)

	assert.True(t, rango.Balance.Equal(siguiente.Forwarded),
		"el cierre de un rango debe ser el arrastre del siguiente: %s vs %s",
		rango.Balance, siguiente.Forwarded)
}

// Un cajón sin movimientos (o inexistente) responde en ceros, nunca error.
func TestGetRangeBalance_CajonDesconocidoEnCeros(t *testing.T) {
	uc, _ := setupBalance()

	out, err := uc.GetRangeBalance(empresa, "fantasma", fecha(1), fecha(28))
	require.NoError(t, err)
	assert.True(t, out.Forwarded.IsZero())
	assert.True(t, out.PeriodIn.IsZero())
	assert.True(t, out.PeriodOut.IsZero())
	assert.True(t, out.Balance.IsZero())
}

func TestGetRangeBalance_RangoInvertido(t *testing.T) {
	uc, _ := setupBalance()
	_, err := uc.GetRangeBalance(empresa, caja, fecha(10), fecha(5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetRangeBalance_CajonDeOtraEmpresa(t *testing.T) {
	uc, _ := setupBalance()
	_, err := uc.GetRangeBalance("company-b", caja, fecha(1), fecha(5))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// El dashboard es el caso degenerado: rango de un solo día.
func TestGetDayBalance_ColapsaAUnDia(t *testing.T) {
	uc, movRepo := setupBalance()
	mov(movRepo, 1, entity.CashKindIN, 500)
	mov(movRepo, 5, entity.CashKindIN, 300)
	mov(movRepo, 5, entity.CashKindOUT, 100)

	out, err := uc.GetDayBalance(empresa, caja, fecha(5))
	require.NoError(t, err)
	assert.True(t, out.Forwarded.Equal(decimal.NewFromInt(500)))
	assert.True(t, out.PeriodIn.Equal(decimal.NewFromInt(300)))
	assert.True(t, out.PeriodOut.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(700)))
}
