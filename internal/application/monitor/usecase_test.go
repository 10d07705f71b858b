package monitor_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trastienda-api/internal/application/monitor"
	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubStockRepo struct {
	rows []repository.ItemStockRow
}

func (r *stubStockRepo) Create(*entity.StockMovement) error { return nil }
func (r *stubStockRepo) ListByItem(string, *time.Time) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *stubStockRepo) CurrentStockByItem(ctx context.Context, companyID string) ([]repository.ItemStockRow, error) {
	return r.rows, nil
}

type stubCashRepo struct {
	movements []*entity.CashMovement
}

func (r *stubCashRepo) Create(*entity.CashMovement) error { return nil }
func (r *stubCashRepo) ListByDrawer(drawerID string, until *time.Time) ([]*entity.CashMovement, error) {
	return r.movements, nil
}
func (r *stubCashRepo) CountByClassification(string) (int, error)      { return 0, nil }
func (r *stubCashRepo) ReassignClassification(_, _ string) (int, error) { return 0, nil }

type stubDrawerRepo struct {
	drawers map[string]*entity.Drawer
}

func (r *stubDrawerRepo) Create(*entity.Drawer) error { return nil }
func (r *stubDrawerRepo) GetByID(id string) (*entity.Drawer, error) {
	d, ok := r.drawers[id]
	if !ok {
		return nil, nil
	}
	return d, nil
}
func (r *stubDrawerRepo) ListByCompany(string, int, int) ([]*entity.Drawer, error) {
	return nil, nil
}

var (
	_ repository.StockMovementRepository = (*stubStockRepo)(nil)
	_ repository.CashMovementRepository  = (*stubCashRepo)(nil)
	_ repository.DrawerRepository        = (*stubDrawerRepo)(nil)
)

const empresa = "company-a"

func fila(id, name string, stock int64, threshold *int64) repository.ItemStockRow {
	row := repository.ItemStockRow{
		ItemID:       id,
		SKU:          "SKU-" + id,
		Name:         name,
		CurrentStock: decimal.NewFromInt(stock),
	}
	if threshold != nil {
		t := decimal.NewFromInt(*threshold)
		row.Threshold = &t
	}
	return row
}

func puntero(v int64) *int64 { return &v }

func monitorCon(rows []repository.ItemStockRow, globalThreshold, ceiling int64) *monitor.UseCase {
	return monitor.NewUseCase(
		&stubStockRepo{rows: rows},
		&stubCashRepo{},
		&stubDrawerRepo{},
		monitor.Thresholds{
			GlobalLowStock:  decimal.NewFromInt(globalThreshold),
			CashRiskCeiling: decimal.NewFromInt(ceiling),
		},
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests LowStock: orden y desempate por nombre
// ──────────────────────────────────────────────────────────────────────────────

// Stocks A=10, B=2, C=2, D=7, E=0 con umbral global 5: los marcados son E, B y
// C; B y C empatan en stock y desempatan por nombre ascendente.
func TestLowStock_OrdenAscendenteConDesempatePorNombre(t *testing.T) {
	rows := []repository.ItemStockRow{
		fila("a", "Arroz", 10, nil),
		fila("b", "Browns", 2, nil),
		fila("c", "Cereal", 2, nil),
		fila("d", "Dulces", 7, nil),
		fila("e", "Empanadas", 0, nil),
	}
	uc := monitorCon(rows, 5, 1000)

	list, err := uc.LowStock(context.Background(), empresa, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "Empanadas", list[0].Name, "el stock más bajo va primero")
	assert.Equal(t, "Browns", list[1].Name, "empate en 2: Browns antes que Cereal")
	assert.Equal(t, "Cereal", list[2].Name)
}

func TestLowStock_OrdenDeterministaEntreConsultas(t *testing.T) {
	rows := []repository.ItemStockRow{
		fila("x", "Yuca", 1, nil),
		fila("y", "Maíz", 1, nil),
		fila("z", "Ajo", 1, nil),
	}
	uc := monitorCon(rows, 5, 1000)

	first, err := uc.LowStock(context.Background(), empresa, 0)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := uc.LowStock(context.Background(), empresa, 0)
		require.NoError(t, err)
		assert.Equal(t, first, again, "consultas repetidas no deben reordenar la lista")
	}
	// Todo empata en stock 1: el orden es alfabético puro.
	assert.Equal(t, []string{"Ajo", "Maíz", "Yuca"},
		[]string{first[0].Name, first[1].Name, first[2].Name})
}

// El umbral propio del ítem sustituye al global solo para ese ítem.
func TestLowStock_UmbralPropioSustituyeAlGlobal(t *testing.T) {
	rows := []repository.ItemStockRow{
		fila("a", "Arroz", 7, nil),         // global 5: no marcado
		fila("b", "Browns", 7, puntero(8)), // propio 8: marcado
	}
	uc := monitorCon(rows, 5, 1000)

	list, err := uc.LowStock(context.Background(), empresa, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Browns", list[0].Name)
	assert.True(t, list[0].Threshold.Equal(decimal.NewFromInt(8)),
		"la respuesta reporta el umbral efectivo, no el global")
}

func TestLowStock_EnElUmbralExacto_Marcado(t *testing.T) {
	rows := []repository.ItemStockRow{fila("a", "Arroz", 5, nil)}
	uc := monitorCon(rows, 5, 1000)

	list, err := uc.LowStock(context.Background(), empresa, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1, "stock igual al umbral cuenta como bajo (≤)")
}

func TestLowStock_RespetaLimite(t *testing.T) {
	rows := []repository.ItemStockRow{
		fila("a", "Arroz", 0, nil),
		fila("b", "Browns", 1, nil),
		fila("c", "Cereal", 2, nil),
	}
	uc := monitorCon(rows, 5, 1000)

	list, err := uc.LowStock(context.Background(), empresa, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Arroz", list[0].Name)
	assert.Equal(t, "Browns", list[1].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests MostStocked
// ──────────────────────────────────────────────────────────────────────────────

func TestMostStocked_DescendenteConDesempate(t *testing.T) {
	rows := []repository.ItemStockRow{
		fila("a", "Arroz", 10, nil),
		fila("b", "Browns", 2, nil),
		fila("c", "Cereal", 2, nil),
		fila("d", "Dulces", 7, nil),
	}
	uc := monitorCon(rows, 5, 1000)

	list, err := uc.MostStocked(context.Background(), empresa, 0)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, []string{"Arroz", "Dulces", "Browns", "Cereal"},
		[]string{list[0].Name, list[1].Name, list[2].Name, list[3].Name})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CashRisk
// ──────────────────────────────────────────────────────────────────────────────

func drawerMonitor(movs []*entity.CashMovement, ceiling int64) *monitor.UseCase {
	return monitor.NewUseCase(
		&stubStockRepo{},
		&stubCashRepo{movements: movs},
		&stubDrawerRepo{drawers: map[string]*entity.Drawer{
			"caja-1": {ID: "caja-1", CompanyID: empresa, Name: "Caja principal"},
		}},
		monitor.Thresholds{
			GlobalLowStock:  decimal.NewFromInt(5),
			CashRiskCeiling: decimal.NewFromInt(ceiling),
		},
	)
}

func movimientoCaja(kind string, amount int64) *entity.CashMovement {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	return &entity.CashMovement{
		ID: "m", CompanyID: empresa, DrawerID: "caja-1", Kind: kind,
		Amount: decimal.NewFromInt(amount), OccurredAt: now, CreatedAt: now,
	}
}

func TestCashRisk_SaldoSobreElTecho(t *testing.T) {
	uc := drawerMonitor([]*entity.CashMovement{
		movimientoCaja(entity.CashKindIN, 1500),
		movimientoCaja(entity.CashKindOUT, 200),
	}, 1000)

	out, err := uc.CashRisk(context.Background(), empresa, "caja-1")
	require.NoError(t, err)
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(1300)))
	assert.True(t, out.AtRisk, "1300 > techo 1000: el cajón está en riesgo")
}

func TestCashRisk_SaldoIgualAlTecho_SinRiesgo(t *testing.T) {
	uc := drawerMonitor([]*entity.CashMovement{
		movimientoCaja(entity.CashKindIN, 1000),
	}, 1000)

	out, err := uc.CashRisk(context.Background(), empresa, "caja-1")
	require.NoError(t, err)
	assert.False(t, out.AtRisk, "el riesgo es estrictamente mayor que el techo")
}

func TestCashRisk_CajonInexistente(t *testing.T) {
	uc := drawerMonitor(nil, 1000)
	_, err := uc.CashRisk(context.Background(), empresa, "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCashRisk_CajonDeOtraEmpresa(t *testing.T) {
	uc := drawerMonitor(nil, 1000)
	_, err := uc.CashRisk(context.Background(), "company-b", "caja-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
