package ledger_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trastienda-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// fecha devuelve el día d de enero 2025 a medianoche UTC.
func fecha(d int) time.Time {
	return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
}

func entrada(day int, inbound bool, magnitude int64) ledger.Entry {
	return ledger.Entry{
		OccurredAt: fecha(day),
		CreatedAt:  fecha(day),
		Inbound:    inbound,
		Magnitude:  decimal.NewFromInt(magnitude),
	}
}

// entradasAleatorias genera una secuencia reproducible de movimientos sobre
// los días 1..28 (semilla fija: los tests deben ser deterministas).
func entradasAleatorias(seed int64, n int) []ledger.Entry {
	rng := rand.New(rand.NewSource(seed))
	entries := make([]ledger.Entry, 0, n)
	for i := 0; i < n; i++ {
		day := 1 + rng.Intn(28)
		e := ledger.Entry{
			OccurredAt: fecha(day),
			CreatedAt:  fecha(day).Add(time.Duration(rng.Intn(86400)) * time.Second),
			Inbound:    rng.Intn(2) == 0,
			Magnitude:  decimal.NewFromInt(int64(rng.Intn(10000))).Div(decimal.NewFromInt(100)),
		}
		entries = append(entries, e)
	}
	return entries
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de referencia: IN 100 @Ene1, SOLD 30 @Ene5, OUT 10 @Ene10
// ──────────────────────────────────────────────────────────────────────────────

func escenarioStock() []ledger.Entry {
	return []ledger.Entry{
		entrada(1, true, 100),  // StockIn
		entrada(5, false, 30),  // StockSold
		entrada(10, false, 10), // StockOut
	}
}

func TestComputeBalance_EscenarioStock(t *testing.T) {
	entries := escenarioStock()

	// Rango [Ene6, Ene10]: el saldo arrastrado es 100 − 30 = 70.
	got := ledger.ComputeBalance(entries, fecha(6), fecha(10))
	assert.True(t, got.Forwarded.Equal(decimal.NewFromInt(70)), "forwarded = %s", got.Forwarded)
	assert.True(t, got.PeriodIn.IsZero(), "periodIn = %s", got.PeriodIn)
	assert.True(t, got.PeriodOut.Equal(decimal.NewFromInt(10)), "periodOut = %s", got.PeriodOut)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(60)), "balance = %s", got.Balance)

	// El stock actual es 60 en cualquier fecha de consulta ≥ Ene10.
	for day := 10; day <= 20; day++ {
		current := ledger.BalanceAsOf(entries, fecha(day))
		assert.True(t, current.Equal(decimal.NewFromInt(60)), "stock al día %d = %s", day, current)
	}
}

func TestComputeBalance_ParticionVacia(t *testing.T) {
	// Una partición sin movimientos produce resultado en ceros, nunca error.
	got := ledger.ComputeBalance(nil, fecha(1), fecha(31))
	assert.True(t, got.Forwarded.IsZero())
	assert.True(t, got.PeriodIn.IsZero())
	assert.True(t, got.PeriodOut.IsZero())
	assert.True(t, got.Balance.IsZero())
}

func TestComputeBalance_RangoDeUnDia(t *testing.T) {
	entries := escenarioStock()
	got := ledger.ComputeBalance(entries, fecha(5), fecha(5))
	assert.True(t, got.Forwarded.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.PeriodOut.Equal(decimal.NewFromInt(30)))
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(70)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades del libro
// ──────────────────────────────────────────────────────────────────────────────

// TestComputeBalance_Determinista: dos llamadas con el mismo input producen el
// mismo resultado (sin estado mutable oculto).
func TestComputeBalance_Determinista(t *testing.T) {
	entries := entradasAleatorias(7, 200)
	a := ledger.ComputeBalance(entries, fecha(5), fecha(20))
	b := ledger.ComputeBalance(entries, fecha(5), fecha(20))
	assert.True(t, a.Forwarded.Equal(b.Forwarded))
	assert.True(t, a.PeriodIn.Equal(b.PeriodIn))
	assert.True(t, a.PeriodOut.Equal(b.PeriodOut))
	assert.True(t, a.Balance.Equal(b.Balance))
}

// TestComputeBalance_LeyDeConsistencia: para secuencias aleatorias y todo día d,
// Forwarded + PeriodIn − PeriodOut del rango [start, d] coincide con el
// Forwarded del rango que empieza en d+1, y el Forwarded de [d, d] coincide
// con el saldo de cierre hasta d−1.
func TestComputeBalance_LeyDeConsistencia(t *testing.T) {
	for _, seed := range []int64{1, 42, 99, 1234} {
		entries := entradasAleatorias(seed, 150)
		for day := 1; day <= 28; day++ {
			rb := ledger.ComputeBalance(entries, fecha(1), fecha(day))
			next := ledger.ComputeBalance(entries, fecha(day+1), fecha(28))
			require.True(t, rb.Balance.Equal(next.Forwarded),
				"seed %d día %d: balance %s != forwarded %s", seed, day, rb.Balance, next.Forwarded)

			single := ledger.ComputeBalance(entries, fecha(day), fecha(day))
			require.True(t, single.Forwarded.Equal(ledger.BalanceAsOf(entries, fecha(day-1))),
				"seed %d día %d: forwarded[d,d] != cierre de d-1", seed, day)
		}
	}
}

// TestComputeBalance_SinDobleConteo: partir un rango [A,C] en [A,B] y [B+1,C]
// no duplica ni pierde movimientos.
func TestComputeBalance_SinDobleConteo(t *testing.T) {
	entries := entradasAleatorias(2024, 120)
	a, b, c := 3, 14, 27
	total := ledger.ComputeBalance(entries, fecha(a), fecha(c))
	first := ledger.ComputeBalance(entries, fecha(a), fecha(b))
	second := ledger.ComputeBalance(entries, fecha(b+1), fecha(c))

	require.True(t, second.Forwarded.Equal(first.Balance),
		"el cierre de [A,B] debe ser el arrastre de [B+1,C]")
	assert.True(t, total.Balance.Equal(second.Balance),
		"balance[A,C]=%s vs balance[B+1,C]=%s", total.Balance, second.Balance)
	assert.True(t, total.PeriodIn.Equal(first.PeriodIn.Add(second.PeriodIn)))
	assert.True(t, total.PeriodOut.Equal(first.PeriodOut.Add(second.PeriodOut)))
}

// TestComputeBalance_Backdating: insertar un movimiento con fecha de negocio
// anterior al rango mueve el arrastre, no el período.
func TestComputeBalance_Backdating(t *testing.T) {
	entries := escenarioStock()
	backdated := entrada(2, true, 5)
	backdated.CreatedAt = fecha(15) // registrado mucho después
	entries = append(entries, backdated)

	got := ledger.ComputeBalance(entries, fecha(6), fecha(10))
	assert.True(t, got.Forwarded.Equal(decimal.NewFromInt(75)))
	assert.True(t, got.PeriodIn.IsZero())
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(65)))
}

func TestBalanceAsOf_CentavosSinDeriva(t *testing.T) {
	// Muchos movimientos pequeños de 0.01 deben cuadrar al centavo exacto.
	entries := make([]ledger.Entry, 0, 1000)
	cent := decimal.New(1, -2)
	for i := 0; i < 1000; i++ {
		entries = append(entries, ledger.Entry{
			OccurredAt: fecha(1 + i%28),
			CreatedAt:  fecha(1 + i%28),
			Inbound:    true,
			Magnitude:  cent,
		})
	}
	got := ledger.BalanceAsOf(entries, fecha(28))
	assert.True(t, got.Equal(decimal.New(10, 0)), "suma de 1000 centavos = %s", got)
}
