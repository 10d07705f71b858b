// Package ledger implementa la agregación pura de saldos sobre el log de
// movimientos. Caja y stock comparten la misma aritmética: un saldo nunca se
// almacena como autoritativo, siempre se recalcula desde los movimientos.
//
// Ley de consistencia del libro: para cualquier rango [start, end],
//
//	Forwarded(start) + PeriodIn − PeriodOut == Forwarded(end + 1 día)
//
// Las funciones de este paquete son puras: mismo input, mismo output.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Entry es la vista mínima de un movimiento que necesita el agregador.
// Magnitude es siempre no-negativa; Inbound determina el signo.
type Entry struct {
	OccurredAt time.Time // fecha de negocio (backdating permitido)
	CreatedAt  time.Time // desempate entre entradas del mismo día
	Inbound    bool
	Magnitude  decimal.Decimal
}

// RangeBalance es el resultado de agregar una partición sobre un rango.
type RangeBalance struct {
	Forwarded decimal.Decimal // saldo acumulado estrictamente antes de start
	PeriodIn  decimal.Decimal // entradas dentro de [start, end]
	PeriodOut decimal.Decimal // salidas dentro de [start, end]
	Balance   decimal.Decimal // Forwarded + PeriodIn − PeriodOut
}

// Zero devuelve un RangeBalance con todos los componentes en cero. Es el
// resultado para particiones sin movimientos: nunca un error.
func Zero() RangeBalance {
	return RangeBalance{
		Forwarded: decimal.Zero,
		PeriodIn:  decimal.Zero,
		PeriodOut: decimal.Zero,
		Balance:   decimal.Zero,
	}
}

// signed devuelve la magnitud con signo de una entrada.
func signed(e Entry) decimal.Decimal {
	if e.Inbound {
		return e.Magnitude
	}
	return e.Magnitude.Neg()
}

// sortEntries ordena estable por (OccurredAt, CreatedAt). Dentro de una
// partición los movimientos se procesan siempre en este orden para no contar
// una corrección del mismo día antes que la entrada que corrige.
func sortEntries(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].OccurredAt.Equal(sorted[j].OccurredAt) {
			return sorted[i].OccurredAt.Before(sorted[j].OccurredAt)
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

// ComputeBalance agrega las entradas de una partición sobre [start, end]
// (ambos inclusive). El componente Forwarded se calcula siempre como el saldo
// acumulado estrictamente antes de start, sin importar cuántos días abarque
// el rango. Entradas vacías producen Zero().
func ComputeBalance(entries []Entry, start, end time.Time) RangeBalance {
	out := Zero()
	for _, e := range sortEntries(entries) {
		switch {
		case e.OccurredAt.Before(start):
			out.Forwarded = out.Forwarded.Add(signed(e))
		case !e.OccurredAt.After(end):
			if e.Inbound {
				out.PeriodIn = out.PeriodIn.Add(e.Magnitude)
			} else {
				out.PeriodOut = out.PeriodOut.Add(e.Magnitude)
			}
		}
	}
	out.Balance = out.Forwarded.Add(out.PeriodIn).Sub(out.PeriodOut)
	return out
}

// DateOf trunca un instante a su fecha de negocio (medianoche UTC). Los rangos
// del agregador operan a granularidad de día; CreatedAt conserva la hora exacta
// para el desempate.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BalanceAsOf devuelve el saldo acumulado hasta asOf inclusive. Es el saldo de
// cierre del rango (−∞, asOf] y coincide con el Forwarded de asOf + 1 día.
func BalanceAsOf(entries []Entry, asOf time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if !e.OccurredAt.After(asOf) {
			total = total.Add(signed(e))
		}
	}
	return total
}
