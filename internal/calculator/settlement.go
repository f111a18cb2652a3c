package calculator

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Transaction is a transfer that settles debt: From pays To the given Amount.
type Transaction struct {
	FromParticipantID string          `json:"from"`
	FromName          string          `json:"fromName"`
	ToParticipantID   string          `json:"to"`
	ToName            string          `json:"toName"`
	Amount            decimal.Decimal `json:"amount"`
}

// position is a debtor or creditor with the amount still to be settled (always positive).
type position struct {
	id        string
	name      string
	remaining decimal.Decimal
}

// ComputeSettlement produces the transfers that bring every balance to zero.
//
// Balances within Tolerance of zero are treated as settled. Debtors and creditors
// are sorted by amount, largest first; equal amounts keep their input order. The
// largest debtor then pays the largest creditor min(debt, credit), and whichever
// side is exhausted moves on. At least one side is zeroed per step, so at most
// n-1 transactions are emitted for n unsettled balances.
//
// Sub-cent residue left over when the balances do not sum to zero is dropped.
func ComputeSettlement(balances []Balance) []Transaction {
	debtors, creditors := partition(balances)
	sortLargestFirst(debtors)
	sortLargestFirst(creditors)

	transactions := make([]Transaction, 0, min(len(debtors), len(creditors)))

	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		if amount.GreaterThan(Tolerance) {
			transactions = append(transactions, Transaction{
				FromParticipantID: debtor.id,
				FromName:          debtor.name,
				ToParticipantID:   creditor.id,
				ToName:            creditor.name,
				Amount:            RoundAmount(amount),
			})
		}

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		if debtor.remaining.LessThan(Tolerance) {
			i++
		}
		if creditor.remaining.LessThan(Tolerance) {
			j++
		}
	}

	return transactions
}

// partition splits unsettled balances into debtors and creditors, preserving input order.
func partition(balances []Balance) (debtors, creditors []position) {
	for _, b := range balances {
		switch {
		case b.NetBalance.LessThan(Tolerance.Neg()):
			debtors = append(debtors, position{id: b.ParticipantID, name: b.ParticipantName, remaining: b.NetBalance.Neg()})
		case b.NetBalance.GreaterThan(Tolerance):
			creditors = append(creditors, position{id: b.ParticipantID, name: b.ParticipantName, remaining: b.NetBalance})
		}
	}
	return debtors, creditors
}

func sortLargestFirst(positions []position) {
	slices.SortStableFunc(positions, func(a, b position) int {
		return b.remaining.Cmp(a.remaining)
	})
}

// ApplyTransactions returns a copy of balances with every transaction applied:
// the payer's net balance rises by the amount and the receiver's falls by it.
// Transactions naming a participant absent from balances are skipped.
func ApplyTransactions(balances []Balance, transactions []Transaction) []Balance {
	out := slices.Clone(balances)
	index := make(map[string]int, len(out))
	for i, b := range out {
		index[b.ParticipantID] = i
	}

	for _, t := range transactions {
		from, okFrom := index[t.FromParticipantID]
		to, okTo := index[t.ToParticipantID]
		if !okFrom || !okTo {
			continue
		}
		out[from].NetBalance = out[from].NetBalance.Add(t.Amount)
		out[to].NetBalance = out[to].NetBalance.Sub(t.Amount)
	}

	return out
}

// Residual returns the sum of all net balances. For a closed expense set it is
// within one cent per participant of zero.
func Residual(balances []Balance) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.NetBalance)
	}
	return sum
}

// SettlementBound is how far from zero a balance may end up after applying
// ComputeSettlement(balances). Skipping balances within Tolerance and dropping
// sub-cent steps leaves the residual, the skipped balances and up to two cents
// of step rounding unaccounted for.
func SettlementBound(balances []Balance) decimal.Decimal {
	bound := Tolerance.Mul(decimal.NewFromInt(2)).Add(Residual(balances).Abs())
	for _, b := range balances {
		if IsSettled(b.NetBalance) {
			bound = bound.Add(b.NetBalance.Abs())
		}
	}
	return bound
}
