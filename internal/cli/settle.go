package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/kidoikoiaki/internal/calculator"
)

// SettleOptions holds flags for the settle command.
type SettleOptions struct {
	Verify bool
}

// ledgerFile is the input document of the settle command.
type ledgerFile struct {
	Participants []calculator.Participant `json:"participants"`
	Expenses     []calculator.Expense     `json:"expenses"`
}

// SettleReport is what settle prints.
type SettleReport struct {
	Balances     []calculator.Balance     `json:"balances"`
	Transactions []calculator.Transaction `json:"transactions"`
	Verification *Verification            `json:"verification,omitempty"`
}

// Verification holds the balances left over once every transaction is applied.
type Verification struct {
	Bound     decimal.Decimal      `json:"bound"`
	Remaining []calculator.Balance `json:"remaining"`
	Settled   bool                 `json:"settled"`
}

// NewSettleCommand creates the settle command.
func NewSettleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SettleOptions{}

	cmd := &cobra.Command{
		Use:   "settle <file>",
		Short: "Compute balances and settlement transfers from a JSON file",
		Long: `Compute balances and settlement transfers offline.

The file (or - for stdin) holds participants and expenses:

  {
    "participants": [{"id": "a", "name": "Alice"}, ...],
    "expenses": [{"payerId": "a", "amount": "90", "beneficiaryIds": ["a", "b"]}, ...]
  }

With --verify the transfers are applied back onto the balances and every
participant must end up within the settlement bound of zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettle(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "apply the transfers and check every balance ends up settled")

	return cmd
}

func runSettle(rootOpts *RootOptions, opts *SettleOptions, path string, cmd *cobra.Command) error {
	ledger, err := readLedger(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	report, err := settle(ledger, opts.Verify)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot compute balances", err)
	}

	out := cmd.OutOrStdout()
	if rootOpts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		writeReport(out, report)
	}

	if report.Verification != nil && !report.Verification.Settled {
		return NewExitError(ExitFailure, "settlement leaves balances outside the bound")
	}
	return nil
}

func readLedger(path string, stdin io.Reader) (*ledgerFile, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "cannot open ledger", err)
		}
		defer f.Close()
		r = f
	}

	var ledger ledgerFile
	if err := json.NewDecoder(r).Decode(&ledger); err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot parse ledger", err)
	}
	return &ledger, nil
}

func settle(ledger *ledgerFile, verify bool) (*SettleReport, error) {
	balances, err := calculator.ComputeBalances(ledger.Participants, ledger.Expenses)
	if err != nil {
		return nil, err
	}

	report := &SettleReport{
		Balances:     balances,
		Transactions: calculator.ComputeSettlement(balances),
	}
	if report.Transactions == nil {
		report.Transactions = []calculator.Transaction{}
	}

	if verify {
		bound := calculator.SettlementBound(balances)
		remaining := calculator.ApplyTransactions(balances, report.Transactions)
		settled := true
		for _, b := range remaining {
			if b.NetBalance.Abs().GreaterThan(bound) {
				settled = false
			}
		}
		report.Verification = &Verification{Bound: bound, Remaining: remaining, Settled: settled}
	}

	return report, nil
}

func writeReport(w io.Writer, report *SettleReport) {
	width := len("Participant")
	for _, b := range report.Balances {
		width = max(width, len(b.ParticipantName))
	}

	fmt.Fprintf(w, "%-*s %10s %10s %10s\n", width, "Participant", "Paid", "Owed", "Net")
	for _, b := range report.Balances {
		fmt.Fprintf(w, "%-*s %10s %10s %10s\n", width, b.ParticipantName,
			b.TotalPaid.StringFixed(calculator.CurrencyPlaces),
			b.TotalOwed.StringFixed(calculator.CurrencyPlaces),
			signed(b.NetBalance))
	}

	fmt.Fprintln(w)
	if len(report.Transactions) == 0 {
		fmt.Fprintln(w, "Everyone is settled up.")
	} else {
		fmt.Fprintln(w, "Transactions")
		for _, t := range report.Transactions {
			fmt.Fprintf(w, "  %s -> %s: %s\n", t.FromName, t.ToName, t.Amount.StringFixed(calculator.CurrencyPlaces))
		}
	}

	if v := report.Verification; v != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "After settlement (bound %s)\n", v.Bound.StringFixed(calculator.CurrencyPlaces))
		for _, b := range v.Remaining {
			fmt.Fprintf(w, "%-*s %10s\n", width, b.ParticipantName, signed(b.NetBalance))
		}
		if v.Settled {
			fmt.Fprintln(w, "All balances within bound.")
		} else {
			fmt.Fprintln(w, "Some balances are outside the bound.")
		}
	}
}

func signed(d decimal.Decimal) string {
	s := d.StringFixed(calculator.CurrencyPlaces)
	if d.IsPositive() {
		return "+" + s
	}
	return s
}
