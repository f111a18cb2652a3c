package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/kidoikoiaki/internal/calculator"
	"github.com/mmynk/kidoikoiaki/internal/events"
	"github.com/mmynk/kidoikoiaki/internal/models"
	"github.com/mmynk/kidoikoiaki/internal/observability"
	"github.com/mmynk/kidoikoiaki/internal/storage"
)

// DefaultPaymentTitle is used when RecordPayment is called without a title.
const DefaultPaymentTitle = "Reimbursement"

// BalanceService implements the Connect BalanceService.
type BalanceService struct {
	store     storage.Store
	publisher events.Publisher
	metrics   *observability.Metrics
}

// NewBalanceService creates a new BalanceService. A nil publisher drops events;
// nil metrics are not recorded.
func NewBalanceService(store storage.Store, publisher events.Publisher, metrics *observability.Metrics) *BalanceService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &BalanceService{store: store, publisher: publisher, metrics: metrics}
}

// GetBalances computes every participant's net position on a list and the
// transfers that would settle it.
func (s *BalanceService) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	listID := req.Msg.ListID
	slog.Info("GetBalances request received", "list_id", listID)

	if listID == "" {
		return nil, invalidArgument("list_id required")
	}

	ledger, err := s.store.GetLedger(ctx, listID)
	if err != nil {
		slog.Error("GetBalances failed - could not load list", "list_id", listID, "error", err)
		return nil, storeError(err)
	}

	roster, expenses := calculatorInput(ledger)

	balances, err := calculator.ComputeBalances(roster, expenses)
	if err != nil {
		slog.Error("GetBalances failed - calculation error", "list_id", listID, "error", err)
		s.metrics.ObserveSettlement(observability.OutcomeInvalid, 0)
		return nil, calculatorError(err)
	}
	transactions := calculator.ComputeSettlement(balances)
	s.metrics.ObserveSettlement(observability.OutcomeOK, len(transactions))

	slog.Info("GetBalances successful",
		"list_id", listID,
		"expenses_count", len(ledger.Expenses),
		"participants_count", len(ledger.Participants),
		"transactions_count", len(transactions),
	)

	return connect.NewResponse(&GetBalancesResponse{
		ListID:           ledger.List.ID,
		ListName:         ledger.List.Name,
		TotalAmount:      totalSpent(ledger.Expenses),
		ParticipantCount: len(ledger.Participants),
		ExpenseCount:     len(ledger.Expenses),
		Balances:         balances,
		Transactions:     transactions,
	}), nil
}

// RecordPayment records money handed from one participant to another as a
// reimbursement expense, which moves both balances toward zero.
func (s *BalanceService) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	msg := req.Msg
	slog.Info("RecordPayment request received",
		"list_id", msg.ListID,
		"from", msg.FromParticipantID,
		"to", msg.ToParticipantID,
		"amount", msg.Amount.String(),
	)

	if msg.ListID == "" {
		return nil, invalidArgument("list_id required")
	}
	if msg.FromParticipantID == "" || msg.ToParticipantID == "" {
		return nil, invalidArgument("from_participant_id and to_participant_id required")
	}
	if msg.FromParticipantID == msg.ToParticipantID {
		return nil, invalidArgument("a participant cannot pay themselves")
	}
	amount := calculator.RoundAmount(msg.Amount)
	if !amount.IsPositive() {
		return nil, invalidArgument("amount must be greater than zero, got %s", msg.Amount.String())
	}
	if amount.GreaterThan(calculator.MaxAmount) {
		return nil, invalidArgument("amount must not exceed %s, got %s", calculator.MaxAmount.String(), msg.Amount.String())
	}
	title := strings.TrimSpace(msg.Title)
	if title == "" {
		title = DefaultPaymentTitle
	}

	if _, err := s.store.GetList(ctx, msg.ListID); err != nil {
		slog.Error("RecordPayment failed - list not found", "list_id", msg.ListID, "error", err)
		return nil, storeError(err)
	}
	roster, err := s.store.ListParticipants(ctx, msg.ListID)
	if err != nil {
		slog.Error("RecordPayment failed - could not load roster", "list_id", msg.ListID, "error", err)
		return nil, storeError(err)
	}
	refs, err := resolveParticipants(roster, msg.FromParticipantID, []string{msg.ToParticipantID})
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ListID:       msg.ListID,
		Title:        title,
		Amount:       amount,
		Category:     models.CategoryReimbursement,
		PayerID:      msg.FromParticipantID,
		Participants: refs,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("RecordPayment failed", "list_id", msg.ListID, "error", err)
		return nil, storeError(err)
	}

	created, err := s.store.GetExpense(ctx, expense.ID)
	if err != nil {
		slog.Error("Failed to fetch recorded payment", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Payment recorded", "list_id", msg.ListID, "expense_id", created.ID)
	publishEvent(ctx, s.publisher, s.metrics,
		events.New(events.PaymentRecorded, created.ListID, created.ID, created.Amount))

	return connect.NewResponse(&RecordPaymentResponse{Expense: wireExpense(created)}), nil
}

// calculatorInput converts a stored ledger into the calculator's roster and expenses.
func calculatorInput(ledger *models.Ledger) ([]calculator.Participant, []calculator.Expense) {
	roster := make([]calculator.Participant, len(ledger.Participants))
	for i, p := range ledger.Participants {
		roster[i] = calculator.Participant{ID: p.ID, Name: p.Name}
	}

	expenses := make([]calculator.Expense, len(ledger.Expenses))
	for i := range ledger.Expenses {
		e := &ledger.Expenses[i]
		expenses[i] = calculator.Expense{
			PayerID:        e.PayerID,
			Amount:         e.Amount,
			BeneficiaryIDs: e.BeneficiaryIDs(),
		}
	}

	return roster, expenses
}

// totalSpent sums what the list spent. Reimbursements move money between
// participants and are left out.
func totalSpent(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Category == models.CategoryReimbursement {
			continue
		}
		total = total.Add(e.Amount)
	}
	return calculator.RoundAmount(total)
}
