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

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store     storage.Store
	publisher events.Publisher
	metrics   *observability.Metrics
}

// NewExpenseService creates a new ExpenseService. A nil publisher drops events;
// nil metrics are not recorded.
func NewExpenseService(store storage.Store, publisher events.Publisher, metrics *observability.Metrics) *ExpenseService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ExpenseService{store: store, publisher: publisher, metrics: metrics}
}

// expenseInput is the part of a create or update request that gets validated.
type expenseInput struct {
	title          string
	amount         decimal.Decimal
	category       string
	payerID        string
	participantIDs []string
}

// validate checks the fields that need no store access and returns the
// normalized title, amount and category.
func (in expenseInput) validate() (string, decimal.Decimal, models.Category, error) {
	title := strings.TrimSpace(in.title)
	if title == "" {
		return "", decimal.Zero, "", invalidArgument("title required")
	}

	amount := calculator.RoundAmount(in.amount)
	if !amount.IsPositive() {
		return "", decimal.Zero, "", invalidArgument("amount must be greater than zero, got %s", in.amount.String())
	}
	if amount.GreaterThan(calculator.MaxAmount) {
		return "", decimal.Zero, "", invalidArgument("amount must not exceed %s, got %s", calculator.MaxAmount.String(), in.amount.String())
	}

	category, err := models.ParseCategory(strings.TrimSpace(in.category))
	if err != nil {
		return "", decimal.Zero, "", connect.NewError(connect.CodeInvalidArgument, err)
	}

	if in.payerID == "" {
		return "", decimal.Zero, "", invalidArgument("payer_id required")
	}
	if len(in.participantIDs) == 0 {
		return "", decimal.Zero, "", invalidArgument("at least one participant required")
	}

	return title, amount, category, nil
}

// resolveParticipants checks the payer and beneficiaries against the list's roster
// and returns the beneficiaries deduplicated and in roster order.
func resolveParticipants(roster []models.Participant, payerID string, participantIDs []string) ([]models.ParticipantRef, error) {
	wanted := make(map[string]bool, len(participantIDs))
	for _, id := range participantIDs {
		wanted[id] = true
	}

	payerFound := false
	refs := make([]models.ParticipantRef, 0, len(wanted))
	for _, p := range roster {
		if p.ID == payerID {
			payerFound = true
		}
		if wanted[p.ID] {
			refs = append(refs, models.ParticipantRef{ID: p.ID, Name: p.Name})
			delete(wanted, p.ID)
		}
	}

	if !payerFound {
		return nil, invalidArgument("payer %s is not on this list", payerID)
	}
	for _, id := range participantIDs {
		if wanted[id] {
			return nil, invalidArgument("participant %s is not on this list", id)
		}
	}

	return refs, nil
}

// CreateExpense records a payment split evenly among its beneficiaries.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	msg := req.Msg
	slog.Info("CreateExpense request received",
		"list_id", msg.ListID,
		"amount", msg.Amount.String(),
		"participants_count", len(msg.ParticipantIDs),
	)

	if msg.ListID == "" {
		return nil, invalidArgument("list_id required")
	}
	title, amount, category, err := expenseInput{
		title:          msg.Title,
		amount:         msg.Amount,
		category:       msg.Category,
		payerID:        msg.PayerID,
		participantIDs: msg.ParticipantIDs,
	}.validate()
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetList(ctx, msg.ListID); err != nil {
		slog.Error("CreateExpense failed - list not found", "list_id", msg.ListID, "error", err)
		return nil, storeError(err)
	}
	roster, err := s.store.ListParticipants(ctx, msg.ListID)
	if err != nil {
		slog.Error("CreateExpense failed - could not load roster", "list_id", msg.ListID, "error", err)
		return nil, storeError(err)
	}
	refs, err := resolveParticipants(roster, msg.PayerID, msg.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ListID:       msg.ListID,
		Title:        title,
		Amount:       amount,
		Category:     category,
		PayerID:      msg.PayerID,
		Participants: refs,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "list_id", msg.ListID, "error", err)
		return nil, storeError(err)
	}

	created, err := s.store.GetExpense(ctx, expense.ID)
	if err != nil {
		slog.Error("Failed to fetch created expense", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense created", "list_id", msg.ListID, "expense_id", expense.ID)
	s.publish(ctx, events.New(events.ExpenseCreated, created.ListID, created.ID, created.Amount))

	return connect.NewResponse(&CreateExpenseResponse{Expense: wireExpense(created)}), nil
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	id := req.Msg.ExpenseID
	slog.Info("GetExpense request received", "expense_id", id)

	if id == "" {
		return nil, invalidArgument("expense_id required")
	}

	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		slog.Error("GetExpense failed", "expense_id", id, "error", err)
		return nil, storeError(err)
	}

	return connect.NewResponse(&GetExpenseResponse{Expense: wireExpense(expense)}), nil
}

// ListExpenses returns a list's expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	listID := req.Msg.ListID
	slog.Info("ListExpenses request received", "list_id", listID)

	if listID == "" {
		return nil, invalidArgument("list_id required")
	}

	if _, err := s.store.GetList(ctx, listID); err != nil {
		slog.Error("ListExpenses failed", "list_id", listID, "error", err)
		return nil, storeError(err)
	}

	expenses, err := s.store.ListExpenses(ctx, listID)
	if err != nil {
		slog.Error("ListExpenses failed", "list_id", listID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("ListExpenses successful", "list_id", listID, "count", len(expenses))

	return connect.NewResponse(&ListExpensesResponse{Expenses: wireExpenses(expenses)}), nil
}

// UpdateExpense replaces every editable field of an expense.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	msg := req.Msg
	slog.Info("UpdateExpense request received",
		"expense_id", msg.ExpenseID,
		"amount", msg.Amount.String(),
		"participants_count", len(msg.ParticipantIDs),
	)

	if msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id required")
	}
	title, amount, category, err := expenseInput{
		title:          msg.Title,
		amount:         msg.Amount,
		category:       msg.Category,
		payerID:        msg.PayerID,
		participantIDs: msg.ParticipantIDs,
	}.validate()
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetExpense(ctx, msg.ExpenseID)
	if err != nil {
		slog.Error("UpdateExpense failed - expense not found", "expense_id", msg.ExpenseID, "error", err)
		return nil, storeError(err)
	}
	roster, err := s.store.ListParticipants(ctx, existing.ListID)
	if err != nil {
		slog.Error("UpdateExpense failed - could not load roster", "list_id", existing.ListID, "error", err)
		return nil, storeError(err)
	}
	refs, err := resolveParticipants(roster, msg.PayerID, msg.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ID:           existing.ID,
		ListID:       existing.ListID,
		Title:        title,
		Amount:       amount,
		Category:     category,
		PayerID:      msg.PayerID,
		Participants: refs,
	}
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", msg.ExpenseID, "error", err)
		return nil, storeError(err)
	}

	updated, err := s.store.GetExpense(ctx, expense.ID)
	if err != nil {
		slog.Error("Failed to fetch updated expense", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense updated", "expense_id", expense.ID)
	s.publish(ctx, events.New(events.ExpenseUpdated, updated.ListID, updated.ID, updated.Amount))

	return connect.NewResponse(&UpdateExpenseResponse{Expense: wireExpense(updated)}), nil
}

// DeleteExpense removes an expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	id := req.Msg.ExpenseID
	slog.Info("DeleteExpense request received", "expense_id", id)

	if id == "" {
		return nil, invalidArgument("expense_id required")
	}

	// Read first so the event can carry the list and amount
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		slog.Error("DeleteExpense failed", "expense_id", id, "error", err)
		return nil, storeError(err)
	}

	if err := s.store.DeleteExpense(ctx, id); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", id, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense deleted", "expense_id", id)
	s.publish(ctx, events.New(events.ExpenseDeleted, expense.ListID, expense.ID, expense.Amount))

	return connect.NewResponse(&DeleteExpenseResponse{}), nil
}

func (s *ExpenseService) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.publisher, s.metrics, event)
}

// publishEvent delivers event and only logs a failure. The write it describes
// has already been committed.
func publishEvent(ctx context.Context, publisher events.Publisher, metrics *observability.Metrics, event events.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish event",
			"type", event.Type,
			"list_id", event.ListID,
			"expense_id", event.ExpenseID,
			"error", err,
		)
		metrics.PublishFailed(string(event.Type))
	}
}
