package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/kidoikoiaki/internal/events"
	"github.com/mmynk/kidoikoiaki/internal/observability"
	"github.com/mmynk/kidoikoiaki/internal/storage/sqlite"
)

// recordingPublisher keeps every event it is handed.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type testClients struct {
	lists        *ListServiceClient
	participants *ParticipantServiceClient
	expenses     *ExpenseServiceClient
	balances     *BalanceServiceClient
	publisher    *recordingPublisher
	metrics      *observability.Metrics
}

// setupTestServer serves every service over a fresh SQLite database.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")

	publisher := &recordingPublisher{}
	metrics := observability.NewMetrics()

	mux := http.NewServeMux()
	mux.Handle(NewListServiceHandler(NewListService(store)))
	mux.Handle(NewParticipantServiceHandler(NewParticipantService(store)))
	mux.Handle(NewExpenseServiceHandler(NewExpenseService(store, publisher, metrics)))
	mux.Handle(NewBalanceServiceHandler(NewBalanceService(store, publisher, metrics)))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testClients{
		lists:        NewListServiceClient(server.Client(), server.URL),
		participants: NewParticipantServiceClient(server.Client(), server.URL),
		expenses:     NewExpenseServiceClient(server.Client(), server.URL),
		balances:     NewBalanceServiceClient(server.Client(), server.URL),
		publisher:    publisher,
		metrics:      metrics,
	}
}

// seed creates a list with the named participants and returns their IDs in roster order.
func (c *testClients) seed(t *testing.T, name string, people ...string) (string, []string) {
	t.Helper()
	ctx := context.Background()

	list, err := c.lists.CreateList(ctx, connect.NewRequest(&CreateListRequest{Name: name}))
	require.NoError(t, err)

	ids := make([]string, len(people))
	for i, person := range people {
		resp, err := c.participants.AddParticipant(ctx, connect.NewRequest(&AddParticipantRequest{
			ListID: list.Msg.List.ID,
			Name:   person,
		}))
		require.NoError(t, err)
		ids[i] = resp.Msg.Participant.ID
	}

	return list.Msg.List.ID, ids
}

func (c *testClients) addExpense(t *testing.T, listID, title, amount, payerID string, participantIDs ...string) *Expense {
	t.Helper()

	resp, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&CreateExpenseRequest{
		ListID:         listID,
		Title:          title,
		Amount:         decimal.RequireFromString(amount),
		PayerID:        payerID,
		ParticipantIDs: participantIDs,
	}))
	require.NoError(t, err)

	return resp.Msg.Expense
}

func assertCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, connect.CodeOf(err), "unexpected error: %v", err)
}

func TestListService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	created, err := c.lists.CreateList(ctx, connect.NewRequest(&CreateListRequest{
		Name:        "  Ski trip  ",
		Description: "Val Thorens",
	}))
	require.NoError(t, err)
	list := created.Msg.List
	assert.NotEmpty(t, list.ID)
	assert.Equal(t, "Ski trip", list.Name)
	assert.Equal(t, "Val Thorens", list.Description)
	assert.NotZero(t, list.CreatedAt)

	t.Run("CreateList requires a name", func(t *testing.T) {
		_, err := c.lists.CreateList(ctx, connect.NewRequest(&CreateListRequest{Name: "   "}))
		assertCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("GetList returns roster and expenses", func(t *testing.T) {
		_, err := c.participants.AddParticipant(ctx, connect.NewRequest(&AddParticipantRequest{ListID: list.ID, Name: "Alice"}))
		require.NoError(t, err)

		resp, err := c.lists.GetList(ctx, connect.NewRequest(&GetListRequest{ListID: list.ID}))
		require.NoError(t, err)
		assert.Equal(t, "Ski trip", resp.Msg.List.Name)
		require.Len(t, resp.Msg.Participants, 1)
		assert.Equal(t, "Alice", resp.Msg.Participants[0].Name)
		assert.Empty(t, resp.Msg.Expenses)
	})

	t.Run("GetList unknown list", func(t *testing.T) {
		_, err := c.lists.GetList(ctx, connect.NewRequest(&GetListRequest{ListID: "nope"}))
		assertCode(t, connect.CodeNotFound, err)
	})

	t.Run("ListLists", func(t *testing.T) {
		_, err := c.lists.CreateList(ctx, connect.NewRequest(&CreateListRequest{Name: "Flat 4B"}))
		require.NoError(t, err)

		resp, err := c.lists.ListLists(ctx, connect.NewRequest(&ListListsRequest{}))
		require.NoError(t, err)
		assert.Len(t, resp.Msg.Lists, 2)
	})

	t.Run("UpdateList", func(t *testing.T) {
		resp, err := c.lists.UpdateList(ctx, connect.NewRequest(&UpdateListRequest{
			ListID: list.ID,
			Name:   "Ski trip 2026",
		}))
		require.NoError(t, err)
		assert.Equal(t, "Ski trip 2026", resp.Msg.List.Name)
		assert.Empty(t, resp.Msg.List.Description)
		assert.Equal(t, list.CreatedAt, resp.Msg.List.CreatedAt)

		_, err = c.lists.UpdateList(ctx, connect.NewRequest(&UpdateListRequest{ListID: "nope", Name: "x"}))
		assertCode(t, connect.CodeNotFound, err)

		_, err = c.lists.UpdateList(ctx, connect.NewRequest(&UpdateListRequest{ListID: list.ID}))
		assertCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("DeleteList", func(t *testing.T) {
		_, err := c.lists.DeleteList(ctx, connect.NewRequest(&DeleteListRequest{ListID: list.ID}))
		require.NoError(t, err)

		_, err = c.lists.GetList(ctx, connect.NewRequest(&GetListRequest{ListID: list.ID}))
		assertCode(t, connect.CodeNotFound, err)

		_, err = c.lists.DeleteList(ctx, connect.NewRequest(&DeleteListRequest{ListID: list.ID}))
		assertCode(t, connect.CodeNotFound, err)
	})
}

func TestParticipantService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	listID, ids := c.seed(t, "Flat 4B", "Alice", "Bob", "Clara")

	t.Run("AddParticipant validates", func(t *testing.T) {
		_, err := c.participants.AddParticipant(ctx, connect.NewRequest(&AddParticipantRequest{ListID: listID}))
		assertCode(t, connect.CodeInvalidArgument, err)

		_, err = c.participants.AddParticipant(ctx, connect.NewRequest(&AddParticipantRequest{ListID: "nope", Name: "Dan"}))
		assertCode(t, connect.CodeNotFound, err)
	})

	t.Run("ListParticipants keeps insertion order", func(t *testing.T) {
		resp, err := c.participants.ListParticipants(ctx, connect.NewRequest(&ListParticipantsRequest{ListID: listID}))
		require.NoError(t, err)

		var names []string
		for _, p := range resp.Msg.Participants {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"Alice", "Bob", "Clara"}, names)

		_, err = c.participants.ListParticipants(ctx, connect.NewRequest(&ListParticipantsRequest{ListID: "nope"}))
		assertCode(t, connect.CodeNotFound, err)
	})

	t.Run("RenameParticipant", func(t *testing.T) {
		resp, err := c.participants.RenameParticipant(ctx, connect.NewRequest(&RenameParticipantRequest{
			ParticipantID: ids[1],
			Name:          "Bobby",
		}))
		require.NoError(t, err)
		assert.Equal(t, "Bobby", resp.Msg.Participant.Name)

		got, err := c.participants.GetParticipant(ctx, connect.NewRequest(&GetParticipantRequest{ParticipantID: ids[1]}))
		require.NoError(t, err)
		assert.Equal(t, "Bobby", got.Msg.Participant.Name)
		assert.Equal(t, listID, got.Msg.Participant.ListID)

		_, err = c.participants.RenameParticipant(ctx, connect.NewRequest(&RenameParticipantRequest{ParticipantID: "nope", Name: "x"}))
		assertCode(t, connect.CodeNotFound, err)
	})

	t.Run("RemoveParticipant refuses payers", func(t *testing.T) {
		c.addExpense(t, listID, "Rent", "900", ids[0], ids...)

		_, err := c.participants.RemoveParticipant(ctx, connect.NewRequest(&RemoveParticipantRequest{ParticipantID: ids[0]}))
		assertCode(t, connect.CodeFailedPrecondition, err)
	})

	t.Run("RemoveParticipant drops a shared beneficiary", func(t *testing.T) {
		_, err := c.participants.RemoveParticipant(ctx, connect.NewRequest(&RemoveParticipantRequest{ParticipantID: ids[2]}))
		require.NoError(t, err)

		expenses, err := c.expenses.ListExpenses(ctx, connect.NewRequest(&ListExpensesRequest{ListID: listID}))
		require.NoError(t, err)
		require.Len(t, expenses.Msg.Expenses, 1)
		assert.Len(t, expenses.Msg.Expenses[0].Participants, 2)

		_, err = c.participants.GetParticipant(ctx, connect.NewRequest(&GetParticipantRequest{ParticipantID: ids[2]}))
		assertCode(t, connect.CodeNotFound, err)
	})
}

func TestExpenseService_Create(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	listID, ids := c.seed(t, "Weekend", "Alice", "Bob", "Clara")
	otherListID, otherIDs := c.seed(t, "Elsewhere", "Zoe")

	t.Run("normalizes the expense", func(t *testing.T) {
		resp, err := c.expenses.CreateExpense(ctx, connect.NewRequest(&CreateExpenseRequest{
			ListID:         listID,
			Title:          "  Groceries ",
			Amount:         decimal.RequireFromString("42.505"),
			Category:       "food",
			PayerID:        ids[0],
			ParticipantIDs: []string{ids[2], ids[0], ids[2]},
		}))
		require.NoError(t, err)

		e := resp.Msg.Expense
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "Groceries", e.Title)
		assert.Equal(t, "42.51", e.Amount.String())
		assert.Equal(t, "food", e.Category)
		assert.Equal(t, "Alice", e.PayerName)
		assert.Equal(t, []ParticipantRef{
			{ID: ids[0], Name: "Alice"},
			{ID: ids[2], Name: "Clara"},
		}, e.Participants)
	})

	t.Run("category defaults to other", func(t *testing.T) {
		e := c.addExpense(t, listID, "Taxi", "12", ids[1], ids[1])
		assert.Equal(t, "other", e.Category)
	})

	t.Run("largest amount round-trips", func(t *testing.T) {
		e := c.addExpense(t, listID, "Villa", "10000000000000", ids[0], ids...)
		assert.Equal(t, "10000000000000", e.Amount.String())
	})

	tests := []struct {
		name string
		req  CreateExpenseRequest
		code connect.Code
	}{
		{
			name: "empty title",
			req:  CreateExpenseRequest{ListID: listID, Title: " ", Amount: decimal.NewFromInt(10), PayerID: ids[0], ParticipantIDs: ids},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "zero amount",
			req:  CreateExpenseRequest{ListID: listID, Title: "x", Amount: decimal.Zero, PayerID: ids[0], ParticipantIDs: ids},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "amount rounds to zero",
			req:  CreateExpenseRequest{ListID: listID, Title: "x", Amount: decimal.RequireFromString("0.004"), PayerID: ids[0], ParticipantIDs: ids},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "negative amount",
			req:  CreateExpenseRequest{ListID: listID, Title: "x", Amount: decimal.NewFromInt(-5), PayerID: ids[0], ParticipantIDs: ids},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "amount above the cap",
			req:  CreateExpenseRequest{ListID: listID, Title: "x", Amount: decimal.RequireFromString("10000000000000.01"), PayerID: ids[0], ParticipantIDs: ids},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "amount past int64 cents",
			req:  CreateExpenseRequest{ListID: listID, Title: "x", Amount: decimal.RequireFromString("1e20"), PayerID: ids[0], ParticipantIDs: ids},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown category",
			req:  CreateExpenseRequest{ListID: listID, Title: "x", Amount: decimal.NewFromInt(10), Category: "yachts", PayerID: ids[0], ParticipantIDs: ids},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "no beneficiaries",
			req:  CreateExpenseRequest{ListID: listID, Title: "x", Amount: decimal.NewFromInt(10), PayerID: ids[0]},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "payer from another list",
			req:  CreateExpenseRequest{ListID: listID, Title: "x", Amount: decimal.NewFromInt(10), PayerID: otherIDs[0], ParticipantIDs: ids},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "beneficiary from another list",
			req:  CreateExpenseRequest{ListID: otherListID, Title: "x", Amount: decimal.NewFromInt(10), PayerID: otherIDs[0], ParticipantIDs: []string{otherIDs[0], ids[1]}},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown list",
			req:  CreateExpenseRequest{ListID: "nope", Title: "x", Amount: decimal.NewFromInt(10), PayerID: ids[0], ParticipantIDs: ids},
			code: connect.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := c.expenses.CreateExpense(ctx, connect.NewRequest(&req))
			assertCode(t, tt.code, err)
		})
	}

	assert.Equal(t, []events.Type{events.ExpenseCreated, events.ExpenseCreated, events.ExpenseCreated}, c.publisher.types())
}

func TestExpenseService_UpdateAndDelete(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	listID, ids := c.seed(t, "Weekend", "Alice", "Bob")
	e := c.addExpense(t, listID, "Dinner", "60", ids[0], ids...)

	resp, err := c.expenses.UpdateExpense(ctx, connect.NewRequest(&UpdateExpenseRequest{
		ExpenseID:      e.ID,
		Title:          "Dinner and drinks",
		Amount:         decimal.RequireFromString("75.5"),
		Category:       "entertainment",
		PayerID:        ids[1],
		ParticipantIDs: []string{ids[0]},
	}))
	require.NoError(t, err)

	updated := resp.Msg.Expense
	assert.Equal(t, e.ID, updated.ID)
	assert.Equal(t, "Dinner and drinks", updated.Title)
	assert.Equal(t, "75.5", updated.Amount.String())
	assert.Equal(t, "Bob", updated.PayerName)
	assert.Equal(t, []ParticipantRef{{ID: ids[0], Name: "Alice"}}, updated.Participants)
	assert.Equal(t, e.CreatedAt, updated.CreatedAt)

	got, err := c.expenses.GetExpense(ctx, connect.NewRequest(&GetExpenseRequest{ExpenseID: e.ID}))
	require.NoError(t, err)
	assert.Equal(t, updated, got.Msg.Expense)

	_, err = c.expenses.UpdateExpense(ctx, connect.NewRequest(&UpdateExpenseRequest{
		ExpenseID:      "nope",
		Title:          "x",
		Amount:         decimal.NewFromInt(1),
		PayerID:        ids[0],
		ParticipantIDs: ids,
	}))
	assertCode(t, connect.CodeNotFound, err)

	_, err = c.expenses.UpdateExpense(ctx, connect.NewRequest(&UpdateExpenseRequest{
		ExpenseID:      e.ID,
		Title:          "x",
		Amount:         decimal.NewFromInt(1),
		PayerID:        "stranger",
		ParticipantIDs: ids,
	}))
	assertCode(t, connect.CodeInvalidArgument, err)

	_, err = c.expenses.DeleteExpense(ctx, connect.NewRequest(&DeleteExpenseRequest{ExpenseID: e.ID}))
	require.NoError(t, err)

	_, err = c.expenses.GetExpense(ctx, connect.NewRequest(&GetExpenseRequest{ExpenseID: e.ID}))
	assertCode(t, connect.CodeNotFound, err)

	_, err = c.expenses.DeleteExpense(ctx, connect.NewRequest(&DeleteExpenseRequest{ExpenseID: e.ID}))
	assertCode(t, connect.CodeNotFound, err)

	assert.Equal(t, []events.Type{
		events.ExpenseCreated,
		events.ExpenseUpdated,
		events.ExpenseDeleted,
	}, c.publisher.types())
}

func TestExpenseService_ListExpensesNewestFirst(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	listID, ids := c.seed(t, "Weekend", "Alice")
	c.addExpense(t, listID, "First", "1", ids[0], ids[0])
	c.addExpense(t, listID, "Second", "2", ids[0], ids[0])

	resp, err := c.expenses.ListExpenses(ctx, connect.NewRequest(&ListExpensesRequest{ListID: listID}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Expenses, 2)
	assert.Equal(t, "Second", resp.Msg.Expenses[0].Title)
	assert.Equal(t, "First", resp.Msg.Expenses[1].Title)
}

func TestExpenseService_PublishFailureIsNotFatal(t *testing.T) {
	c := setupTestServer(t)
	c.publisher.err = errors.New("broker down")

	listID, ids := c.seed(t, "Weekend", "Alice")
	e := c.addExpense(t, listID, "Coffee", "3.20", ids[0], ids[0])
	assert.NotEmpty(t, e.ID)

	failures := c.metrics.EventPublishFailures.WithLabelValues(string(events.ExpenseCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(failures))
}

func TestBalanceService_GetBalances(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	listID, ids := c.seed(t, "Weekend", "Alice", "Bob", "Clara")
	c.addExpense(t, listID, "Groceries", "90", ids[0], ids...)

	resp, err := c.balances.GetBalances(ctx, connect.NewRequest(&GetBalancesRequest{ListID: listID}))
	require.NoError(t, err)

	msg := resp.Msg
	assert.Equal(t, listID, msg.ListID)
	assert.Equal(t, "Weekend", msg.ListName)
	assert.Equal(t, "90", msg.TotalAmount.String())
	assert.Equal(t, 3, msg.ParticipantCount)
	assert.Equal(t, 1, msg.ExpenseCount)

	require.Len(t, msg.Balances, 3)
	assert.Equal(t, "Alice", msg.Balances[0].ParticipantName)
	assert.Equal(t, "60", msg.Balances[0].NetBalance.String())
	assert.Equal(t, "-30", msg.Balances[1].NetBalance.String())
	assert.Equal(t, "-30", msg.Balances[2].NetBalance.String())

	require.Len(t, msg.Transactions, 2)
	assert.Equal(t, ids[1], msg.Transactions[0].FromParticipantID)
	assert.Equal(t, ids[0], msg.Transactions[0].ToParticipantID)
	assert.Equal(t, "30", msg.Transactions[0].Amount.String())
	assert.Equal(t, ids[2], msg.Transactions[1].FromParticipantID)
	assert.Equal(t, "30", msg.Transactions[1].Amount.String())

	computations := c.metrics.BalanceComputations.WithLabelValues(observability.OutcomeOK)
	assert.Equal(t, 1.0, testutil.ToFloat64(computations))
}

func TestBalanceService_EmptyList(t *testing.T) {
	c := setupTestServer(t)

	listID, _ := c.seed(t, "Nothing yet")

	resp, err := c.balances.GetBalances(context.Background(), connect.NewRequest(&GetBalancesRequest{ListID: listID}))
	require.NoError(t, err)
	assert.Equal(t, "0", resp.Msg.TotalAmount.String())
	assert.Empty(t, resp.Msg.Balances)
	assert.Empty(t, resp.Msg.Transactions)
}

func TestBalanceService_GetBalancesErrors(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	_, err := c.balances.GetBalances(ctx, connect.NewRequest(&GetBalancesRequest{}))
	assertCode(t, connect.CodeInvalidArgument, err)

	_, err = c.balances.GetBalances(ctx, connect.NewRequest(&GetBalancesRequest{ListID: "nope"}))
	assertCode(t, connect.CodeNotFound, err)
}

func TestBalanceService_RecordPayment(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	listID, ids := c.seed(t, "Weekend", "Alice", "Bob", "Clara")
	c.addExpense(t, listID, "Groceries", "90", ids[0], ids...)

	paid, err := c.balances.RecordPayment(ctx, connect.NewRequest(&RecordPaymentRequest{
		ListID:            listID,
		FromParticipantID: ids[1],
		ToParticipantID:   ids[0],
		Amount:            decimal.NewFromInt(30),
	}))
	require.NoError(t, err)

	e := paid.Msg.Expense
	assert.Equal(t, DefaultPaymentTitle, e.Title)
	assert.Equal(t, "reimbursement", e.Category)
	assert.Equal(t, ids[1], e.PayerID)
	assert.Equal(t, []ParticipantRef{{ID: ids[0], Name: "Alice"}}, e.Participants)

	resp, err := c.balances.GetBalances(ctx, connect.NewRequest(&GetBalancesRequest{ListID: listID}))
	require.NoError(t, err)

	msg := resp.Msg
	assert.Equal(t, "90", msg.TotalAmount.String(), "reimbursements are not spending")
	assert.Equal(t, 2, msg.ExpenseCount)
	assert.Equal(t, "30", msg.Balances[0].NetBalance.String())
	assert.Equal(t, "0", msg.Balances[1].NetBalance.String())
	assert.Equal(t, "-30", msg.Balances[2].NetBalance.String())

	require.Len(t, msg.Transactions, 1)
	assert.Equal(t, ids[2], msg.Transactions[0].FromParticipantID)
	assert.Equal(t, ids[0], msg.Transactions[0].ToParticipantID)
	assert.Equal(t, "30", msg.Transactions[0].Amount.String())

	assert.Equal(t, []events.Type{events.ExpenseCreated, events.PaymentRecorded}, c.publisher.types())

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name string
			req  RecordPaymentRequest
			code connect.Code
		}{
			{"same participant", RecordPaymentRequest{ListID: listID, FromParticipantID: ids[0], ToParticipantID: ids[0], Amount: decimal.NewFromInt(1)}, connect.CodeInvalidArgument},
			{"zero amount", RecordPaymentRequest{ListID: listID, FromParticipantID: ids[1], ToParticipantID: ids[0]}, connect.CodeInvalidArgument},
			{"huge amount", RecordPaymentRequest{ListID: listID, FromParticipantID: ids[1], ToParticipantID: ids[0], Amount: decimal.RequireFromString("1e20")}, connect.CodeInvalidArgument},
			{"missing recipient", RecordPaymentRequest{ListID: listID, FromParticipantID: ids[1], Amount: decimal.NewFromInt(1)}, connect.CodeInvalidArgument},
			{"stranger", RecordPaymentRequest{ListID: listID, FromParticipantID: "stranger", ToParticipantID: ids[0], Amount: decimal.NewFromInt(1)}, connect.CodeInvalidArgument},
			{"unknown list", RecordPaymentRequest{ListID: "nope", FromParticipantID: ids[1], ToParticipantID: ids[0], Amount: decimal.NewFromInt(1)}, connect.CodeNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := tt.req
				_, err := c.balances.RecordPayment(ctx, connect.NewRequest(&req))
				assertCode(t, tt.code, err)
			})
		}
	})
}

func TestHandlers_UnknownProcedure(t *testing.T) {
	path, handler := NewListServiceHandler(NewListService(nil))
	assert.Equal(t, "/kidoikoiaki.v1.ListService/", path)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/kidoikoiaki.v1.ListService/Nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
