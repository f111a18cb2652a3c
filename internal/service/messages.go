package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/kidoikoiaki/internal/calculator"
	"github.com/mmynk/kidoikoiaki/internal/models"
)

// Wire types for the kidoikoiaki.v1 services. Amounts are decimal strings on the
// wire; plain JSON numbers are accepted on input.

type List struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

type Participant struct {
	ID        string `json:"id"`
	ListID    string `json:"listId"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

type ParticipantRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Expense struct {
	ID           string           `json:"id"`
	ListID       string           `json:"listId"`
	Title        string           `json:"title"`
	Amount       decimal.Decimal  `json:"amount"`
	Category     string           `json:"category"`
	PayerID      string           `json:"payerId"`
	PayerName    string           `json:"payerName"`
	Participants []ParticipantRef `json:"participants"`
	CreatedAt    int64            `json:"createdAt"`
}

// ListService

type CreateListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreateListResponse struct {
	List *List `json:"list"`
}

type GetListRequest struct {
	ListID string `json:"listId"`
}

type GetListResponse struct {
	List         *List          `json:"list"`
	Participants []*Participant `json:"participants"`
	Expenses     []*Expense     `json:"expenses"`
}

type ListListsRequest struct{}

type ListListsResponse struct {
	Lists []*List `json:"lists"`
}

type UpdateListRequest struct {
	ListID      string `json:"listId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UpdateListResponse struct {
	List *List `json:"list"`
}

type DeleteListRequest struct {
	ListID string `json:"listId"`
}

type DeleteListResponse struct{}

// ParticipantService

type AddParticipantRequest struct {
	ListID string `json:"listId"`
	Name   string `json:"name"`
}

type AddParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type GetParticipantRequest struct {
	ParticipantID string `json:"participantId"`
}

type GetParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type ListParticipantsRequest struct {
	ListID string `json:"listId"`
}

type ListParticipantsResponse struct {
	Participants []*Participant `json:"participants"`
}

type RenameParticipantRequest struct {
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
}

type RenameParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type RemoveParticipantRequest struct {
	ParticipantID string `json:"participantId"`
}

type RemoveParticipantResponse struct{}

// ExpenseService

type CreateExpenseRequest struct {
	ListID         string          `json:"listId"`
	Title          string          `json:"title"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category,omitempty"`
	PayerID        string          `json:"payerId"`
	ParticipantIDs []string        `json:"participantIds"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	ListID string `json:"listId"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type UpdateExpenseRequest struct {
	ExpenseID      string          `json:"expenseId"`
	Title          string          `json:"title"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category,omitempty"`
	PayerID        string          `json:"payerId"`
	ParticipantIDs []string        `json:"participantIds"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

// BalanceService

type GetBalancesRequest struct {
	ListID string `json:"listId"`
}

type GetBalancesResponse struct {
	ListID           string                   `json:"listId"`
	ListName         string                   `json:"listName"`
	TotalAmount      decimal.Decimal          `json:"totalAmount"`
	ParticipantCount int                      `json:"participantCount"`
	ExpenseCount     int                      `json:"expenseCount"`
	Balances         []calculator.Balance     `json:"balances"`
	Transactions     []calculator.Transaction `json:"transactions"`
}

type RecordPaymentRequest struct {
	ListID            string          `json:"listId"`
	FromParticipantID string          `json:"fromParticipantId"`
	ToParticipantID   string          `json:"toParticipantId"`
	Amount            decimal.Decimal `json:"amount"`
	Title             string          `json:"title,omitempty"`
}

type RecordPaymentResponse struct {
	Expense *Expense `json:"expense"`
}

// GetListID getters let interceptors tag a call with the list it touches.

func (r *GetListRequest) GetListID() string { return r.ListID }
func (r *UpdateListRequest) GetListID() string { return r.ListID }
func (r *DeleteListRequest) GetListID() string { return r.ListID }
func (r *AddParticipantRequest) GetListID() string { return r.ListID }
func (r *ListParticipantsRequest) GetListID() string { return r.ListID }
func (r *CreateExpenseRequest) GetListID() string { return r.ListID }
func (r *ListExpensesRequest) GetListID() string { return r.ListID }
func (r *GetBalancesRequest) GetListID() string { return r.ListID }
func (r *RecordPaymentRequest) GetListID() string { return r.ListID }

func wireList(l *models.List) *List {
	return &List{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func wireParticipant(p *models.Participant) *Participant {
	return &Participant{
		ID:        p.ID,
		ListID:    p.ListID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

func wireParticipants(participants []models.Participant) []*Participant {
	out := make([]*Participant, len(participants))
	for i := range participants {
		out[i] = wireParticipant(&participants[i])
	}
	return out
}

func wireExpense(e *models.Expense) *Expense {
	refs := make([]ParticipantRef, len(e.Participants))
	for i, p := range e.Participants {
		refs[i] = ParticipantRef{ID: p.ID, Name: p.Name}
	}
	return &Expense{
		ID:           e.ID,
		ListID:       e.ListID,
		Title:        e.Title,
		Amount:       e.Amount,
		Category:     string(e.Category),
		PayerID:      e.PayerID,
		PayerName:    e.PayerName,
		Participants: refs,
		CreatedAt:    e.CreatedAt,
	}
}

func wireExpenses(expenses []models.Expense) []*Expense {
	out := make([]*Expense, len(expenses))
	for i := range expenses {
		out[i] = wireExpense(&expenses[i])
	}
	return out
}
