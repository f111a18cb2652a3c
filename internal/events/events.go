// Package events publishes notifications about changes to a list's expenses.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Type names what happened. It doubles as the AMQP routing key.
type Type string

const (
	ExpenseCreated  Type = "expense.created"
	ExpenseUpdated  Type = "expense.updated"
	ExpenseDeleted  Type = "expense.deleted"
	PaymentRecorded Type = "payment.recorded"
)

// Event is the JSON body of every published message.
type Event struct {
	Type       Type            `json:"type"`
	ListID     string          `json:"listId"`
	ExpenseID  string          `json:"expenseId"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// New stamps an event with the current time.
func New(t Type, listID, expenseID string, amount decimal.Decimal) Event {
	return Event{
		Type:       t,
		ListID:     listID,
		ExpenseID:  expenseID,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events to whoever is listening.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
