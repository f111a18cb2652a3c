package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/kidoikoiaki/internal/models"
	"github.com/mmynk/kidoikoiaki/internal/storage"
)

// ListService implements the Connect ListService.
type ListService struct {
	store storage.Store
}

// NewListService creates a new ListService with the given storage backend.
func NewListService(store storage.Store) *ListService {
	return &ListService{store: store}
}

// CreateList creates a new, empty list.
func (s *ListService) CreateList(ctx context.Context, req *connect.Request[CreateListRequest]) (*connect.Response[CreateListResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	slog.Info("CreateList request received", "name", name)

	if name == "" {
		return nil, invalidArgument("name required")
	}

	list := &models.List{
		Name:        name,
		Description: strings.TrimSpace(req.Msg.Description),
	}
	if err := s.store.CreateList(ctx, list); err != nil {
		slog.Error("CreateList failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("List created", "list_id", list.ID)

	return connect.NewResponse(&CreateListResponse{List: wireList(list)}), nil
}

// GetList returns a list with its roster and expenses.
func (s *ListService) GetList(ctx context.Context, req *connect.Request[GetListRequest]) (*connect.Response[GetListResponse], error) {
	listID := req.Msg.ListID
	slog.Info("GetList request received", "list_id", listID)

	if listID == "" {
		return nil, invalidArgument("list_id required")
	}

	ledger, err := s.store.GetLedger(ctx, listID)
	if err != nil {
		slog.Error("GetList failed", "list_id", listID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("GetList successful",
		"list_id", listID,
		"participants_count", len(ledger.Participants),
		"expenses_count", len(ledger.Expenses),
	)

	return connect.NewResponse(&GetListResponse{
		List:         wireList(&ledger.List),
		Participants: wireParticipants(ledger.Participants),
		Expenses:     wireExpenses(ledger.Expenses),
	}), nil
}

// ListLists returns every list, newest first.
func (s *ListService) ListLists(ctx context.Context, req *connect.Request[ListListsRequest]) (*connect.Response[ListListsResponse], error) {
	slog.Info("ListLists request received")

	lists, err := s.store.ListLists(ctx)
	if err != nil {
		slog.Error("ListLists failed", "error", err)
		return nil, storeError(err)
	}

	out := make([]*List, len(lists))
	for i := range lists {
		out[i] = wireList(&lists[i])
	}

	slog.Info("ListLists successful", "count", len(lists))

	return connect.NewResponse(&ListListsResponse{Lists: out}), nil
}

// UpdateList renames a list or changes its description.
func (s *ListService) UpdateList(ctx context.Context, req *connect.Request[UpdateListRequest]) (*connect.Response[UpdateListResponse], error) {
	listID := req.Msg.ListID
	name := strings.TrimSpace(req.Msg.Name)
	slog.Info("UpdateList request received", "list_id", listID, "name", name)

	if listID == "" {
		return nil, invalidArgument("list_id required")
	}
	if name == "" {
		return nil, invalidArgument("name required")
	}

	list := &models.List{
		ID:          listID,
		Name:        name,
		Description: strings.TrimSpace(req.Msg.Description),
	}
	if err := s.store.UpdateList(ctx, list); err != nil {
		slog.Error("UpdateList failed", "list_id", listID, "error", err)
		return nil, storeError(err)
	}

	// Re-read for CreatedAt
	updated, err := s.store.GetList(ctx, listID)
	if err != nil {
		slog.Error("Failed to fetch updated list", "list_id", listID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("List updated", "list_id", listID)

	return connect.NewResponse(&UpdateListResponse{List: wireList(updated)}), nil
}

// DeleteList removes a list and everything on it.
func (s *ListService) DeleteList(ctx context.Context, req *connect.Request[DeleteListRequest]) (*connect.Response[DeleteListResponse], error) {
	listID := req.Msg.ListID
	slog.Info("DeleteList request received", "list_id", listID)

	if listID == "" {
		return nil, invalidArgument("list_id required")
	}

	if err := s.store.DeleteList(ctx, listID); err != nil {
		slog.Error("DeleteList failed", "list_id", listID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("List deleted", "list_id", listID)

	return connect.NewResponse(&DeleteListResponse{}), nil
}
