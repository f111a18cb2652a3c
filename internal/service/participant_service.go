package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/kidoikoiaki/internal/models"
	"github.com/mmynk/kidoikoiaki/internal/storage"
)

// ParticipantService implements the Connect ParticipantService.
type ParticipantService struct {
	store storage.Store
}

// NewParticipantService creates a new ParticipantService with the given storage backend.
func NewParticipantService(store storage.Store) *ParticipantService {
	return &ParticipantService{store: store}
}

// AddParticipant puts a new person on a list's roster.
func (s *ParticipantService) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	listID := req.Msg.ListID
	name := strings.TrimSpace(req.Msg.Name)
	slog.Info("AddParticipant request received", "list_id", listID, "name", name)

	if listID == "" {
		return nil, invalidArgument("list_id required")
	}
	if name == "" {
		return nil, invalidArgument("name required")
	}

	participant := &models.Participant{ListID: listID, Name: name}
	if err := s.store.AddParticipant(ctx, participant); err != nil {
		slog.Error("AddParticipant failed", "list_id", listID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Participant added", "list_id", listID, "participant_id", participant.ID)

	return connect.NewResponse(&AddParticipantResponse{Participant: wireParticipant(participant)}), nil
}

// GetParticipant retrieves a participant by ID.
func (s *ParticipantService) GetParticipant(ctx context.Context, req *connect.Request[GetParticipantRequest]) (*connect.Response[GetParticipantResponse], error) {
	id := req.Msg.ParticipantID
	slog.Info("GetParticipant request received", "participant_id", id)

	if id == "" {
		return nil, invalidArgument("participant_id required")
	}

	participant, err := s.store.GetParticipant(ctx, id)
	if err != nil {
		slog.Error("GetParticipant failed", "participant_id", id, "error", err)
		return nil, storeError(err)
	}

	return connect.NewResponse(&GetParticipantResponse{Participant: wireParticipant(participant)}), nil
}

// ListParticipants returns a list's roster in the order people were added.
func (s *ParticipantService) ListParticipants(ctx context.Context, req *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error) {
	listID := req.Msg.ListID
	slog.Info("ListParticipants request received", "list_id", listID)

	if listID == "" {
		return nil, invalidArgument("list_id required")
	}

	// An empty roster and a missing list look the same to ListParticipants
	if _, err := s.store.GetList(ctx, listID); err != nil {
		slog.Error("ListParticipants failed", "list_id", listID, "error", err)
		return nil, storeError(err)
	}

	participants, err := s.store.ListParticipants(ctx, listID)
	if err != nil {
		slog.Error("ListParticipants failed", "list_id", listID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("ListParticipants successful", "list_id", listID, "count", len(participants))

	return connect.NewResponse(&ListParticipantsResponse{Participants: wireParticipants(participants)}), nil
}

// RenameParticipant changes a participant's display name.
func (s *ParticipantService) RenameParticipant(ctx context.Context, req *connect.Request[RenameParticipantRequest]) (*connect.Response[RenameParticipantResponse], error) {
	id := req.Msg.ParticipantID
	name := strings.TrimSpace(req.Msg.Name)
	slog.Info("RenameParticipant request received", "participant_id", id, "name", name)

	if id == "" {
		return nil, invalidArgument("participant_id required")
	}
	if name == "" {
		return nil, invalidArgument("name required")
	}

	if err := s.store.RenameParticipant(ctx, id, name); err != nil {
		slog.Error("RenameParticipant failed", "participant_id", id, "error", err)
		return nil, storeError(err)
	}

	participant, err := s.store.GetParticipant(ctx, id)
	if err != nil {
		slog.Error("Failed to fetch renamed participant", "participant_id", id, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Participant renamed", "participant_id", id)

	return connect.NewResponse(&RenameParticipantResponse{Participant: wireParticipant(participant)}), nil
}

// RemoveParticipant takes a participant off the roster. It is refused while the
// participant paid for an expense or is the only beneficiary of one.
func (s *ParticipantService) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	id := req.Msg.ParticipantID
	slog.Info("RemoveParticipant request received", "participant_id", id)

	if id == "" {
		return nil, invalidArgument("participant_id required")
	}

	if err := s.store.DeleteParticipant(ctx, id); err != nil {
		slog.Error("RemoveParticipant failed", "participant_id", id, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Participant removed", "participant_id", id)

	return connect.NewResponse(&RemoveParticipantResponse{}), nil
}
