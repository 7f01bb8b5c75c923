package domain

import (
	"context"
	"errors"
)

type UpsertClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
}

type Service interface {
	Create(ctx context.Context, ownerID string, req UpsertClientRequest) (Client, error)
	Get(ctx context.Context, ownerID, clientID string) (Client, error)
	List(ctx context.Context, ownerID string) ([]Client, error)
	Update(ctx context.Context, ownerID, clientID string, req UpsertClientRequest) (Client, error)
	Delete(ctx context.Context, ownerID, clientID string) error
}

var (
	ErrInvalidOwner   = errors.New("invalid_owner")
	ErrInvalidClient  = errors.New("invalid_client")
	ErrMissingName    = errors.New("missing_name")
	ErrClientNotFound = errors.New("client_not_found")
)
