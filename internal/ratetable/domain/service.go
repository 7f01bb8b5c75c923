package domain

import (
	"context"
	"errors"
)

type UpdateTableRequest struct {
	Prices Table  `json:"prices"`
	Labels Labels `json:"labels"`
}

type Service interface {
	// Effective returns the account's lookup view, auto-initializing a
	// custom record from defaults on first read.
	Effective(ctx context.Context, ownerID string) (Effective, error)
	Update(ctx context.Context, ownerID string, req UpdateTableRequest) (Effective, error)
	Reset(ctx context.Context, ownerID string) (Effective, error)
}

var (
	ErrInvalidOwner = errors.New("invalid_owner")
	ErrInvalidTable = errors.New("invalid_table")
)
