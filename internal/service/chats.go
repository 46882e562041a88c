package service

import (
	"context"

	"github.com/chucky-1/expenses/internal/model"
	"github.com/chucky-1/expenses/internal/repository"
)

type Chats interface {
	Add(ctx context.Context, chatID int64, credentials model.Credentials) error
	Get(ctx context.Context, chatID int64) (model.Credentials, error)
}

type chats struct {
	repo repository.Chats
}

func NewChats(repo repository.Chats) *chats {
	return &chats{
		repo: repo,
	}
}

func (c *chats) Add(ctx context.Context, chatID int64, credentials model.Credentials) error {
	return c.repo.Add(ctx, chatID, credentials)
}

func (c *chats) Get(ctx context.Context, chatID int64) (model.Credentials, error) {
	return c.repo.Get(ctx, chatID)
}
