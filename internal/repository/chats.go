package repository

import (
	"context"
	"fmt"

	"github.com/chucky-1/expenses/internal/model"
)

// Chats remembers which chats passed the login screen
type Chats interface {
	Add(ctx context.Context, chatID int64, credentials model.Credentials) error
	Get(ctx context.Context, chatID int64) (model.Credentials, error)
}

type ChatsLocalStorage struct {
	m map[int64]model.Credentials
}

func NewChatsLocalStorage() *ChatsLocalStorage {
	return &ChatsLocalStorage{
		m: make(map[int64]model.Credentials),
	}
}

func (l *ChatsLocalStorage) Add(_ context.Context, chatID int64, credentials model.Credentials) error {
	l.m[chatID] = credentials
	return nil
}

func (l *ChatsLocalStorage) Get(_ context.Context, chatID int64) (model.Credentials, error) {
	v, ok := l.m[chatID]
	if !ok {
		return model.Credentials{}, fmt.Errorf("repository.ChatsLocalStorage.Get value with key: %d doesn't exist", chatID)
	}
	return v, nil
}
