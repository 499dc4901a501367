// Package repositories определяет порты хранения заметок.
package repositories

import (
	"context"

	"hdnotes/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс для работы с репозиторием заметок.
// Все операции, кроме Create, ограничены владельцем.
type NoteRepository interface {
	Create(ctx context.Context, ownerID string, draft entities.Draft) (*entities.Note, error)

	// ListByOwner возвращает заметки владельца, новые первыми.
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Note, error)

	UpdateByIDAndOwner(ctx context.Context, id, ownerID string, draft entities.Draft) (*entities.Note, error)

	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
}
