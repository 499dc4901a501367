// Package api определяет порт сценариев работы с заметками.
package api

import (
	"context"

	"hdnotes/internal/notes/domain/entities"
)

// NoteUseCase определяет операции над заметками аутентифицированного пользователя.
type NoteUseCase interface {
	ListNotes(ctx context.Context, ownerID string) ([]*entities.Note, error)

	CreateNote(ctx context.Context, ownerID, title, content string) (*entities.Note, error)

	UpdateNote(ctx context.Context, ownerID, noteID, title, content string) (*entities.Note, error)

	DeleteNote(ctx context.Context, ownerID, noteID string) error
}
