// Package app реализует сценарии работы с заметками.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hdnotes/internal/notes/domain/entities"
	"hdnotes/internal/notes/ports/api"
	"hdnotes/internal/notes/ports/repositories"
	"hdnotes/pkg/apperr"
	"hdnotes/pkg/logger"
)

// ErrNotFound возвращается клиенту, когда заметки нет, id некорректен или заметка чужая.
var ErrNotFound = apperr.New(apperr.KindNotFound, "Note not found")

const (
	msgNoteRejected  = "note request rejected"
	msgNoteCreated   = "note created"
	msgNoteUpdated   = "note updated"
	msgNoteDeleted   = "note deleted"
	msgNoteNotFound  = "note not found for owner"
	msgErrRepository = "note repository failure"

	errCtxListing  = "listing notes"
	errCtxCreating = "creating note"
	errCtxUpdating = "updating note"
	errCtxDeleting = "deleting note"
)

// NoteUseCase реализует api.NoteUseCase.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository) api.NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo}
}

// ListNotes возвращает заметки пользователя, новые первыми.
func (uc *NoteUseCase) ListNotes(ctx context.Context, ownerID string) ([]*entities.Note, error) {
	notes, err := uc.noteRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrRepository, zap.String("method", "ListNotes"), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListing, err)
	}
	return notes, nil
}

// CreateNote создает заметку из обрезанных заголовка и текста.
func (uc *NoteUseCase) CreateNote(ctx context.Context, ownerID, title, content string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "CreateNote"), zap.String("userID", ownerID))

	draft, err := entities.NewDraft(title, content)
	if err != nil {
		log.Debug(ctx, msgNoteRejected, zap.Error(err))
		return nil, err
	}

	note, err := uc.noteRepo.Create(ctx, ownerID, draft)
	if err != nil {
		log.Error(ctx, msgErrRepository, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreating, err)
	}

	log.Info(ctx, msgNoteCreated, zap.String("noteID", note.ID))
	return note, nil
}

// UpdateNote заменяет заголовок и текст заметки владельца.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, ownerID, noteID, title, content string) (*entities.Note, error) {
	log := logger.Log(ctx).With(
		zap.String("method", "UpdateNote"),
		zap.String("userID", ownerID),
		zap.String("noteID", noteID),
	)

	draft, err := entities.NewDraft(title, content)
	if err != nil {
		log.Debug(ctx, msgNoteRejected, zap.Error(err))
		return nil, err
	}

	if !validID(noteID) {
		log.Debug(ctx, msgNoteNotFound)
		return nil, ErrNotFound
	}

	note, err := uc.noteRepo.UpdateByIDAndOwner(ctx, noteID, ownerID, draft)
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgNoteNotFound)
			return nil, fmt.Errorf("%s: %w", errCtxUpdating, ErrNotFound)
		}
		log.Error(ctx, msgErrRepository, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdating, err)
	}

	log.Info(ctx, msgNoteUpdated)
	return note, nil
}

// DeleteNote удаляет заметку владельца.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, ownerID, noteID string) error {
	log := logger.Log(ctx).With(
		zap.String("method", "DeleteNote"),
		zap.String("userID", ownerID),
		zap.String("noteID", noteID),
	)

	if !validID(noteID) {
		log.Debug(ctx, msgNoteNotFound)
		return ErrNotFound
	}

	if err := uc.noteRepo.DeleteByIDAndOwner(ctx, noteID, ownerID); err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgNoteNotFound)
			return fmt.Errorf("%s: %w", errCtxDeleting, ErrNotFound)
		}
		log.Error(ctx, msgErrRepository, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeleting, err)
	}

	log.Info(ctx, msgNoteDeleted)
	return nil
}

// validID отсекает id, которые не могут быть ключом заметки.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
