// Package postgres реализует хранение заметок в PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"hdnotes/internal/notes/domain/entities"
	"hdnotes/internal/notes/ports/repositories"
	"hdnotes/pkg/logger"
)

const noteColumns = `id, user_id, title, content, created_at, updated_at`

// PgxPoolInterface - методы пула, которые использует репозиторий.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	err := row.Scan(&note.ID, &note.OwnerID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, ownerID string, draft entities.Draft) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", ownerID))

	query := `
        INSERT INTO notes (user_id, title, content)
        VALUES ($1, $2, $3)
        RETURNING ` + noteColumns

	note, err := scanNote(r.pool.QueryRow(ctx, query, ownerID, draft.Title, draft.Content))
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", note.ID))
	return note, nil
}

// ListByOwner получает заметки пользователя, новые первыми.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListByOwner"))
	log.Debug(ctx, "listing notes", zap.String("userID", ownerID))

	query := `SELECT ` + noteColumns + `
        FROM notes
        WHERE user_id = $1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// UpdateByIDAndOwner обновляет заметку владельца и возвращает новую версию.
func (r *NoteRepository) UpdateByIDAndOwner(ctx context.Context, id, ownerID string, draft entities.Draft) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "UpdateByIDAndOwner"))
	log.Debug(ctx, "updating note", zap.String("noteID", id), zap.String("userID", ownerID))

	query := `
        UPDATE notes
        SET title = $3, content = $4, updated_at = now()
        WHERE id = $1 AND user_id = $2
        RETURNING ` + noteColumns

	note, err := scanNote(r.pool.QueryRow(ctx, query, id, ownerID, draft.Title, draft.Content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found or not owned by user", zap.String("noteID", id))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// DeleteByIDAndOwner удаляет заметку владельца.
func (r *NoteRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "DeleteByIDAndOwner"))
	log.Debug(ctx, "deleting note", zap.String("noteID", id), zap.String("userID", ownerID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user", zap.String("noteID", id))
		return entities.ErrNoteNotFound
	}

	return nil
}
