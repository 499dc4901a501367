package dto

import (
	"time"

	"hdnotes/internal/notes/domain/entities"
)

// NoteRequest содержит данные для создания и обновления заметки.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Note представляет заметку.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteResponse содержит заметку и сообщение о результате.
type NoteResponse struct {
	Message string `json:"message"`
	Note    Note   `json:"note"`
}

// ListNotesResponse содержит заметки пользователя.
type ListNotesResponse struct {
	Notes []Note `json:"notes"`
}

// NewNote переводит заметку в JSON представление.
func NewNote(n *entities.Note) Note {
	return Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// NewNotes переводит список заметок, сохраняя порядок.
func NewNotes(notes []*entities.Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNote(n))
	}
	return out
}
