// Package entities описывает заметки пользователя.
package entities

import (
	"errors"
	"strings"
	"time"

	"hdnotes/pkg/apperr"
)

// ErrNoteNotFound возвращается, когда заметки нет или она принадлежит другому пользователю.
var ErrNoteNotFound = errors.New("note not found")

// ErrTitleAndContentRequired возвращается для пустого заголовка или текста после обрезки пробелов.
var ErrTitleAndContentRequired = apperr.New(apperr.KindValidation, "Title and content are required")

// Note - заметка, принадлежащая одному пользователю.
type Note struct {
	ID        string
	OwnerID   string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Draft - заголовок и текст заметки до сохранения.
type Draft struct {
	Title   string
	Content string
}

// NewDraft обрезает пробелы и проверяет, что оба поля непустые.
func NewDraft(title, content string) (Draft, error) {
	d := Draft{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}
	if d.Title == "" || d.Content == "" {
		return Draft{}, ErrTitleAndContentRequired
	}
	return d, nil
}
