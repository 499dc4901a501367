// Package notes содержит HTTP обработчики для управления заметками.
package notes

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"hdnotes/internal/api/app/dto"
	"hdnotes/internal/api/app/http/middleware"
	"hdnotes/internal/api/app/http/request"
	"hdnotes/internal/api/app/http/response"
	"hdnotes/internal/auth/domain/services"
	"hdnotes/internal/notes/ports/api"
	"hdnotes/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerCreateNote = "handling create note request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgFailedRequest      = "note request failed"
)

// Сообщения ответов.
const (
	MsgNoteCreated      = "Note created successfully"
	MsgNoteUpdated      = "Note updated successfully"
	MsgNoteDeleted      = "Note deleted successfully"
	MsgFetchNotesFailed = "Failed to fetch notes"
	MsgCreateNoteFailed = "Failed to create note"
	MsgUpdateNoteFailed = "Failed to update note"
	MsgDeleteNoteFailed = "Failed to delete note"
)

const paramNoteID = "id"

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notes     api.NoteUseCase
	responder *response.Responder
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notes api.NoteUseCase, r *response.Responder) *Handler {
	return &Handler{
		notes:     notes,
		responder: r,
	}
}

// ListNotes возвращает заметки текущего пользователя, новые первыми.
func (h *Handler) ListNotes(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(requestCtx, LogHandlerListNotes)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		return h.responder.Error(c, services.ErrMissingToken, MsgFetchNotesFailed)
	}

	notes, err := h.notes.ListNotes(requestCtx, user.ID)
	if err != nil {
		log.Debug(requestCtx, ErrMsgFailedRequest, zap.Error(err))
		return h.responder.Error(c, err, MsgFetchNotesFailed)
	}

	return h.responder.JSON(c, fiber.StatusOK, dto.ListNotesResponse{Notes: dto.NewNotes(notes)})
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		return h.responder.Error(c, services.ErrMissingToken, MsgCreateNoteFailed)
	}

	var req dto.NoteRequest
	if err := request.BindJSON(c, &req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return h.responder.Message(c, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	note, err := h.notes.CreateNote(requestCtx, user.ID, req.Title, req.Content)
	if err != nil {
		log.Debug(requestCtx, ErrMsgFailedRequest, zap.Error(err))
		return h.responder.Error(c, err, MsgCreateNoteFailed)
	}

	return h.responder.JSON(c, fiber.StatusCreated, dto.NoteResponse{
		Message: MsgNoteCreated,
		Note:    dto.NewNote(note),
	})
}

// UpdateNote обрабатывает запрос на обновление заметки.
func (h *Handler) UpdateNote(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	noteID := c.Params(paramNoteID)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"), zap.String("noteID", noteID))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		return h.responder.Error(c, services.ErrMissingToken, MsgUpdateNoteFailed)
	}

	var req dto.NoteRequest
	if err := request.BindJSON(c, &req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return h.responder.Message(c, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	note, err := h.notes.UpdateNote(requestCtx, user.ID, noteID, req.Title, req.Content)
	if err != nil {
		log.Debug(requestCtx, ErrMsgFailedRequest, zap.Error(err))
		return h.responder.Error(c, err, MsgUpdateNoteFailed)
	}

	return h.responder.JSON(c, fiber.StatusOK, dto.NoteResponse{
		Message: MsgNoteUpdated,
		Note:    dto.NewNote(note),
	})
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *Handler) DeleteNote(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	noteID := c.Params(paramNoteID)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"), zap.String("noteID", noteID))
	log.Debug(requestCtx, LogHandlerDeleteNote)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		return h.responder.Error(c, services.ErrMissingToken, MsgDeleteNoteFailed)
	}

	if err := h.notes.DeleteNote(requestCtx, user.ID, noteID); err != nil {
		log.Debug(requestCtx, ErrMsgFailedRequest, zap.Error(err))
		return h.responder.Error(c, err, MsgDeleteNoteFailed)
	}

	return h.responder.Message(c, fiber.StatusOK, MsgNoteDeleted)
}
