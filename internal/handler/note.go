package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jaehyukc/growlog/internal/apperror"
	"github.com/jaehyukc/growlog/internal/service"
)

// NoteHandler exposes the note CRUD routes under /api/notes/{githubId}.
// It parses the request, delegates to NoteService, and shapes the response;
// every rule (validation, owner scoping) lives in the service.
type NoteHandler struct {
	notes  *service.NoteService
	logger *slog.Logger
}

func NewNoteHandler(notes *service.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, logger: logger}
}

// noteRequest is the body for create and update — title and content are
// replaced wholesale, there is no partial update.
type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HandleCreate saves a new note.
//
// HTTP: POST /api/notes/{githubId}
// BODY: {"title": "Week 1", "content": "did X"}
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid note JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	note, err := h.notes.Create(r.Context(), r.PathValue("githubId"), req.Title, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// HandleList returns one page of notes, newest first.
//
// HTTP: GET /api/notes/{githubId}?page=0&size=10
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	// Unparseable paging values fall back to defaults; the service clamps
	// out-of-range ones.
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	result, err := h.notes.List(r.Context(), r.PathValue("githubId"), page, size)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleGet returns a single note.
//
// HTTP: GET /api/notes/{githubId}/{noteId}
func (h *NoteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	noteID, ok := h.noteID(w, r)
	if !ok {
		return
	}

	note, err := h.notes.Get(r.Context(), r.PathValue("githubId"), noteID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// HandleUpdate replaces a note's title and content.
//
// HTTP: PUT /api/notes/{githubId}/{noteId}
func (h *NoteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	noteID, ok := h.noteID(w, r)
	if !ok {
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid note JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	note, err := h.notes.Update(r.Context(), r.PathValue("githubId"), noteID, req.Title, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// HandleDelete removes a note.
//
// HTTP: DELETE /api/notes/{githubId}/{noteId}
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	noteID, ok := h.noteID(w, r)
	if !ok {
		return
	}

	if err := h.notes.Delete(r.Context(), r.PathValue("githubId"), noteID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "note deleted"})
}

// HandleSearch substring-searches titles and contents.
//
// HTTP: GET /api/notes/{githubId}/search?keyword=foo
func (h *NoteHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.Search(r.Context(), r.PathValue("githubId"), r.URL.Query().Get("keyword"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notes":      notes,
		"totalCount": len(notes),
	})
}

// HandleCount returns the owner's note total.
//
// HTTP: GET /api/notes/{githubId}/count
func (h *NoteHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notes.Count(r.Context(), r.PathValue("githubId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// noteID parses the {noteId} path value. On failure it writes the
// validation error itself and reports false.
func (h *NoteHandler) noteID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := r.PathValue("noteId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		writeError(w, apperror.ValidationFailed("noteId", "note id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}
