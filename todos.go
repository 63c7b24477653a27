package agriassist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// Todos serves the user-scoped todo list. Every query is keyed by the
// authenticated user's id; other users' todos are invisible.
type Todos struct {
	Store TodoStore
}

// HandleList returns the user's todos, newest first.
func (t *Todos) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := GetUserIDFromContext(r.Context())

	todos, err := t.Store.GetUserTodos(userID)
	if err != nil {
		log.Printf("Get todos error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// HandleCreate creates a todo for the authenticated user.
func (t *Todos) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := GetUserIDFromContext(r.Context())

	var req struct {
		Title string `json:"title"`
		Note  string `json:"note"`
		Tag   string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" {
		writeMessage(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Title) > MaxTodoTitleLen {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("title must be at most %d characters", MaxTodoTitleLen))
		return
	}
	if len(req.Note) > MaxTodoNoteLen {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("note must be at most %d characters", MaxTodoNoteLen))
		return
	}

	todo := &Todo{
		ID:     newUUID(),
		UserID: userID,
		Title:  req.Title,
		Note:   req.Note,
		Tag:    req.Tag,
	}
	if err := t.Store.CreateTodo(todo); err != nil {
		log.Printf("Create todo error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

// HandlePatch applies a partial update: only the fields present in the
// request body change.
func (t *Todos) HandlePatch(w http.ResponseWriter, r *http.Request) {
	userID := GetUserIDFromContext(r.Context())
	id := mux.Vars(r)["id"]

	var req struct {
		Title *string `json:"title"`
		Note  *string `json:"note"`
		Tag   *string `json:"tag"`
		Done  *bool   `json:"done"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			writeMessage(w, http.StatusBadRequest, "title is required")
			return
		}
		if len(*req.Title) > MaxTodoTitleLen {
			writeMessage(w, http.StatusBadRequest, fmt.Sprintf("title must be at most %d characters", MaxTodoTitleLen))
			return
		}
	}
	if req.Note != nil && len(*req.Note) > MaxTodoNoteLen {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("note must be at most %d characters", MaxTodoNoteLen))
		return
	}

	todo, err := t.Store.GetTodo(id, userID)
	if err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			writeMessage(w, http.StatusNotFound, "Todo not found")
			return
		}
		log.Printf("Update todo error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	if req.Title != nil {
		todo.Title = *req.Title
	}
	if req.Note != nil {
		todo.Note = *req.Note
	}
	if req.Tag != nil {
		todo.Tag = *req.Tag
	}
	if req.Done != nil {
		todo.Done = *req.Done
	}

	if err := t.Store.SaveTodo(todo); err != nil {
		log.Printf("Update todo error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}
