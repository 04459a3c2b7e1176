package httpserver

import (
	"errors"
	"net/http"
	"strings"

	tododomainerrors "crudhub/contexts/workspace/todo-service/domain/errors"
	todohttp "crudhub/contexts/workspace/todo-service/transport/http"
)

func (s *Server) registerTodoRoutes() {
	s.mux.HandleFunc("POST /api/todos", s.handleCreateTodo)
	s.mux.HandleFunc("GET /api/todos", s.handleListTodos)
	s.mux.HandleFunc("GET /api/todos/{id}", s.handleGetTodo)
	s.mux.HandleFunc("PUT /api/todos/{id}", s.handleUpdateTodo)
	s.mux.HandleFunc("DELETE /api/todos/{id}", s.handleDeleteTodo)
}

// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param X-User-Id header string true "owner id"
// @Param body body todohttp.CreateTodoRequest true "todo"
// @Success 201 {object} todohttp.TodoDTO
// @Failure 400 {object} todohttp.ErrorResponse
// @Router /api/todos [post]
func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireTodoUser(w, r)
	if !ok {
		return
	}
	var req todohttp.CreateTodoRequest
	if !s.decodeJSON(w, r, &req, writeTodoError) {
		return
	}
	resp, err := s.todos.Handler.CreateTodoHandler(r.Context(), ownerID, req)
	if err != nil {
		s.writeTodoDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// @Summary List todos
// @Tags todos
// @Produce json
// @Param status query string false "pending, in-progress or completed"
// @Success 200 {array} todohttp.TodoDTO
// @Router /api/todos [get]
func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	resp, err := s.todos.Handler.ListTodosHandler(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		s.writeTodoDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	resp, err := s.todos.Handler.GetTodoHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeTodoDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireTodoUser(w, r)
	if !ok {
		return
	}
	var req todohttp.UpdateTodoRequest
	if !s.decodeJSON(w, r, &req, writeTodoError) {
		return
	}
	resp, err := s.todos.Handler.UpdateTodoHandler(r.Context(), ownerID, r.PathValue("id"), req)
	if err != nil {
		s.writeTodoDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireTodoUser(w, r)
	if !ok {
		return
	}
	if err := s.todos.Handler.DeleteTodoHandler(r.Context(), ownerID, r.PathValue("id")); err != nil {
		s.writeTodoDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requireTodoUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeTodoError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func writeTodoError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, todohttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) writeTodoDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tododomainerrors.ErrTodoNotFound):
		writeTodoError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, tododomainerrors.ErrOwnerRequired):
		writeTodoError(w, http.StatusUnauthorized, "missing_user", err.Error())
	case errors.Is(err, tododomainerrors.ErrTitleRequired),
		errors.Is(err, tododomainerrors.ErrTitleTooLong),
		errors.Is(err, tododomainerrors.ErrDescriptionTooLong),
		errors.Is(err, tododomainerrors.ErrInvalidTodoStatus):
		writeTodoError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, tododomainerrors.ErrTodoAlreadyExists):
		writeTodoError(w, http.StatusConflict, "conflict", err.Error())
	default:
		s.logInternalError(r, "workspace/todo-service", err)
		writeTodoError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
