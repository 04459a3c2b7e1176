package httpserver

import (
	"errors"
	"net/http"

	taskdomainerrors "crudhub/contexts/workspace/task-service/domain/errors"
	taskhttp "crudhub/contexts/workspace/task-service/transport/http"
)

func (s *Server) registerTaskRoutes() {
	s.mux.HandleFunc("POST /api/crud-tasks", s.handleCreateTask)
	s.mux.HandleFunc("GET /api/crud-tasks", s.handleListTasks)
	s.mux.HandleFunc("GET /api/crud-tasks/{id}", s.handleGetTask)
	s.mux.HandleFunc("PUT /api/crud-tasks/{id}", s.handleUpdateTask)
	s.mux.HandleFunc("DELETE /api/crud-tasks/{id}", s.handleDeleteTask)
}

// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param body body taskhttp.CreateTaskRequest true "task"
// @Success 201 {object} taskhttp.TaskDTO
// @Failure 400 {object} taskhttp.ErrorResponse
// @Router /api/crud-tasks [post]
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskhttp.CreateTaskRequest
	if !s.decodeJSON(w, r, &req, writeTaskError) {
		return
	}
	resp, err := s.tasks.Handler.CreateTaskHandler(r.Context(), req)
	if err != nil {
		s.writeTaskDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param page query int false "1-based page"
// @Param limit query int false "page size, max 100"
// @Param title query string false "case-insensitive title fragment"
// @Param status query string false "exact status"
// @Param due_date query string false "RFC3339 lower bound on due date"
// @Success 200 {object} taskhttp.ListTasksResponse
// @Router /api/crud-tasks [get]
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.tasks.Handler.ListTasksHandler(r.Context(), taskhttp.ListTasksRequest{
		Page:    queryInt(r, "page"),
		Limit:   queryInt(r, "limit"),
		Title:   query.Get("title"),
		Status:  query.Get("status"),
		DueDate: query.Get("due_date"),
	})
	if err != nil {
		s.writeTaskDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	resp, err := s.tasks.Handler.GetTaskHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeTaskDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req taskhttp.UpdateTaskRequest
	if !s.decodeJSON(w, r, &req, writeTaskError) {
		return
	}
	resp, err := s.tasks.Handler.UpdateTaskHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.writeTaskDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Handler.DeleteTaskHandler(r.Context(), r.PathValue("id")); err != nil {
		s.writeTaskDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeTaskError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, taskhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) writeTaskDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, taskdomainerrors.ErrTaskNotFound):
		writeTaskError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, taskdomainerrors.ErrTitleRequired),
		errors.Is(err, taskdomainerrors.ErrTitleTooLong),
		errors.Is(err, taskdomainerrors.ErrDescriptionTooLong),
		errors.Is(err, taskdomainerrors.ErrInvalidTaskStatus),
		errors.Is(err, taskdomainerrors.ErrInvalidDueDate):
		writeTaskError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, taskdomainerrors.ErrTaskAlreadyExists):
		writeTaskError(w, http.StatusConflict, "conflict", err.Error())
	default:
		s.logInternalError(r, "workspace/task-service", err)
		writeTaskError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
