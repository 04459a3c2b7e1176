package httpserver

import (
	"errors"
	"net/http"

	exampledomainerrors "crudhub/contexts/catalog/example-service/domain/errors"
	examplehttp "crudhub/contexts/catalog/example-service/transport/http"
)

func (s *Server) registerExampleRoutes() {
	s.mux.HandleFunc("POST /api/examples", s.handleCreateExample)
	s.mux.HandleFunc("GET /api/examples", s.handleListExamples)
	s.mux.HandleFunc("DELETE /api/examples", s.handleDeleteExamplesByStatus)
	s.mux.HandleFunc("GET /api/examples/search", s.handleSearchExamples)
	s.mux.HandleFunc("GET /api/examples/{id}", s.handleGetExample)
	s.mux.HandleFunc("PUT /api/examples/{id}", s.handleUpdateExample)
	s.mux.HandleFunc("PATCH /api/examples/{id}/status", s.handleUpdateExampleStatus)
	s.mux.HandleFunc("DELETE /api/examples/{id}", s.handleDeleteExample)
}

func (s *Server) handleCreateExample(w http.ResponseWriter, r *http.Request) {
	var req examplehttp.CreateExampleRequest
	if !s.decodeJSON(w, r, &req, writeExampleError) {
		return
	}
	resp, err := s.examples.Handler.CreateExampleHandler(r.Context(), req)
	if err != nil {
		s.writeExampleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// @Summary List examples
// @Tags examples
// @Produce json
// @Param limit query int false "page size, default 10"
// @Param skip query int false "rows to skip"
// @Param status query string false "active or inactive"
// @Success 200 {object} examplehttp.ListExamplesResponse
// @Router /api/examples [get]
func (s *Server) handleListExamples(w http.ResponseWriter, r *http.Request) {
	resp, err := s.examples.Handler.ListExamplesHandler(
		r.Context(),
		queryInt(r, "limit"),
		queryInt(r, "skip"),
		r.URL.Query().Get("status"),
	)
	if err != nil {
		s.writeExampleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearchExamples(w http.ResponseWriter, r *http.Request) {
	resp, err := s.examples.Handler.SearchExamplesHandler(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		s.writeExampleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetExample(w http.ResponseWriter, r *http.Request) {
	resp, err := s.examples.Handler.GetExampleHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeExampleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateExample(w http.ResponseWriter, r *http.Request) {
	var req examplehttp.UpdateExampleRequest
	if !s.decodeJSON(w, r, &req, writeExampleError) {
		return
	}
	resp, err := s.examples.Handler.UpdateExampleHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.writeExampleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateExampleStatus(w http.ResponseWriter, r *http.Request) {
	var req examplehttp.UpdateExampleStatusRequest
	if !s.decodeJSON(w, r, &req, writeExampleError) {
		return
	}
	resp, err := s.examples.Handler.UpdateExampleStatusHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.writeExampleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteExample(w http.ResponseWriter, r *http.Request) {
	if err := s.examples.Handler.DeleteExampleHandler(r.Context(), r.PathValue("id")); err != nil {
		s.writeExampleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Delete examples by status
// @Tags examples
// @Produce json
// @Param status query string true "active or inactive"
// @Success 200 {object} examplehttp.DeleteExamplesResponse
// @Router /api/examples [delete]
func (s *Server) handleDeleteExamplesByStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.examples.Handler.DeleteExamplesByStatusHandler(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		s.writeExampleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeExampleError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, examplehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) writeExampleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, exampledomainerrors.ErrExampleNotFound):
		writeExampleError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, exampledomainerrors.ErrNameRequired),
		errors.Is(err, exampledomainerrors.ErrInvalidExampleStatus),
		errors.Is(err, exampledomainerrors.ErrStatusRequired),
		errors.Is(err, exampledomainerrors.ErrSearchNameRequired):
		writeExampleError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, exampledomainerrors.ErrExampleAlreadyExists):
		writeExampleError(w, http.StatusConflict, "conflict", err.Error())
	default:
		s.logInternalError(r, "catalog/example-service", err)
		writeExampleError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
