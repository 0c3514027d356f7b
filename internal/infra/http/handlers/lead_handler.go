package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/webinarlab/lead-intake/internal/infra/http/middleware"
	"github.com/webinarlab/lead-intake/internal/usecase"
)

type LeadHandler struct {
	SubmitLead *usecase.SubmitLeadUseCase
}

func NewLeadHandler(uc *usecase.SubmitLeadUseCase) *LeadHandler {
	return &LeadHandler{SubmitLead: uc}
}

// SubmitFormResponse is the uniform envelope the landing page consumes.
type SubmitFormResponse struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// Handle serves POST submissions. The method gate lives here and not in the
// router so both entrypoints (chi server, lambda) behave identically.
func (h *LeadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeResponse(w, http.StatusBadRequest, SubmitFormResponse{Error: "Richiesta non leggibile"})
		return
	}

	status, resp := h.Process(r.Context(), r.Method, body)
	writeResponse(w, status, resp)
}

// Process runs the submission against a raw method and body, returning the
// status code and envelope. The lambda entrypoint calls it directly.
func (h *LeadHandler) Process(ctx context.Context, method string, body []byte) (int, SubmitFormResponse) {
	if method != http.MethodPost {
		return http.StatusMethodNotAllowed, SubmitFormResponse{Error: "Method not allowed"}
	}

	var input usecase.SubmitLeadInput
	if err := json.Unmarshal(body, &input); err != nil {
		return http.StatusBadRequest, SubmitFormResponse{Error: "JSON non valido"}
	}

	output, err := h.SubmitLead.Execute(ctx, input)
	if err != nil {
		if usecase.IsDomainError(err) {
			return http.StatusBadRequest, SubmitFormResponse{Error: "Tutti i campi sono obbligatori"}
		}
		return http.StatusInternalServerError, SubmitFormResponse{
			Error:   "Si è verificato un errore durante la registrazione",
			Details: err.Error(),
		}
	}

	middleware.RecordLeadSubmission(string(output.MailingList.Status))
	if !output.MailingList.OK() {
		middleware.RecordIntegrationError("aweber")
	}

	return http.StatusOK, SubmitFormResponse{
		Success: true,
		Message: output.Message,
	}
}

// CORSHeaders is the header set every response carries, lambda included,
// so the form can POST from any origin.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type",
	}
}

func writeResponse(w http.ResponseWriter, status int, resp SubmitFormResponse) {
	for k, v := range CORSHeaders() {
		w.Header().Set(k, v)
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
