package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sgs-events/eventdesk/internal/api/middleware"
	"github.com/sgs-events/eventdesk/internal/api/request"
	"github.com/sgs-events/eventdesk/internal/api/response"
	"github.com/sgs-events/eventdesk/internal/services/registration"
)

// RegistrationHandler handles registration endpoints
type RegistrationHandler struct {
	registrationService *registration.Service
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService *registration.Service) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
	}
}

// Submit handles POST /api/v1/registrations
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	session := middleware.MustGetSession(r.Context())

	reg, err := h.registrationService.Submit(r.Context(), session, registration.Form{
		Name:    req.Name,
		Class:   req.Class,
		Section: req.Section,
		Item:    req.Item,
		Contact: req.Contact,
		Address: req.Address,
		Bus:     req.Bus,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RegistrationFromModel(reg))
}

// List handles GET /api/v1/registrations
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	regs, err := h.registrationService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RegistrationListFromModel(regs))
}

// Export handles GET /api/v1/registrations/export, streaming the list as
// a CSV attachment
func (h *RegistrationHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="registrations.csv"`)

	if err := h.registrationService.Export(r.Context(), w); err != nil {
		WriteError(w, err)
		return
	}
}
