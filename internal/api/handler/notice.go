package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sgs-events/eventdesk/internal/api/middleware"
	"github.com/sgs-events/eventdesk/internal/api/request"
	"github.com/sgs-events/eventdesk/internal/api/response"
	"github.com/sgs-events/eventdesk/internal/services/notice"
)

// NoticeHandler handles notice board endpoints
type NoticeHandler struct {
	noticeService *notice.Service
}

// NewNoticeHandler creates a new notice handler
func NewNoticeHandler(noticeService *notice.Service) *NoticeHandler {
	return &NoticeHandler{
		noticeService: noticeService,
	}
}

// List handles GET /api/v1/notices
func (h *NoticeHandler) List(w http.ResponseWriter, r *http.Request) {
	notices, err := h.noticeService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NoticeListFromModel(notices))
}

// Post handles POST /api/v1/notices (admin only, enforced by middleware
// and re-checked in the service)
func (h *NoticeHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req request.PostNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	session := middleware.MustGetSession(r.Context())

	postedBy := req.PostedBy
	if postedBy == "" {
		postedBy = "Admin"
	}

	posted, err := h.noticeService.Post(r.Context(), session, req.Title, req.Message, postedBy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.NoticeFromModel(posted))
}
