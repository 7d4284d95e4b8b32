package response

import (
	"time"

	"github.com/sgs-events/eventdesk/internal/model"
	"github.com/sgs-events/eventdesk/internal/services/login"
)

// Session is a login session in API responses. The pending code is never
// part of this: the API is the verifying channel and must not carry it.
type Session struct {
	SessionToken string `json:"session_token"`
	State        string `json:"state"`
	Phone        string `json:"phone,omitempty"`
	IsAdmin      bool   `json:"is_admin,omitempty"`
}

// SessionFromModel converts a login.Session to a response Session
func SessionFromModel(s *login.Session) Session {
	return Session{
		SessionToken: s.Token,
		State:        string(s.State),
		Phone:        s.Phone,
		IsAdmin:      s.IsAdmin,
	}
}

// Registration represents a registration record in API responses
type Registration struct {
	SubmittedAt time.Time `json:"submitted_at"`
	Name        string    `json:"name"`
	Class       string    `json:"class"`
	Section     string    `json:"section"`
	Item        string    `json:"item"`
	Contact     string    `json:"contact"`
	Address     string    `json:"address"`
	Bus         string    `json:"bus"`
	Status      string    `json:"status"`
}

// RegistrationFromModel converts a model.Registration
func RegistrationFromModel(r *model.Registration) Registration {
	return Registration{
		SubmittedAt: r.SubmittedAt,
		Name:        r.Name,
		Class:       r.Class,
		Section:     r.Section,
		Item:        r.Item,
		Contact:     r.Contact,
		Address:     r.Address,
		Bus:         r.Bus,
		Status:      string(r.Status),
	}
}

// RegistrationList wraps the registration list
type RegistrationList struct {
	Registrations []Registration `json:"registrations"`
}

// RegistrationListFromModel converts a slice of registrations
func RegistrationListFromModel(regs []*model.Registration) RegistrationList {
	out := make([]Registration, len(regs))
	for i, r := range regs {
		out[i] = RegistrationFromModel(r)
	}
	return RegistrationList{Registrations: out}
}

// Notice represents a notice in API responses
type Notice struct {
	PostedAt time.Time `json:"posted_at"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	PostedBy string    `json:"posted_by"`
}

// NoticeFromModel converts a model.Notice
func NoticeFromModel(n *model.Notice) Notice {
	return Notice{
		PostedAt: n.PostedAt,
		Title:    n.Title,
		Message:  n.Message,
		PostedBy: n.PostedBy,
	}
}

// NoticeList wraps the notice list, oldest first
type NoticeList struct {
	Notices []Notice `json:"notices"`
}

// NoticeListFromModel converts a slice of notices
func NoticeListFromModel(notices []*model.Notice) NoticeList {
	out := make([]Notice, len(notices))
	for i, n := range notices {
		out[i] = NoticeFromModel(n)
	}
	return NoticeList{Notices: out}
}
