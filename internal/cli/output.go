package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SessionResult:
		o.printSession(v)
	case Registration:
		o.printRegistration(v)
	case RegistrationList:
		o.printRegistrationList(v)
	case Notice:
		o.printNotice(v)
	case NoticeList:
		o.printNoticeList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// SessionResult response type (matches API)
type SessionResult struct {
	SessionToken string `json:"session_token"`
	State        string `json:"state"`
	Phone        string `json:"phone,omitempty"`
	IsAdmin      bool   `json:"is_admin,omitempty"`
}

// Registration response type
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

// RegistrationList response type
type RegistrationList struct {
	Registrations []Registration `json:"registrations"`
}

// Notice response type
type Notice struct {
	PostedAt time.Time `json:"posted_at"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	PostedBy string    `json:"posted_by"`
}

// NoticeList response type
type NoticeList struct {
	Notices []Notice `json:"notices"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s SessionResult) {
	fmt.Printf("State: %s\n", s.State)
	if s.Phone != "" {
		fmt.Printf("Phone: %s\n", s.Phone)
	}
	if s.IsAdmin {
		fmt.Println("Admin: yes")
	}
	fmt.Printf("Token: %s\n", s.SessionToken)
}

func (o *Output) printRegistration(r Registration) {
	fmt.Printf("Name: %s\n", r.Name)
	fmt.Printf("Class: %s %s\n", r.Class, r.Section)
	fmt.Printf("Item: %s\n", r.Item)
	fmt.Printf("Contact: %s\n", r.Contact)
	fmt.Printf("Address: %s\n", r.Address)
	fmt.Printf("Bus: %s\n", r.Bus)
	fmt.Printf("Status: %s\n", r.Status)
	fmt.Printf("Submitted: %s\n", r.SubmittedAt.Format(time.RFC3339))
}

func (o *Output) printRegistrationList(l RegistrationList) {
	fmt.Printf("Registrations (%d):\n", len(l.Registrations))
	for _, r := range l.Registrations {
		fmt.Printf("  - %s (%s %s) - %s [%s]\n", r.Name, r.Class, r.Section, r.Item, r.Status)
	}
}

func (o *Output) printNotice(n Notice) {
	fmt.Printf("%s\n", n.Title)
	fmt.Printf("%s\n", n.Message)
	fmt.Printf("Posted by %s at %s\n", n.PostedBy, n.PostedAt.Format(time.RFC3339))
}

func (o *Output) printNoticeList(l NoticeList) {
	if len(l.Notices) == 0 {
		fmt.Println("No notices yet")
		return
	}
	fmt.Printf("Notices (%d):\n", len(l.Notices))
	for _, n := range l.Notices {
		fmt.Printf("  [%s] %s - %s\n", n.PostedAt.Format("2006-01-02 15:04"), n.Title, n.Message)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
