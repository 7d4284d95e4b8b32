package request

// RequestCodeRequest is the request body for requesting a login code
type RequestCodeRequest struct {
	Phone string `json:"phone"`
}

// VerifyCodeRequest is the request body for verifying a login code
type VerifyCodeRequest struct {
	Code string `json:"code"`
}

// AdminLoginRequest is the request body for admin authorization
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// SubmitRegistrationRequest is the request body for submitting a registration
type SubmitRegistrationRequest struct {
	Name    string `json:"name"`
	Class   string `json:"class"`
	Section string `json:"section"`
	Item    string `json:"item"`
	Contact string `json:"contact,omitempty"`
	Address string `json:"address"`
	Bus     string `json:"bus"`
}

// PostNoticeRequest is the request body for posting a notice
type PostNoticeRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	PostedBy string `json:"posted_by,omitempty"`
}
