package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/response"
)

type SessionHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type SessionHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewSessionHandler(leaveService leave.LeaveService) SessionHandler {
	return &SessionHandlerImpl{
		leaveService: leaveService,
	}
}

type SessionResponse struct {
	Subject   string     `json:"subject,omitempty"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Me implements SessionHandler.
func (s *SessionHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	resp := SessionResponse{
		Subject: sess.Subject(),
		Name:    sess.Name(),
		Email:   sess.Email(),
	}
	if exp := sess.ExpiresAt(); !exp.IsZero() {
		resp.ExpiresAt = &exp
	}
	response.Success(w, resp)
}

// Logout implements SessionHandler. The session stays invalid for as long as
// the session store remembers its token.
func (s *SessionHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	s.leaveService.Logout(r.Context(), sess)
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}
