package httpserver

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"resort_booking/internal/adapters/observability"
	"resort_booking/internal/app"
	"resort_booking/internal/domain"
)

// accountHandlers serves signup/login/logout for one portal role.
type accountHandlers struct {
	accounts *app.AccountService
	sessions *Sessions
	role     domain.Role
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *accountHandlers) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var (
		userID int64
		err    error
	)
	if h.role == domain.RoleCustomer {
		userID, err = h.accounts.SignupCustomer(r.Context(), domain.CustomerSignup{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		})
	} else {
		userID, err = h.accounts.SignupStaff(r.Context(), req.Email, req.Password)
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := h.sessions.Establish(w, r, userID, h.role); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Signup successful"})
}

func (h *accountHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID, err := h.accounts.Login(r.Context(), req.Email, req.Password, h.role)
	if err != nil {
		observability.ObserveLogin(string(h.role), "rejected")
		writeDomainError(w, r, err)
		return
	}
	if err := h.sessions.Establish(w, r, userID, h.role); err != nil {
		writeDomainError(w, r, err)
		return
	}
	observability.ObserveLogin(string(h.role), "ok")
	log.Info().Int64("user_id", userID).Str("role", string(h.role)).Msg("login")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Login successful"})
}

func (h *accountHandlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logout successful"})
}
