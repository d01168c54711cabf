package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"resort_booking/internal/app"
	"resort_booking/internal/domain"
)

type ManagementHandlers struct {
	Reports  *app.ReportService
	Accounts *app.AccountService
	Sessions *Sessions

	RateLimitRPS, RateLimitBurst int
}

type categoryRevenueResponse struct {
	Type    string  `json:"type"`
	Revenue float64 `json:"revenue"`
}

type dashboardResponse struct {
	Reservations      []reservationResponse     `json:"reservations"`
	TotalReservations int64                     `json:"total_reservations"`
	TotalRevenue      float64                   `json:"total_revenue"`
	RevenueByType     []categoryRevenueResponse `json:"revenue_by_type"`
}

// MountManagement registers the staff portal routes.
func (s *Server) MountManagement(h *ManagementHandlers) {
	acc := &accountHandlers{accounts: h.Accounts, sessions: h.Sessions, role: domain.RoleAdmin}
	limited := RateLimit(h.RateLimitRPS, h.RateLimitBurst)

	s.mountHealth()
	s.mux.With(limited).Post("/signup", acc.signup)
	s.mux.With(limited).Post("/login", acc.login)
	s.mux.Get("/logout", acc.logout)

	s.mux.Group(func(r chi.Router) {
		r.Use(h.Sessions.Require(domain.RoleAdmin))
		r.Get("/dashboard", h.dashboard)
	})
}

func (h *ManagementHandlers) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Reports.Dashboard(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := dashboardResponse{
		Reservations:      make([]reservationResponse, 0, len(d.Reservations)),
		TotalReservations: d.TotalReservations,
		TotalRevenue:      d.TotalRevenue.InexactFloat64(),
		RevenueByType:     make([]categoryRevenueResponse, 0, len(d.RevenueByCategory)),
	}
	for _, v := range d.Reservations {
		out.Reservations = append(out.Reservations, toReservationResponse(v))
	}
	for _, c := range d.RevenueByCategory {
		out.RevenueByType = append(out.RevenueByType, categoryRevenueResponse{Type: string(c.Category), Revenue: c.Revenue.InexactFloat64()})
	}
	writeJSON(w, http.StatusOK, out)
}
