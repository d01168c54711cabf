package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"resort_booking/internal/adapters/observability"
	"resort_booking/internal/app"
	"resort_booking/internal/domain"
)

type CustomerHandlers struct {
	Booking  *app.BookingService
	Accounts *app.AccountService
	Sessions *Sessions

	RateLimitRPS, RateLimitBurst int
}

type inquiryRequest struct {
	Inquiry *string `json:"inquiry"`
}

type quoteResponse struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Description *string `json:"description"`
	TotalCost   float64 `json:"total_cost"`
	Nights      int     `json:"nights"`
	CheckInDate string  `json:"check_in_date"`
	ImageURL    string  `json:"image_url"`
}

type inquiryResponse struct {
	Inquiry string          `json:"inquiry"`
	Results []quoteResponse `json:"results"`
}

type bookRequest struct {
	ProductID   int64           `json:"product_id"`
	CheckInDate *string         `json:"check_in_date"`
	Nights      int             `json:"nights"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

type reservationResponse struct {
	ReservationID int64   `json:"reservation_id"`
	Customer      string  `json:"customer"`
	ProductName   string  `json:"product_name"`
	CheckInDate   string  `json:"check_in_date"`
	CheckOutDate  string  `json:"check_out_date"`
	TotalCost     float64 `json:"total_cost"`
}

func toReservationResponse(v domain.ReservationView) reservationResponse {
	return reservationResponse{
		ReservationID: v.ID,
		Customer:      v.CustomerName,
		ProductName:   v.ProductName,
		CheckInDate:   v.CheckIn.Format(domain.DateLayout),
		CheckOutDate:  v.CheckOut.Format(domain.DateLayout),
		TotalCost:     v.TotalCost.InexactFloat64(),
	}
}

// MountCustomer registers the customer portal routes.
func (s *Server) MountCustomer(h *CustomerHandlers) {
	acc := &accountHandlers{accounts: h.Accounts, sessions: h.Sessions, role: domain.RoleCustomer}
	limited := RateLimit(h.RateLimitRPS, h.RateLimitBurst)

	s.mountHealth()
	s.mux.With(limited).Post("/signup", acc.signup)
	s.mux.With(limited).Post("/login", acc.login)
	s.mux.Get("/logout", acc.logout)
	s.mux.With(limited).Post("/chat", h.chat)

	s.mux.Group(func(r chi.Router) {
		r.Use(h.Sessions.Require(domain.RoleCustomer))
		r.Post("/book", h.book)
		r.Get("/reservations/{id}", h.getReservation)
	})
}

func (h *CustomerHandlers) chat(w http.ResponseWriter, r *http.Request) {
	var req inquiryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Inquiry == nil {
		ie := domain.NewInputError()
		ie.Add("inquiry", "required")
		writeDomainError(w, r, ie)
		return
	}
	res, err := h.Booking.Inquire(r.Context(), *req.Inquiry)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	observability.ObserveQuotes(len(res.Quotes))

	out := inquiryResponse{Inquiry: res.Inquiry, Results: make([]quoteResponse, 0, len(res.Quotes))}
	for _, q := range res.Quotes {
		out.Results = append(out.Results, quoteResponse{
			ProductID:   q.Product.ID,
			ProductName: q.Product.Name,
			Description: q.Product.Description,
			TotalCost:   q.TotalCost.InexactFloat64(),
			Nights:      q.Nights,
			CheckInDate: q.CheckIn.String(),
			ImageURL:    q.ImageURL,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CustomerHandlers) currentCustomer(r *http.Request) (int64, error) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		return 0, domain.ErrUnauthenticated
	}
	return h.Accounts.ResolveCustomer(r.Context(), userID)
}

func (h *CustomerHandlers) book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ie := domain.NewInputError()
	checkIn := domain.Unspecified
	if req.CheckInDate == nil {
		ie.Add("check_in_date", `required: a YYYY-MM-DD date or "Not specified"`)
	} else if d, err := domain.ParseStayDate(*req.CheckInDate); err != nil {
		ie.Add("check_in_date", `must be YYYY-MM-DD or "Not specified"`)
	} else {
		checkIn = d
	}
	if err := ie.OrNil(); err != nil {
		observability.ObserveReservation("invalid")
		writeDomainError(w, r, err)
		return
	}

	customerID, err := h.currentCustomer(r)
	if err != nil {
		observability.ObserveReservation("rejected")
		writeDomainError(w, r, err)
		return
	}

	view, err := h.Booking.Book(r.Context(), domain.BookingRequest{
		CustomerID: customerID,
		ProductID:  req.ProductID,
		CheckIn:    checkIn,
		Nights:     req.Nights,
		TotalCost:  req.TotalCost,
	})
	if err != nil {
		observability.ObserveReservation(bookingOutcome(err))
		writeDomainError(w, r, err)
		return
	}
	observability.ObserveReservation("created")
	writeJSON(w, http.StatusOK, toReservationResponse(view))
}

func bookingOutcome(err error) string {
	switch {
	case domain.IsInputError(err) != nil:
		return "invalid"
	case errorsIsAny(err, domain.ErrReferentialIntegrity, domain.ErrPriceMismatch):
		return "rejected"
	}
	return "error"
}

func (h *CustomerHandlers) getReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "id must be a positive number")
		return
	}
	customerID, err := h.currentCustomer(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	view, err := h.Booking.GetReservation(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	// someone else's reservation is reported as missing
	if view.CustomerID != customerID {
		writeDomainError(w, r, domain.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(view))
}
