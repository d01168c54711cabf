package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"resort_booking/internal/clock"
	"resort_booking/internal/domain"
)

type BookingService struct {
	catalog      *CatalogService
	reservations domain.ReservationRepository
	resolver     InquiryResolver
	pricer       Pricer
	clock        clock.Clock
	verifyPrice  bool
}

type BookingOptions struct {
	Resolver InquiryResolver
	Pricer   Pricer
	Clock    clock.Clock
	// VerifyPrice recomputes the total server-side and rejects a mismatching submission.
	// Off by default: the submitted total is stored as given.
	VerifyPrice bool
}

func NewBookingService(c *CatalogService, r domain.ReservationRepository, opts BookingOptions) *BookingService {
	if opts.Resolver == nil {
		opts.Resolver = NewKeywordResolver()
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewSystem()
	}
	if opts.Pricer.VariableMarkup.IsZero() {
		opts.Pricer = NewPricer(DefaultVariableMarkup)
	}
	return &BookingService{
		catalog:      c,
		reservations: r,
		resolver:     opts.Resolver,
		pricer:       opts.Pricer,
		clock:        opts.Clock,
		verifyPrice:  opts.VerifyPrice,
	}
}

type InquiryResult struct {
	Inquiry string
	Intent  InquiryIntent
	Quotes  []domain.Quote
}

// Inquire resolves text to an intent and prices every matching product.
// Only reservable products are offered once the inquiry pins a date.
func (s *BookingService) Inquire(ctx context.Context, text string) (InquiryResult, error) {
	intent := s.resolver.Resolve(text)
	products, err := s.catalog.FindProducts(ctx, domain.ProductQuery{
		Category:       intent.Category,
		ReservableOnly: intent.CheckIn.IsSpecified(),
	})
	if err != nil {
		return InquiryResult{}, fmt.Errorf("find products: %w", err)
	}
	quotes := make([]domain.Quote, 0, len(products))
	for _, p := range products {
		quotes = append(quotes, s.pricer.Quote(p, intent.CheckIn, intent.Nights))
	}
	return InquiryResult{Inquiry: text, Intent: intent, Quotes: quotes}, nil
}

// Limits of the reservations table: DECIMAL(10,2) totals and DATE columns.
const MaxNights = 365

var maxTotalCost = decimal.New(1, 8) // exclusive

func validateBooking(req domain.BookingRequest) error {
	ie := domain.NewInputError()
	if req.CustomerID <= 0 {
		ie.Add("customer_id", "must reference a customer")
	}
	if req.ProductID <= 0 {
		ie.Add("product_id", "must be a positive id")
	}
	if req.Nights < 1 {
		ie.Add("nights", "must be at least 1")
	} else if req.Nights > MaxNights {
		ie.Add("nights", fmt.Sprintf("must be at most %d", MaxNights))
	}
	switch {
	case !req.TotalCost.IsPositive():
		ie.Add("total_cost", "must be greater than 0")
	case req.TotalCost.GreaterThanOrEqual(maxTotalCost):
		ie.Add("total_cost", "must be less than 100000000")
	case !req.TotalCost.Equal(req.TotalCost.Truncate(CurrencyPlaces)):
		ie.Add("total_cost", "must have at most 2 decimal places")
	}
	return ie.OrNil()
}

// Book persists a reservation and returns its joined confirmation.
//
// An unspecified check-in becomes today's date on the service clock at booking
// time, not the day the quote was produced.
func (s *BookingService) Book(ctx context.Context, req domain.BookingRequest) (domain.ReservationView, error) {
	if err := validateBooking(req); err != nil {
		return domain.ReservationView{}, err
	}

	if s.verifyPrice {
		if err := s.checkPrice(ctx, req); err != nil {
			return domain.ReservationView{}, err
		}
	}

	checkIn := req.CheckIn.Or(s.clock.Now())
	checkOut := checkIn.AddDate(0, 0, req.Nights)
	if checkOut.Year() > 9999 {
		ie := domain.NewInputError()
		ie.Add("check_in_date", "stay must end by 9999-12-31")
		return domain.ReservationView{}, ie
	}

	id, err := s.reservations.CreateReservation(ctx, domain.NewReservation{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalCost:  req.TotalCost,
	})
	if err != nil {
		return domain.ReservationView{}, err
	}
	log.Info().
		Int64("reservation_id", id).
		Int64("customer_id", req.CustomerID).
		Int64("product_id", req.ProductID).
		Str("check_in", checkIn.Format(domain.DateLayout)).
		Int("nights", req.Nights).
		Str("total_cost", req.TotalCost.StringFixed(CurrencyPlaces)).
		Msg("reservation created")

	return s.GetReservation(ctx, id)
}

func (s *BookingService) checkPrice(ctx context.Context, req domain.BookingRequest) error {
	p, err := s.catalog.GetProduct(ctx, req.ProductID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrReferentialIntegrity
	}
	if err != nil {
		return fmt.Errorf("get product %d: %w", req.ProductID, err)
	}
	want := s.pricer.Price(p.UnitPrice, p.Mode, req.Nights)
	if !want.Equal(req.TotalCost.RoundBank(CurrencyPlaces)) {
		return fmt.Errorf("%w: expected %s, got %s", domain.ErrPriceMismatch,
			want.StringFixed(CurrencyPlaces), req.TotalCost.String())
	}
	return nil
}

// GetReservation composes the confirmation view for id.
func (s *BookingService) GetReservation(ctx context.Context, id int64) (domain.ReservationView, error) {
	return s.reservations.GetReservation(ctx, id)
}
