package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"resort_booking/internal/app"
	"resort_booking/internal/clock"
	"resort_booking/internal/domain"
)

var bookingNow = time.Date(2025, time.March, 3, 22, 45, 0, 0, time.UTC)

func newBooking(verify bool) (*app.BookingService, *fakeLedger) {
	ledger := newFakeLedger()
	catalog := app.NewCatalogService(newFakeCatalog(sampleProducts()...), nil, time.Minute)
	svc := app.NewBookingService(catalog, ledger, app.BookingOptions{
		Clock:       clock.NewFixed(bookingNow),
		VerifyPrice: verify,
	})
	return svc, ledger
}

func TestInquire_QuotesMatchingProducts(t *testing.T) {
	svc, _ := newBooking(false)
	res, err := svc.Inquire(context.Background(), "a cabin for 3 nights")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	// no date -> non-reservable products are offered too
	if len(res.Quotes) != 2 {
		t.Fatalf("quotes = %d", len(res.Quotes))
	}
	if res.Inquiry != "a cabin for 3 nights" {
		t.Fatalf("inquiry echo = %q", res.Inquiry)
	}
	q := res.Quotes[0]
	if q.Product.ID != 1 || q.Nights != 3 || !q.TotalCost.Equal(dec("450")) || q.CheckIn.IsSpecified() {
		t.Fatalf("quote[0] = %+v", q)
	}
	if q := res.Quotes[1]; q.Product.ID != 4 || !q.TotalCost.Equal(dec("756")) {
		t.Fatalf("quote[1] = %+v", q)
	}
}

func TestInquire_DatedOffersOnlyReservable(t *testing.T) {
	svc, _ := newBooking(false)
	res, err := svc.Inquire(context.Background(), "cabin in april")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(res.Quotes) != 1 || res.Quotes[0].Product.ID != 1 {
		t.Fatalf("quotes = %+v", res.Quotes)
	}
	if res.Quotes[0].CheckIn != app.AprilCheckIn {
		t.Fatalf("check-in = %s", res.Quotes[0].CheckIn)
	}
}

func TestInquire_NoCategoryReturnsAll(t *testing.T) {
	svc, _ := newBooking(false)
	res, _ := svc.Inquire(context.Background(), "what do you have?")
	if len(res.Quotes) != 4 {
		t.Fatalf("quotes = %d", len(res.Quotes))
	}
}

func TestBook_UnspecifiedCheckInUsesClock(t *testing.T) {
	svc, _ := newBooking(false)
	v, err := svc.Book(context.Background(), domain.BookingRequest{
		CustomerID: 7, ProductID: 1, CheckIn: domain.Unspecified, Nights: 2, TotalCost: dec("300.00"),
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got := v.CheckIn.Format(domain.DateLayout); got != "2025-03-03" {
		t.Fatalf("check-in = %s", got)
	}
	if got := v.CheckOut.Format(domain.DateLayout); got != "2025-03-05" {
		t.Fatalf("check-out = %s", got)
	}
}

func TestBook_RoundTrip(t *testing.T) {
	svc, _ := newBooking(false)
	ctx := context.Background()
	checkIn, _ := domain.ParseStayDate("2025-04-10")

	v, err := svc.Book(ctx, domain.BookingRequest{
		CustomerID: 7, ProductID: 2, CheckIn: checkIn, Nights: 3, TotalCost: dec("288.00"),
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if v.ID <= 0 || v.CustomerName != "Ada Lovelace" || v.ProductName != "Hot Stone Massage" {
		t.Fatalf("confirmation = %+v", v)
	}
	if !v.CheckOut.After(v.CheckIn) || v.CheckOut.Format(domain.DateLayout) != "2025-04-13" {
		t.Fatalf("dates = %s..%s", v.CheckIn, v.CheckOut)
	}

	got, err := svc.GetReservation(ctx, v.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != v {
		t.Fatalf("get = %+v, book = %+v", got, v)
	}
}

func TestBook_UnknownProductWritesNothing(t *testing.T) {
	svc, ledger := newBooking(false)
	before := len(ledger.rows)
	_, err := svc.Book(context.Background(), domain.BookingRequest{
		CustomerID: 7, ProductID: 999, Nights: 1, TotalCost: dec("10"),
	})
	if !errors.Is(err, domain.ErrReferentialIntegrity) {
		t.Fatalf("err = %v", err)
	}
	if len(ledger.rows) != before {
		t.Fatalf("rows = %d, want %d", len(ledger.rows), before)
	}
}

func TestBook_InvalidInput(t *testing.T) {
	svc, ledger := newBooking(false)
	_, err := svc.Book(context.Background(), domain.BookingRequest{CustomerID: 7, ProductID: 0, Nights: 0, TotalCost: dec("0")})
	ie := domain.IsInputError(err)
	if ie == nil {
		t.Fatalf("err = %v, want input error", err)
	}
	for _, f := range []string{"product_id", "nights", "total_cost"} {
		if _, ok := ie.Fields()[f]; !ok {
			t.Errorf("missing field %s in %v", f, ie.Fields())
		}
	}
	if len(ledger.rows) != 0 {
		t.Fatalf("rows written: %d", len(ledger.rows))
	}
}

func TestBook_RejectsValuesTheStoreCannotHold(t *testing.T) {
	svc, ledger := newBooking(false)
	lateCheckIn, _ := domain.ParseStayDate("9999-12-30")
	cases := []struct {
		name  string
		req   domain.BookingRequest
		field string
	}{
		{"too many nights", domain.BookingRequest{CustomerID: 7, ProductID: 1, Nights: 5_000_000, TotalCost: dec("100")}, "nights"},
		{"one over the cap", domain.BookingRequest{CustomerID: 7, ProductID: 1, Nights: app.MaxNights + 1, TotalCost: dec("100")}, "nights"},
		{"sub-cent total", domain.BookingRequest{CustomerID: 7, ProductID: 1, Nights: 1, TotalCost: dec("100.005")}, "total_cost"},
		{"total overflows column", domain.BookingRequest{CustomerID: 7, ProductID: 1, Nights: 1, TotalCost: dec("123456789012.5")}, "total_cost"},
		{"total at the limit", domain.BookingRequest{CustomerID: 7, ProductID: 1, Nights: 1, TotalCost: dec("100000000")}, "total_cost"},
		{"check-out past year 9999", domain.BookingRequest{CustomerID: 7, ProductID: 1, CheckIn: lateCheckIn, Nights: 2, TotalCost: dec("100")}, "check_in_date"},
	}
	for _, tc := range cases {
		_, err := svc.Book(context.Background(), tc.req)
		ie := domain.IsInputError(err)
		if ie == nil {
			t.Errorf("%s: err = %v, want input error", tc.name, err)
			continue
		}
		if _, ok := ie.Fields()[tc.field]; !ok {
			t.Errorf("%s: fields = %v, want %s", tc.name, ie.Fields(), tc.field)
		}
	}
	if len(ledger.rows) != 0 {
		t.Fatalf("rows written: %d", len(ledger.rows))
	}

	// the largest values the store accepts still book and round-trip unchanged
	v, err := svc.Book(context.Background(), domain.BookingRequest{
		CustomerID: 7, ProductID: 1, Nights: app.MaxNights, TotalCost: dec("99999999.99"),
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !v.TotalCost.Equal(dec("99999999.99")) {
		t.Fatalf("total = %s", v.TotalCost)
	}
}

func TestBook_StoresSubmittedTotalWhenNotVerifying(t *testing.T) {
	svc, _ := newBooking(false)
	v, err := svc.Book(context.Background(), domain.BookingRequest{
		CustomerID: 7, ProductID: 1, Nights: 1, TotalCost: dec("1.00"),
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !v.TotalCost.Equal(dec("1.00")) {
		t.Fatalf("total = %s", v.TotalCost)
	}
}

func TestBook_VerifyPrice(t *testing.T) {
	svc, ledger := newBooking(true)
	ctx := context.Background()

	_, err := svc.Book(ctx, domain.BookingRequest{CustomerID: 7, ProductID: 1, Nights: 2, TotalCost: dec("1.00")})
	if !errors.Is(err, domain.ErrPriceMismatch) {
		t.Fatalf("err = %v, want price mismatch", err)
	}
	if len(ledger.rows) != 0 {
		t.Fatalf("rows written on mismatch: %d", len(ledger.rows))
	}

	if _, err := svc.Book(ctx, domain.BookingRequest{CustomerID: 7, ProductID: 1, Nights: 2, TotalCost: dec("300")}); err != nil {
		t.Fatalf("matching total rejected: %v", err)
	}

	_, err = svc.Book(ctx, domain.BookingRequest{CustomerID: 7, ProductID: 999, Nights: 1, TotalCost: dec("5")})
	if !errors.Is(err, domain.ErrReferentialIntegrity) {
		t.Fatalf("unknown product err = %v", err)
	}
}
