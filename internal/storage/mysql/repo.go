package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"resort_booking/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

/********** catalog **********/

func (r *Repo) FindProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	var (
		where []string
		args  []any
	)
	if q.Category != nil {
		where = append(where, "pt.description = ?")
		args = append(args, string(*q.Category))
	}
	if q.ReservableOnly {
		where = append(where, "p.reservable = TRUE")
	}
	query := selectProductsSQL
	if len(where) > 0 {
		query += "WHERE " + strings.Join(where, " AND ") + "\n"
	}
	query += "ORDER BY p.product_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, selectProductsSQL+"WHERE p.product_id = ?", id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (domain.Product, error) {
	var (
		p           domain.Product
		fixed       bool
		image, desc sql.NullString
		category    string
	)
	if err := s.Scan(&p.ID, &p.Name, &p.UnitPrice, &fixed, &p.Reservable, &image, &desc, &category); err != nil {
		return domain.Product{}, err
	}
	p.Mode = domain.PricingModeOf(fixed)
	p.ImageURL = strPtr(image)
	p.Description = strPtr(desc)
	p.Category = domain.Category(category)
	return p, nil
}

// UpsertProduct writes the category and the product in one transaction.
func (r *Repo) UpsertProduct(ctx context.Context, p domain.Product) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, upsertProductTypeSQL, string(p.Category))
		if err != nil {
			return fmt.Errorf("upsert product type: %w", err)
		}
		typeID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, upsertProductSQL,
			p.ID,
			p.Name,
			p.UnitPrice,
			p.Mode == domain.PricingFixed,
			p.Reservable,
			valStr(p.ImageURL),
			valStr(p.Description),
			typeID,
		)
		return err
	})
}

func (r *Repo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	if len(reason) > 255 {
		reason = reason[:255]
	}
	_, err := r.db.ExecContext(ctx, insertMissSQL, id, status, reason)
	return err
}

/********** reservations **********/

// CreateReservation inserts and reads back the generated id inside one transaction.
func (r *Repo) CreateReservation(ctx context.Context, nr domain.NewReservation) (int64, error) {
	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, insertReservationSQL,
			nr.CustomerID,
			nr.ProductID,
			nr.CheckIn.Format(domain.DateLayout),
			nr.CheckOut.Format(domain.DateLayout),
			nr.TotalCost,
		)
		if err != nil {
			return mapErr(err)
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repo) GetReservation(ctx context.Context, id int64) (domain.ReservationView, error) {
	row := r.db.QueryRowContext(ctx, selectReservationViewSQL+"WHERE r.reservation_id = ?", id)
	v, err := scanReservationView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ReservationView{}, domain.ErrNotFound
	}
	return v, err
}

func scanReservationView(s scanner) (domain.ReservationView, error) {
	var (
		v           domain.ReservationView
		first, last string
	)
	if err := s.Scan(&v.ID, &v.CustomerID, &first, &last, &v.ProductName, &v.CheckIn, &v.CheckOut, &v.TotalCost); err != nil {
		return domain.ReservationView{}, err
	}
	v.CustomerName = first + " " + last
	return v, nil
}

/********** reports **********/

func (r *Repo) ListReservations(ctx context.Context) ([]domain.ReservationView, error) {
	rows, err := r.db.QueryContext(ctx, selectReservationViewSQL+"ORDER BY r.check_in_date DESC, r.reservation_id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.ReservationView{}
	for rows.Next() {
		v, err := scanReservationView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repo) CountReservations(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, countReservationsSQL).Scan(&n)
	return n, err
}

func (r *Repo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var v decimal.Decimal
	err := r.db.QueryRowContext(ctx, totalRevenueSQL).Scan(&v)
	return v, err
}

func (r *Repo) RevenueByCategory(ctx context.Context) ([]domain.CategoryRevenue, error) {
	rows, err := r.db.QueryContext(ctx, revenueByCategorySQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.CategoryRevenue{}
	for rows.Next() {
		var (
			c   string
			rev decimal.Decimal
		)
		if err := rows.Scan(&c, &rev); err != nil {
			return nil, err
		}
		out = append(out, domain.CategoryRevenue{Category: domain.Category(c), Revenue: rev})
	}
	return out, rows.Err()
}

/********** accounts **********/

// CreateCustomerAccount writes the user and its customer row together.
func (r *Repo) CreateCustomerAccount(ctx context.Context, u domain.User, c domain.Customer) (int64, error) {
	var userID int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, insertUserSQL, u.Email, u.PasswordHash, string(u.Role), valTime(u.LastLoggedIn))
		if err != nil {
			return mapErr(err)
		}
		if userID, err = res.LastInsertId(); err != nil {
			return err
		}
		var phone *string
		if c.Phone != "" {
			phone = &c.Phone
		}
		_, err = tx.ExecContext(ctx, insertCustomerSQL, userID, c.FirstName, c.LastName, c.Email, valStr(phone))
		return mapErr(err)
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

func (r *Repo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Email, u.PasswordHash, string(u.Role), valTime(u.LastLoggedIn))
	if err != nil {
		return 0, mapErr(err)
	}
	return res.LastInsertId()
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string, role domain.Role) (domain.User, error) {
	var (
		u     domain.User
		urole string
		last  sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, selectUserByEmailSQL, email, string(role)).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &urole, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(urole)
	if last.Valid {
		t := last.Time
		u.LastLoggedIn = &t
	}
	return u, nil
}

func (r *Repo) TouchLastLoggedIn(ctx context.Context, userID int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, touchLastLoggedInSQL, at, userID)
	return err
}

func (r *Repo) GetCustomerIDByUserID(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, selectCustomerIDByUserSQL, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return id, err
}
