package mysql

// -----------------------------------------------------------------------------
// CATALOG
// -----------------------------------------------------------------------------

const selectProductsSQL = `
SELECT
  p.product_id,
  p.product_name,
  p.unit_price,
  p.fixed_price,
  p.reservable,
  p.default_image_url,
  p.description,
  pt.description
FROM products p
JOIN product_types pt ON pt.product_type_id = p.product_type_id
`

// Category upsert that makes LAST_INSERT_ID() return the row id on both paths.
const upsertProductTypeSQL = `
INSERT INTO product_types (description)
VALUES (?)
ON DUPLICATE KEY UPDATE product_type_id = LAST_INSERT_ID(product_type_id)
`

const upsertProductSQL = `
INSERT INTO products
  (product_id, product_name, unit_price, fixed_price, reservable, default_image_url, description, product_type_id)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  product_name      = VALUES(product_name),
  unit_price        = VALUES(unit_price),
  fixed_price       = VALUES(fixed_price),
  reservable        = VALUES(reservable),
  default_image_url = VALUES(default_image_url),
  description       = VALUES(description),
  product_type_id   = VALUES(product_type_id)
`

const insertMissSQL = `
INSERT INTO catalog_misses (product_id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  http_status = VALUES(http_status),
  reason      = VALUES(reason),
  seen_at     = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// RESERVATIONS
// -----------------------------------------------------------------------------

const insertReservationSQL = `
INSERT INTO reservations (customer_id, product_id, check_in_date, check_out_date, total_cost, created_at)
VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
`

// Joined confirmation view; every read of a reservation goes through this shape.
const selectReservationViewSQL = `
SELECT
  r.reservation_id,
  r.customer_id,
  c.first_name,
  c.last_name,
  p.product_name,
  r.check_in_date,
  r.check_out_date,
  r.total_cost
FROM reservations r
JOIN customers c ON c.customer_id = r.customer_id
JOIN products  p ON p.product_id  = r.product_id
`

const countReservationsSQL = `SELECT COUNT(*) FROM reservations`

const totalRevenueSQL = `SELECT COALESCE(SUM(total_cost), 0) FROM reservations`

const revenueByCategorySQL = `
SELECT pt.description, SUM(r.total_cost) AS revenue
FROM reservations r
JOIN products p       ON p.product_id       = r.product_id
JOIN product_types pt ON pt.product_type_id = p.product_type_id
GROUP BY pt.description
ORDER BY pt.description
`

// -----------------------------------------------------------------------------
// ACCOUNTS
// -----------------------------------------------------------------------------

const insertUserSQL = `
INSERT INTO users (email, password_hash, user_role, last_logged_in)
VALUES (?, ?, ?, ?)
`

const insertCustomerSQL = `
INSERT INTO customers (user_id, first_name, last_name, email, phone)
VALUES (?, ?, ?, ?, ?)
`

const selectUserByEmailSQL = `
SELECT user_id, email, password_hash, user_role, last_logged_in
FROM users
WHERE email = ? AND user_role = ?
`

const touchLastLoggedInSQL = `UPDATE users SET last_logged_in = ? WHERE user_id = ?`

const selectCustomerIDByUserSQL = `SELECT customer_id FROM customers WHERE user_id = ?`
