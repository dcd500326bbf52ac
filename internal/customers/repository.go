package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/quotedesk/quotedesk/internal/platform/db"
	"github.com/quotedesk/quotedesk/internal/shared"
)

// Repository persists customers.
type Repository interface {
	Get(ctx context.Context, id int64) (*Customer, error)
	List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error)
	Create(ctx context.Context, customer Customer) (*Customer, error)
	Update(ctx context.Context, customer Customer) (*Customer, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

// NewRepository constructs a Postgres-backed repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const customerColumns = `id, customer_name, customer_email, customer_phone,
	customer_address_1, customer_address_2, customer_town, customer_county, customer_postcode,
	customer_name_ship, customer_address_1_ship, customer_address_2_ship, customer_town_ship,
	customer_county_ship, customer_postcode_ship, created_at, updated_at`

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone,
		&c.Address1, &c.Address2, &c.Town, &c.County, &c.Postcode,
		&c.NameShip, &c.Address1Ship, &c.Address2Ship, &c.TownShip,
		&c.CountyShip, &c.PostcodeShip, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("customer %d: %w", id, shared.ErrNotFound)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *repository) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	where := ""
	args := []any{}
	if search := strings.TrimSpace(req.Search); search != "" {
		args = append(args, "%"+search+"%")
		where = " WHERE customer_name ILIKE $1 OR customer_email ILIKE $1"
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	args = append(args, req.Limit, req.Offset)
	query := fmt.Sprintf(`SELECT %s FROM customers%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		customerColumns, where, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *c)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Customer) (*Customer, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO customers (
		customer_name, customer_email, customer_phone,
		customer_address_1, customer_address_2, customer_town, customer_county, customer_postcode,
		customer_name_ship, customer_address_1_ship, customer_address_2_ship, customer_town_ship,
		customer_county_ship, customer_postcode_ship
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING `+customerColumns,
		c.Name, c.Email, c.Phone,
		c.Address1, c.Address2, c.Town, c.County, c.Postcode,
		c.NameShip, c.Address1Ship, c.Address2Ship, c.TownShip,
		c.CountyShip, c.PostcodeShip)
	created, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, c Customer) (*Customer, error) {
	row := r.db.QueryRow(ctx, `UPDATE customers SET
		customer_name = $2, customer_email = $3, customer_phone = $4,
		customer_address_1 = $5, customer_address_2 = $6, customer_town = $7,
		customer_county = $8, customer_postcode = $9,
		customer_name_ship = $10, customer_address_1_ship = $11, customer_address_2_ship = $12,
		customer_town_ship = $13, customer_county_ship = $14, customer_postcode_ship = $15,
		updated_at = now()
	WHERE id = $1
	RETURNING `+customerColumns,
		c.ID, c.Name, c.Email, c.Phone,
		c.Address1, c.Address2, c.Town, c.County, c.Postcode,
		c.NameShip, c.Address1Ship, c.Address2Ship, c.TownShip,
		c.CountyShip, c.PostcodeShip)
	updated, err := scanCustomer(row)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("customer %d: %w", c.ID, shared.ErrNotFound)
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %d: %w", id, shared.ErrNotFound)
	}
	return nil
}
