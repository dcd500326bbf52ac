package invoices

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/quotedesk/quotedesk/internal/platform/db"
	"github.com/quotedesk/quotedesk/internal/shared"
)

// Repository persists invoices.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Invoice, error)
	List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error)
	Create(ctx context.Context, inv Invoice) error
	Update(ctx context.Context, inv Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db db.DBTX
}

// NewRepository constructs a Postgres-backed repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const invoiceColumns = `id, invoice_number, sequence, type, status, payment_status, customer_id,
	customer, items, sub_total, discount_percent, discount_amount, shipping, tax_percent,
	tax_amount, remove_tax, order_total_after_tax, notes, invoice_date, due_date,
	created_at, updated_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var (
		inv          Invoice
		customerJSON []byte
		itemsJSON    []byte
	)
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.Sequence, &inv.Type, &inv.Status,
		&inv.PaymentStatus, &inv.CustomerID, &customerJSON, &itemsJSON,
		&inv.SubTotal.Decimal, &inv.DiscountPercent.Decimal, &inv.DiscountAmount.Decimal,
		&inv.Shipping.Decimal, &inv.TaxPercent.Decimal, &inv.TaxAmount.Decimal,
		&inv.RemoveTax, &inv.OrderTotalAfterTax.Decimal, &inv.Notes,
		&inv.InvoiceDate, &inv.DueDate, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(customerJSON, &inv.Customer); err != nil {
		return nil, fmt.Errorf("decode customer snapshot: %w", err)
	}
	if err := json.Unmarshal(itemsJSON, &inv.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return &inv, nil
}

func encodeDocuments(inv Invoice) ([]byte, []byte, error) {
	customer, err := json.Marshal(inv.Customer)
	if err != nil {
		return nil, nil, fmt.Errorf("encode customer snapshot: %w", err)
	}
	items := inv.Items
	if items == nil {
		items = []LineItem{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, nil, fmt.Errorf("encode items: %w", err)
	}
	return customer, encoded, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("invoice %s: %w", id, shared.ErrNotFound)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *repository) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	var (
		conds []string
		args  []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("type", req.Type)
	add("status", req.Status)
	add("payment_status", req.PaymentStatus)

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	args = append(args, req.Limit, req.Offset)
	query := fmt.Sprintf(`SELECT %s FROM invoices%s ORDER BY created_at DESC, sequence DESC LIMIT $%d OFFSET $%d`,
		invoiceColumns, where, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *inv)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, inv Invoice) error {
	customer, items, err := encodeDocuments(inv)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		inv.ID, inv.InvoiceNumber, inv.Sequence, inv.Type, inv.Status, inv.PaymentStatus, inv.CustomerID,
		customer, items, inv.SubTotal.Decimal, inv.DiscountPercent.Decimal, inv.DiscountAmount.Decimal,
		inv.Shipping.Decimal, inv.TaxPercent.Decimal, inv.TaxAmount.Decimal, inv.RemoveTax,
		inv.OrderTotalAfterTax.Decimal, inv.Notes, inv.InvoiceDate, inv.DueDate, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s already exists", shared.ErrConflict, inv.InvoiceNumber)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, inv Invoice) error {
	customer, items, err := encodeDocuments(inv)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `UPDATE invoices SET
		type = $2, status = $3, payment_status = $4, customer_id = $5, customer = $6, items = $7,
		sub_total = $8, discount_percent = $9, discount_amount = $10, shipping = $11,
		tax_percent = $12, tax_amount = $13, remove_tax = $14, order_total_after_tax = $15,
		notes = $16, invoice_date = $17, due_date = $18, updated_at = $19
	WHERE id = $1`,
		inv.ID, inv.Type, inv.Status, inv.PaymentStatus, inv.CustomerID, customer, items,
		inv.SubTotal.Decimal, inv.DiscountPercent.Decimal, inv.DiscountAmount.Decimal, inv.Shipping.Decimal,
		inv.TaxPercent.Decimal, inv.TaxAmount.Decimal, inv.RemoveTax, inv.OrderTotalAfterTax.Decimal,
		inv.Notes, inv.InvoiceDate, inv.DueDate, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", inv.ID, shared.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", id, shared.ErrNotFound)
	}
	return nil
}
