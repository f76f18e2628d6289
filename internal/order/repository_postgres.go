package order

import (
	"context"
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	createOrderQuery = `
        INSERT INTO orders (customer_name, customer_phone, delivery_method, shipping_address, total_amount, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING order_id
    `
	insertItemQuery = `
        INSERT INTO order_items (order_id, variant_id, quantity, price_at_purchase, product_details)
        VALUES ($1,$2,$3,$4,$5)
    `
	decrementStockQuery = `
        UPDATE variants SET stock = stock - $1
        WHERE variant_id = $2 AND stock >= $1
    `
	getOrderQuery = `
        SELECT order_id, customer_name, customer_phone, delivery_method, shipping_address, total_amount, status, created_at
        FROM orders
        WHERE order_id = $1
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, ord Order) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, createOrderQuery,
		ord.CustomerName, ord.CustomerPhone, string(ord.DeliveryMethod), ord.ShippingAddress,
		ord.TotalAmount, ord.Status, ord.CreatedAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CreateOrderItems writes all line items in one transaction and, in the
// same transaction, conditionally decrements the variants' stock. A
// shopper racing another shopper for the last unit loses here instead
// of silently overselling: the conditional update touches zero rows and
// the whole batch rolls back with ErrInsufficientStock.
func (r *PostgresRepository) CreateOrderItems(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, it := range items {
		res, err := tx.ExecContext(ctx, decrementStockQuery, it.Quantity, it.VariantID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrInsufficientStock
		}

		details, err := json.Marshal(it.ProductDetails)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertItemQuery,
			it.OrderID, it.VariantID, it.Quantity, it.PriceAtPurchase, details); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) DeleteOrder(ctx context.Context, orderID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE order_id = $1`, orderID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRepository) GetByID(orderID int) (Order, error) {
	var ord Order
	err := r.db.QueryRow(getOrderQuery, orderID).Scan(
		&ord.ID, &ord.CustomerName, &ord.CustomerPhone, (*string)(&ord.DeliveryMethod),
		&ord.ShippingAddress, &ord.TotalAmount, &ord.Status, &ord.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return ord, nil
}
