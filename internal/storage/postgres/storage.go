package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/parcelo/logistics/internal/domain/errors"
	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/domain/repository"
)

// dbPool abstracts the pgx pool so the storage can run against pgxmock.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type shipmentRepository struct {
	storage *Storage
}

type invoiceRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (dbPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Shipments() repository.ShipmentRepository {
	return &shipmentRepository{storage: s}
}

func (s *Storage) Invoices() repository.InvoiceRepository {
	return &invoiceRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            origin_street TEXT NOT NULL,
            origin_city TEXT NOT NULL,
            origin_state TEXT NOT NULL DEFAULT '',
            origin_zip TEXT NOT NULL,
            origin_country TEXT NOT NULL,
            origin_lat DOUBLE PRECISION,
            origin_lon DOUBLE PRECISION,
            dest_street TEXT NOT NULL,
            dest_city TEXT NOT NULL,
            dest_state TEXT NOT NULL DEFAULT '',
            dest_zip TEXT NOT NULL,
            dest_country TEXT NOT NULL,
            dest_lat DOUBLE PRECISION,
            dest_lon DOUBLE PRECISION,
            weight_kg DOUBLE PRECISION NOT NULL,
            distance_km DOUBLE PRECISION NOT NULL,
            priority INT NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            invoice_id TEXT NOT NULL,
            payment_id TEXT,
            shipment_id TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_history (
            id SERIAL PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id),
            status TEXT NOT NULL,
            at TIMESTAMPTZ NOT NULL,
            actor_id TEXT NOT NULL,
            reason TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS invoices (
            id TEXT PRIMARY KEY,
            order_id TEXT NOT NULL,
            total BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS invoice_items (
            id SERIAL PRIMARY KEY,
            invoice_id TEXT NOT NULL REFERENCES invoices(id),
            description TEXT NOT NULL,
            amount BIGINT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id TEXT PRIMARY KEY,
            invoice_id TEXT NOT NULL REFERENCES invoices(id),
            method_type TEXT NOT NULL,
            method_provider TEXT NOT NULL,
            masked_ref TEXT NOT NULL DEFAULT '',
            amount BIGINT NOT NULL,
            status TEXT NOT NULL,
            at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS shipments (
            id TEXT PRIMARY KEY,
            order_id TEXT UNIQUE NOT NULL REFERENCES orders(id),
            origin_street TEXT NOT NULL,
            origin_city TEXT NOT NULL,
            origin_state TEXT NOT NULL DEFAULT '',
            origin_zip TEXT NOT NULL,
            origin_country TEXT NOT NULL,
            origin_lat DOUBLE PRECISION,
            origin_lon DOUBLE PRECISION,
            dest_street TEXT NOT NULL,
            dest_city TEXT NOT NULL,
            dest_state TEXT NOT NULL DEFAULT '',
            dest_zip TEXT NOT NULL,
            dest_country TEXT NOT NULL,
            dest_lat DOUBLE PRECISION,
            dest_lon DOUBLE PRECISION,
            weight_kg DOUBLE PRECISION NOT NULL,
            distance_km DOUBLE PRECISION NOT NULL,
            priority INT NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            delivery_person_id TEXT,
            vehicle_id TEXT,
            estimated_delivery TIMESTAMPTZ,
            delivered_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS shipment_history (
            id SERIAL PRIMARY KEY,
            shipment_id TEXT NOT NULL REFERENCES shipments(id),
            status TEXT NOT NULL,
            at TIMESTAMPTZ NOT NULL,
            actor_id TEXT NOT NULL,
            reason TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS incidents (
            id TEXT PRIMARY KEY,
            shipment_id TEXT UNIQUE NOT NULL REFERENCES shipments(id),
            type TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            reporter_id TEXT NOT NULL,
            at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_approved ON payments(invoice_id) WHERE status = 'APPROVED'`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_pending ON payments(status, at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id,
    origin_street, origin_city, origin_state, origin_zip, origin_country, origin_lat, origin_lon,
    dest_street, dest_city, dest_state, dest_zip, dest_country, dest_lat, dest_lon,
    weight_kg, distance_km, priority, status, invoice_id, payment_id, shipment_id, created_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO orders (` + orderColumns + `)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)`
		_, err := tx.Exec(ctx, query,
			order.ID, order.UserID,
			order.Origin.Street, order.Origin.City, order.Origin.State, order.Origin.Zip, order.Origin.Country, order.Origin.Lat, order.Origin.Lon,
			order.Destination.Street, order.Destination.City, order.Destination.State, order.Destination.Zip, order.Destination.Country, order.Destination.Lat, order.Destination.Lon,
			order.WeightKg, order.DistanceKm, order.Priority, order.Status, order.InvoiceID, order.PaymentID, order.ShipmentID, order.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}
		return insertHistory(ctx, tx, "order_history", "order_id", order.ID, order.History)
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	row := r.storage.pool.QueryRow(ctx, query, id)

	var o model.Order
	err := row.Scan(
		&o.ID, &o.UserID,
		&o.Origin.Street, &o.Origin.City, &o.Origin.State, &o.Origin.Zip, &o.Origin.Country, &o.Origin.Lat, &o.Origin.Lon,
		&o.Destination.Street, &o.Destination.City, &o.Destination.State, &o.Destination.Zip, &o.Destination.Country, &o.Destination.Lat, &o.Destination.Lon,
		&o.WeightKg, &o.DistanceKm, &o.Priority, &o.Status, &o.InvoiceID, &o.PaymentID, &o.ShipmentID, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	if o.History, err = r.history(ctx, o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID, &o.UserID,
			&o.Origin.Street, &o.Origin.City, &o.Origin.State, &o.Origin.Zip, &o.Origin.Country, &o.Origin.Lat, &o.Origin.Lon,
			&o.Destination.Street, &o.Destination.City, &o.Destination.State, &o.Destination.Zip, &o.Destination.Country, &o.Destination.Lat, &o.Destination.Lon,
			&o.WeightKg, &o.DistanceKm, &o.Priority, &o.Status, &o.InvoiceID, &o.PaymentID, &o.ShipmentID, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `UPDATE orders SET status=$2, payment_id=$3, shipment_id=$4 WHERE id=$1`
		tag, err := tx.Exec(ctx, query, order.ID, order.Status, order.PaymentID, order.ShipmentID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM order_history WHERE order_id=$1`, order.ID); err != nil {
			return err
		}
		return insertHistory(ctx, tx, "order_history", "order_id", order.ID, order.History)
	})
}

func (r *orderRepository) history(ctx context.Context, orderID string) ([]model.StatusChange, error) {
	return selectHistory(ctx, r.storage.pool, "order_history", "order_id", orderID)
}

// --- ShipmentRepository implementation ---

const shipmentColumns = `id, order_id,
    origin_street, origin_city, origin_state, origin_zip, origin_country, origin_lat, origin_lon,
    dest_street, dest_city, dest_state, dest_zip, dest_country, dest_lat, dest_lon,
    weight_kg, distance_km, priority, status, delivery_person_id, vehicle_id, estimated_delivery, delivered_at, created_at`

func (r *shipmentRepository) Create(ctx context.Context, shipment *model.Shipment) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO shipments (` + shipmentColumns + `)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)`
		_, err := tx.Exec(ctx, query,
			shipment.ID, shipment.OrderID,
			shipment.Origin.Street, shipment.Origin.City, shipment.Origin.State, shipment.Origin.Zip, shipment.Origin.Country, shipment.Origin.Lat, shipment.Origin.Lon,
			shipment.Destination.Street, shipment.Destination.City, shipment.Destination.State, shipment.Destination.Zip, shipment.Destination.Country, shipment.Destination.Lat, shipment.Destination.Lon,
			shipment.WeightKg, shipment.DistanceKm, shipment.Priority, shipment.Status,
			shipment.DeliveryPersonID, shipment.VehicleID, shipment.EstimatedDelivery, shipment.DeliveredAt, shipment.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}
		return insertHistory(ctx, tx, "shipment_history", "shipment_id", shipment.ID, shipment.History)
	})
}

func (r *shipmentRepository) GetByID(ctx context.Context, id string) (*model.Shipment, error) {
	const query = `SELECT ` + shipmentColumns + ` FROM shipments WHERE id=$1`
	return r.get(ctx, query, id)
}

func (r *shipmentRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Shipment, error) {
	const query = `SELECT ` + shipmentColumns + ` FROM shipments WHERE order_id=$1`
	return r.get(ctx, query, orderID)
}

func (r *shipmentRepository) get(ctx context.Context, query, arg string) (*model.Shipment, error) {
	row := r.storage.pool.QueryRow(ctx, query, arg)

	var sh model.Shipment
	err := row.Scan(
		&sh.ID, &sh.OrderID,
		&sh.Origin.Street, &sh.Origin.City, &sh.Origin.State, &sh.Origin.Zip, &sh.Origin.Country, &sh.Origin.Lat, &sh.Origin.Lon,
		&sh.Destination.Street, &sh.Destination.City, &sh.Destination.State, &sh.Destination.Zip, &sh.Destination.Country, &sh.Destination.Lat, &sh.Destination.Lon,
		&sh.WeightKg, &sh.DistanceKm, &sh.Priority, &sh.Status,
		&sh.DeliveryPersonID, &sh.VehicleID, &sh.EstimatedDelivery, &sh.DeliveredAt, &sh.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	if sh.History, err = selectHistory(ctx, r.storage.pool, "shipment_history", "shipment_id", sh.ID); err != nil {
		return nil, err
	}
	if sh.Incident, err = r.incident(ctx, sh.ID); err != nil {
		return nil, err
	}
	return &sh, nil
}

func (r *shipmentRepository) Update(ctx context.Context, shipment *model.Shipment) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `UPDATE shipments SET status=$2, delivery_person_id=$3, vehicle_id=$4, estimated_delivery=$5, delivered_at=$6 WHERE id=$1`
		tag, err := tx.Exec(ctx, query, shipment.ID, shipment.Status, shipment.DeliveryPersonID, shipment.VehicleID, shipment.EstimatedDelivery, shipment.DeliveredAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM shipment_history WHERE shipment_id=$1`, shipment.ID); err != nil {
			return err
		}
		if err := insertHistory(ctx, tx, "shipment_history", "shipment_id", shipment.ID, shipment.History); err != nil {
			return err
		}
		if shipment.Incident != nil {
			const incidentQuery = `INSERT INTO incidents (id, shipment_id, type, description, reporter_id, at)
                VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT (shipment_id) DO NOTHING`
			inc := shipment.Incident
			if _, err := tx.Exec(ctx, incidentQuery, inc.ID, inc.ShipmentID, inc.Type, inc.Description, inc.ReporterID, inc.At); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *shipmentRepository) incident(ctx context.Context, shipmentID string) (*model.Incident, error) {
	const query = `SELECT id, shipment_id, type, description, reporter_id, at FROM incidents WHERE shipment_id=$1`
	var inc model.Incident
	err := r.storage.pool.QueryRow(ctx, query, shipmentID).Scan(&inc.ID, &inc.ShipmentID, &inc.Type, &inc.Description, &inc.ReporterID, &inc.At)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inc, nil
}

// --- InvoiceRepository implementation ---

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO invoices (id, order_id, total, created_at) VALUES ($1,$2,$3,$4)`
		if _, err := tx.Exec(ctx, query, invoice.ID, invoice.OrderID, invoice.Total, invoice.CreatedAt); err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}
		for _, item := range invoice.Items {
			const itemQuery = `INSERT INTO invoice_items (invoice_id, description, amount) VALUES ($1,$2,$3)`
			if _, err := tx.Exec(ctx, itemQuery, invoice.ID, item.Description, item.Amount); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	const query = `SELECT id, order_id, total, created_at FROM invoices WHERE id=$1`
	var inv model.Invoice
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&inv.ID, &inv.OrderID, &inv.Total, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `SELECT description, amount FROM invoice_items WHERE invoice_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.LineItem
		if err := rows.Scan(&item.Description, &item.Amount); err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &inv, nil
}

// --- PaymentRepository implementation ---

const paymentColumns = `id, invoice_id, method_type, method_provider, masked_ref, amount, status, at`

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	const query = `INSERT INTO payments (` + paymentColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.storage.pool.Exec(ctx, query,
		payment.ID, payment.InvoiceID, payment.Method.Type, payment.Method.Provider, payment.Method.MaskedRef,
		payment.Amount, payment.Status, payment.At,
	)
	if isUniqueViolation(err) {
		return domainErrors.ErrAlreadyExists
	}
	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE id=$1`
	return r.scanOne(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *paymentRepository) GetApprovedByInvoice(ctx context.Context, invoiceID string) (*model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id=$1 AND status=$2`
	return r.scanOne(r.storage.pool.QueryRow(ctx, query, invoiceID, model.PaymentStatusApproved))
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, paymentID string, status model.PaymentStatus) error {
	const query = `UPDATE payments SET status=$2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, paymentID, status)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrDuplicatePayment
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *paymentRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE status=$1 AND at < $2 ORDER BY at LIMIT $3`
	rows, err := r.storage.pool.Query(ctx, query, model.PaymentStatusPending, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Method.Type, &p.Method.Provider, &p.Method.MaskedRef, &p.Amount, &p.Status, &p.At); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) scanOne(row pgx.Row) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.InvoiceID, &p.Method.Type, &p.Method.Provider, &p.Method.MaskedRef, &p.Amount, &p.Status, &p.At)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// --- shared helpers ---

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func insertHistory(ctx context.Context, db execer, table, fk, id string, history []model.StatusChange) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, status, at, actor_id, reason) VALUES ($1,$2,$3,$4,$5)`, table, fk)
	for _, change := range history {
		if _, err := db.Exec(ctx, query, id, change.Status, change.At, change.ActorID, change.Reason); err != nil {
			return err
		}
	}
	return nil
}

func selectHistory(ctx context.Context, db querier, table, fk, id string) ([]model.StatusChange, error) {
	query := fmt.Sprintf(`SELECT status, at, actor_id, reason FROM %s WHERE %s=$1 ORDER BY id`, table, fk)
	rows, err := db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []model.StatusChange
	for rows.Next() {
		var change model.StatusChange
		if err := rows.Scan(&change.Status, &change.At, &change.ActorID, &change.Reason); err != nil {
			return nil, err
		}
		history = append(history, change)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
