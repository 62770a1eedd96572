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
	"github.com/shopspring/decimal"

	domainErrors "github.com/hotelworks/loyalty/internal/domain/errors"
	"github.com/hotelworks/loyalty/internal/domain/model"
	"github.com/hotelworks/loyalty/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool used by the storage. Declared as an
// interface so tests can substitute a pgxmock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type customerRepository struct {
	storage *Storage
}

type programRepository struct {
	storage *Storage
}

type ledgerRepository struct {
	storage *Storage
}

type historyRepository struct {
	storage *Storage
}

type paymentEventRepository struct {
	storage *Storage
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
func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) Programs() repository.ProgramRepository {
	return &programRepository{storage: s}
}

func (s *Storage) Ledger() repository.LedgerRepository {
	return &ledgerRepository{storage: s}
}

func (s *Storage) History() repository.HistoryRepository {
	return &historyRepository{storage: s}
}

func (s *Storage) PaymentEvents() repository.PaymentEventRepository {
	return &paymentEventRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS point_programs (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            discount_rate NUMERIC(12,4) NOT NULL CHECK (discount_rate >= 0)
        )`,
		`CREATE TABLE IF NOT EXISTS customers (
            id SERIAL PRIMARY KEY,
            full_name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            phone TEXT UNIQUE NOT NULL,
            point_balance BIGINT NOT NULL DEFAULT 0 CHECK (point_balance >= 0),
            program_id BIGINT REFERENCES point_programs(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS point_history (
            id SERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES customers(id),
            point_delta BIGINT NOT NULL,
            kind TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS payment_events (
            id SERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL,
            amount NUMERIC(12,2) NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_point_history_customer ON point_history(customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_events_status ON payment_events(status, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- CustomerRepository implementation ---

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	const query = `SELECT id, full_name, email, phone, point_balance, program_id FROM customers WHERE id=$1`
	var c model.Customer
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.PointBalance, &c.ProgramID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.WrapPersistence("get customer", err)
	}
	return &c, nil
}

func (r *customerRepository) PointsInfo(ctx context.Context, id int64) (*model.CustomerPointsInfo, error) {
	const query = `SELECT c.id, c.full_name, c.point_balance, p.name, p.discount_rate::text
                   FROM customers c
                   LEFT JOIN point_programs p ON p.id = c.program_id
                   WHERE c.id=$1`
	var (
		info    model.CustomerPointsInfo
		rateRaw *string
	)
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&info.CustomerID, &info.FullName, &info.PointBalance, &info.ProgramName, &rateRaw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.WrapPersistence("get customer points info", err)
	}
	if rateRaw != nil {
		rate, err := decimal.NewFromString(*rateRaw)
		if err != nil {
			return nil, domainErrors.WrapPersistence("get customer points info", err)
		}
		info.DiscountRate = &rate
	}
	return &info, nil
}

// --- ProgramRepository implementation ---

func (r *programRepository) GetByID(ctx context.Context, id int64) (*model.PointProgram, error) {
	const query = `SELECT id, name, discount_rate::text FROM point_programs WHERE id=$1`
	var (
		p       model.PointProgram
		rateRaw string
	)
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &rateRaw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.WrapPersistence("get point program", err)
	}
	rate, err := decimal.NewFromString(rateRaw)
	if err != nil {
		return nil, domainErrors.WrapPersistence("get point program", err)
	}
	p.DiscountRate = rate
	return &p, nil
}

// --- LedgerRepository implementation ---

func (r *ledgerRepository) GetBalance(ctx context.Context, customerID int64) (int64, error) {
	const query = `SELECT point_balance FROM customers WHERE id=$1`
	var balance int64
	err := r.storage.pool.QueryRow(ctx, query, customerID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, domainErrors.WrapPersistence("get balance", err)
	}
	return balance, nil
}

// AdjustBalance locks the customer row, verifies the delta keeps the balance
// non-negative, applies it, and appends the history entry. All of it commits
// or rolls back as one unit.
func (r *ledgerRepository) AdjustBalance(ctx context.Context, customerID int64, delta int64, kind model.TransactionKind) (int64, error) {
	var newBalance int64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockQuery = `SELECT point_balance FROM customers WHERE id=$1 FOR UPDATE`
		var balance int64
		if err := tx.QueryRow(ctx, lockQuery, customerID).Scan(&balance); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if balance+delta < 0 {
			return domainErrors.ErrInsufficientBalance
		}

		const updateQuery = `UPDATE customers SET point_balance = point_balance + $2 WHERE id=$1 RETURNING point_balance`
		if err := tx.QueryRow(ctx, updateQuery, customerID, delta).Scan(&newBalance); err != nil {
			return err
		}

		const insertHistory = `INSERT INTO point_history (customer_id, point_delta, kind) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insertHistory, customerID, delta, string(kind)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, domainErrors.WrapPersistence("adjust balance", err)
	}
	return newBalance, nil
}

// --- HistoryRepository implementation ---

func (r *historyRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.PointHistoryEntry, error) {
	const query = `SELECT id, customer_id, point_delta, kind, created_at
                   FROM point_history WHERE customer_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, domainErrors.WrapPersistence("list point history", err)
	}
	defer rows.Close()

	var result []model.PointHistoryEntry
	for rows.Next() {
		var (
			e    model.PointHistoryEntry
			kind string
		)
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.PointDelta, &kind, &e.CreatedAt); err != nil {
			return nil, domainErrors.WrapPersistence("list point history", err)
		}
		e.Kind = model.TransactionKind(kind)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.WrapPersistence("list point history", err)
	}
	return result, nil
}

// --- PaymentEventRepository implementation ---

func (r *paymentEventRepository) Enqueue(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.PaymentEvent, error) {
	const query = `INSERT INTO payment_events (customer_id, amount, status) VALUES ($1, $2, $3)
                   RETURNING id, created_at, updated_at`
	event := model.PaymentEvent{
		CustomerID: customerID,
		Amount:     amount,
		Status:     model.PaymentStatusNew,
	}
	err := r.storage.pool.QueryRow(ctx, query, customerID, amount.String(), string(model.PaymentStatusNew)).
		Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, domainErrors.WrapPersistence("enqueue payment event", err)
	}
	return &event, nil
}

func (r *paymentEventRepository) SelectBatchForProcessing(ctx context.Context, limit int) ([]model.PaymentEvent, error) {
	// Only NEW rows are claimable. A row stuck in PROCESSING must never be
	// handed out again: its points may already have been credited.
	const selectQuery = `SELECT id, customer_id, amount::text, status, created_at, updated_at
                         FROM payment_events
                         WHERE status = 'NEW'
                         ORDER BY created_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var events []model.PaymentEvent
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				e         model.PaymentEvent
				amountRaw string
				status    string
			)
			if err := rows.Scan(&e.ID, &e.CustomerID, &amountRaw, &status, &e.CreatedAt, &e.UpdatedAt); err != nil {
				return err
			}
			amount, err := decimal.NewFromString(amountRaw)
			if err != nil {
				return err
			}
			e.Amount = amount
			if _, err := tx.Exec(ctx, `UPDATE payment_events SET status='PROCESSING', updated_at=NOW() WHERE id=$1`, e.ID); err != nil {
				return err
			}
			e.Status = model.PaymentStatusProcessing
			events = append(events, e)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, domainErrors.WrapPersistence("select payment events", err)
	}
	return events, nil
}

func (r *paymentEventRepository) MarkProcessed(ctx context.Context, id int64) error {
	return r.markStatus(ctx, id, model.PaymentStatusProcessed)
}

func (r *paymentEventRepository) MarkInvalid(ctx context.Context, id int64) error {
	return r.markStatus(ctx, id, model.PaymentStatusInvalid)
}

func (r *paymentEventRepository) Requeue(ctx context.Context, id int64) error {
	return r.markStatus(ctx, id, model.PaymentStatusNew)
}

func (r *paymentEventRepository) markStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	const query = `UPDATE payment_events SET status=$1, updated_at=NOW() WHERE id=$2`
	if _, err := r.storage.pool.Exec(ctx, query, string(status), id); err != nil {
		return domainErrors.WrapPersistence("update payment event", err)
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

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
