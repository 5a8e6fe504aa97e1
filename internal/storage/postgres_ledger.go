package storage

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq"

	"github.com/example/ride-booking/internal/models"
)

// PostgresLedger persists transactions in Postgres. Selected by PG_DSN;
// the memory ledger remains the default.
type PostgresLedger struct {
	db *sql.DB
}

func NewPostgresLedger(dsn string) (*PostgresLedger, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	// quick ping
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresLedger{db: db}, nil
}

func (p *PostgresLedger) Append(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO transactions(type, amount, description, status, booking_id, card_number, card_brand, cardholder_name, ts)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id`,
		string(tx.Type), tx.Amount, tx.Description, tx.Status, tx.BookingID,
		tx.PaymentMethod.CardNumber, tx.PaymentMethod.Brand, tx.PaymentMethod.CardholderName, tx.Timestamp,
	).Scan(&tx.ID)
	return tx, err
}

func (p *PostgresLedger) Get(ctx context.Context, id int) (models.Transaction, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT id, type, amount, description, status, booking_id, card_number, card_brand, cardholder_name, ts
		 FROM transactions WHERE id=$1`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrNotFound
	}
	return tx, err
}

func (p *PostgresLedger) ListDescending(ctx context.Context) ([]models.Transaction, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, type, amount, description, status, booking_id, card_number, card_brand, cardholder_name, ts
		 FROM transactions ORDER BY ts DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(r rowScanner) (models.Transaction, error) {
	var tx models.Transaction
	var typ string
	err := r.Scan(&tx.ID, &typ, &tx.Amount, &tx.Description, &tx.Status, &tx.BookingID,
		&tx.PaymentMethod.CardNumber, &tx.PaymentMethod.Brand, &tx.PaymentMethod.CardholderName, &tx.Timestamp)
	tx.Type = models.TransactionType(typ)
	return tx, err
}
