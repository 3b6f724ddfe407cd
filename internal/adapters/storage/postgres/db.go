package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-appointments/internal/domain/appointments"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	// Ninguna llamada al store bloquea indefinido.
	queryTimeout = 3 * time.Second

	// Reintentos acotados solo para fallas transitorias; las de negocio
	// salen directo. Pasado esto, el caller recibe ErrTransient.
	maxAttempts = 3
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// retry ejecuta fn con timeout por intento y backoff acotado ante errores
// transitorios. Agotados los intentos, envuelve en ErrTransient para que
// el cliente distinga "reintentá" de "no permitido".
func retry(ctx context.Context, fn func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, queryTimeout)
		err = fn(callCtx)
		cancel()

		if err == nil || !isTransient(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		select {
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", appointments.ErrTransient, ctx.Err())
		}
	}
	return fmt.Errorf("%w: %v", appointments.ErrTransient, err)
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// clase 08 = connection exception; 40001 serialization failure;
		// 57014 query canceled (statement timeout).
		return strings.HasPrefix(pgErr.Code, "08") || pgErr.Code == "40001" || pgErr.Code == "57014"
	}
	return pgconn.Timeout(err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
