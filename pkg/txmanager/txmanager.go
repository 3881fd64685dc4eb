// Package txmanager выполняет функции в транзакции, передавая её через контекст
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

var (
	// ErrBeginTx ошибка начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrUnsupportedDB переданный executor не умеет открывать транзакции
	ErrUnsupportedDB = errors.New("txmanager: db type not supported")
)

// TxBeginner умеет начинать транзакции (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager менеджер транзакций
type TransactionManager struct {
	begin func(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// NewTransactionManager создает менеджер поверх *dbmetrics.DB, *sql.DB или любого TxBeginner
func NewTransactionManager(db dbmetrics.DBExecutor) *TransactionManager {
	switch v := db.(type) {
	case TxBeginner:
		return &TransactionManager{begin: v.BeginTx}
	case *sql.DB:
		return &TransactionManager{begin: func(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
			tx, err := v.BeginTx(ctx, opts)
			if err != nil {
				return nil, err
			}
			return &dbmetrics.SqlTxWrapper{Tx: tx}, nil
		}}
	default:
		return &TransactionManager{begin: func(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
			return nil, ErrUnsupportedDB
		}}
	}
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.begin(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}
