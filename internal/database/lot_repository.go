package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hypernova-labs/purchase-service/internal/models"
	"github.com/sirupsen/logrus"
)

const lotColumns = `
	id, lot_name, customer_code, price, currency_code,
	nds_rate, place_delivery, date_delivery`

// LotRepository maneja las operaciones de base de datos para Lot
type LotRepository struct {
	db     *DB
	q      querier
	logger *logrus.Logger
}

// NewLotRepository crea una nueva instancia del repositorio
func NewLotRepository(db *DB, logger *logrus.Logger) *LotRepository {
	return &LotRepository{
		db:     db,
		q:      db.DB,
		logger: logger,
	}
}

// WithTx retorna una copia del repositorio que opera dentro de tx
func (r *LotRepository) WithTx(tx *sql.Tx) *LotRepository {
	return &LotRepository{
		db:     r.db,
		q:      tx,
		logger: r.logger,
	}
}

// FindAll obtiene todos los lotes ordenados por nombre
func (r *LotRepository) FindAll(ctx context.Context) ([]models.Lot, error) {
	return r.Search(ctx, models.LotFilter{})
}

// Search obtiene los lotes que cumplen todos los filtros provistos
func (r *LotRepository) Search(ctx context.Context, filter models.LotFilter) ([]models.Lot, error) {
	where, args := NewCondition().
		ContainsIgnoreCase("lot_name", filter.LotName).
		Equal("customer_code", filter.CustomerCode).
		Equal("currency_code", filter.CurrencyCode).
		Where()

	query := fmt.Sprintf(`
		SELECT %s
		FROM lot
		WHERE %s
		ORDER BY lot_name
	`, lotColumns, where)

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying lots: %w", err)
	}
	defer rows.Close()

	lots := make([]models.Lot, 0)
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning lot: %w", err)
		}
		lots = append(lots, *lot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lots: %w", err)
	}

	return lots, nil
}

// FindByID obtiene un lote por ID
func (r *LotRepository) FindByID(ctx context.Context, id int64) (*models.Lot, error) {
	query := `SELECT ` + lotColumns + `
		FROM lot
		WHERE id = $1
	`

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	lot, err := scanLot(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lot %d %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("error querying lot: %w", err)
	}

	return lot, nil
}

// Insert crea un nuevo lote con ID generado por la base
func (r *LotRepository) Insert(ctx context.Context, lot *models.Lot) (*models.Lot, error) {
	query := `
		INSERT INTO lot (
			lot_name, customer_code, price, currency_code,
			nds_rate, place_delivery, date_delivery
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING ` + lotColumns

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	created, err := scanLot(r.q.QueryRowContext(ctx, query,
		lot.LotName, lot.CustomerCode, lot.Price, lot.CurrencyCode,
		lot.NdsRate, lot.PlaceDelivery, lot.DateDelivery,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("customer %s does not exist: %w", lot.CustomerCode, models.ErrInvalidReference)
		}
		return nil, fmt.Errorf("error creating lot: %w", err)
	}

	return created, nil
}

// Update sobrescribe todos los campos salvo el ID
func (r *LotRepository) Update(ctx context.Context, lot *models.Lot) (*models.Lot, error) {
	query := `
		UPDATE lot
		SET lot_name = $2, customer_code = $3, price = $4, currency_code = $5,
		    nds_rate = $6, place_delivery = $7, date_delivery = $8
		WHERE id = $1
		RETURNING ` + lotColumns

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	updated, err := scanLot(r.q.QueryRowContext(ctx, query,
		lot.ID, lot.LotName, lot.CustomerCode, lot.Price, lot.CurrencyCode,
		lot.NdsRate, lot.PlaceDelivery, lot.DateDelivery,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lot %d %w", lot.ID, models.ErrNotFound)
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("customer %s does not exist: %w", lot.CustomerCode, models.ErrInvalidReference)
		}
		return nil, fmt.Errorf("error updating lot: %w", err)
	}

	return updated, nil
}

// Delete elimina un lote por ID
func (r *LotRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	result, err := r.q.ExecContext(ctx, `DELETE FROM lot WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting lot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("lot %d %w", id, models.ErrNotFound)
	}

	return nil
}

func scanLot(row rowScanner) (*models.Lot, error) {
	var lot models.Lot
	err := row.Scan(
		&lot.ID, &lot.LotName, &lot.CustomerCode, &lot.Price, &lot.CurrencyCode,
		&lot.NdsRate, &lot.PlaceDelivery, &lot.DateDelivery,
	)
	if err != nil {
		return nil, err
	}
	return &lot, nil
}
