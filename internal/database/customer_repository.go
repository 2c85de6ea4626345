package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hypernova-labs/purchase-service/internal/models"
	"github.com/sirupsen/logrus"
)

const customerColumns = `
	customer_code, customer_name, customer_inn, customer_kpp,
	customer_legal_address, customer_postal_address, customer_email,
	customer_code_main, is_organization, is_person`

// CustomerRepository maneja las operaciones de base de datos para Customer
type CustomerRepository struct {
	db     *DB
	q      querier
	logger *logrus.Logger
}

// NewCustomerRepository crea una nueva instancia del repositorio
func NewCustomerRepository(db *DB, logger *logrus.Logger) *CustomerRepository {
	return &CustomerRepository{
		db:     db,
		q:      db.DB,
		logger: logger,
	}
}

// WithTx retorna una copia del repositorio que opera dentro de tx
func (r *CustomerRepository) WithTx(tx *sql.Tx) *CustomerRepository {
	return &CustomerRepository{
		db:     r.db,
		q:      tx,
		logger: r.logger,
	}
}

// FindAll obtiene todos los clientes ordenados por nombre
func (r *CustomerRepository) FindAll(ctx context.Context) ([]models.Customer, error) {
	return r.Search(ctx, models.CustomerFilter{})
}

// Search obtiene los clientes que cumplen todos los filtros provistos
func (r *CustomerRepository) Search(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	where, args := NewCondition().
		ContainsIgnoreCase("customer_name", filter.Name).
		Equal("customer_inn", filter.Inn).
		EqualBool("is_organization", filter.IsOrganization).
		Where()

	query := fmt.Sprintf(`
		SELECT %s
		FROM customer
		WHERE %s
		ORDER BY customer_name
	`, customerColumns, where)

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying customers: %w", err)
	}
	defer rows.Close()

	customers := make([]models.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning customer: %w", err)
		}
		customers = append(customers, *customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// FindByCode obtiene un cliente por código
func (r *CustomerRepository) FindByCode(ctx context.Context, code string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customer
		WHERE customer_code = $1
	`

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	customer, err := scanCustomer(r.q.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("customer %s %w", code, models.ErrNotFound)
		}
		return nil, fmt.Errorf("error querying customer: %w", err)
	}

	return customer, nil
}

// Insert crea un nuevo cliente
func (r *CustomerRepository) Insert(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	query := `
		INSERT INTO customer (` + customerColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		RETURNING ` + customerColumns

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	created, err := scanCustomer(r.q.QueryRowContext(ctx, query,
		customer.CustomerCode, customer.CustomerName, customer.CustomerInn,
		customer.CustomerKpp, customer.CustomerLegalAddress, customer.CustomerPostalAddress,
		customer.CustomerEmail, customer.CustomerCodeMain,
		customer.IsOrganization, customer.IsPerson,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("customer with code %s %w", customer.CustomerCode, models.ErrConflict)
		}
		return nil, fmt.Errorf("error creating customer: %w", err)
	}

	return created, nil
}

// Update sobrescribe todos los campos mutables. El código no cambia.
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	query := `
		UPDATE customer
		SET customer_name = $2, customer_inn = $3, customer_kpp = $4,
		    customer_legal_address = $5, customer_postal_address = $6,
		    customer_email = $7, customer_code_main = $8,
		    is_organization = $9, is_person = $10
		WHERE customer_code = $1
		RETURNING ` + customerColumns

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	updated, err := scanCustomer(r.q.QueryRowContext(ctx, query,
		customer.CustomerCode, customer.CustomerName, customer.CustomerInn,
		customer.CustomerKpp, customer.CustomerLegalAddress, customer.CustomerPostalAddress,
		customer.CustomerEmail, customer.CustomerCodeMain,
		customer.IsOrganization, customer.IsPerson,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("customer %s %w", customer.CustomerCode, models.ErrNotFound)
		}
		return nil, fmt.Errorf("error updating customer: %w", err)
	}

	return updated, nil
}

// Delete elimina un cliente por código
func (r *CustomerRepository) Delete(ctx context.Context, code string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	result, err := r.q.ExecContext(ctx, `DELETE FROM customer WHERE customer_code = $1`, code)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("customer %s is referenced by lots: %w", code, models.ErrConflict)
		}
		return fmt.Errorf("error deleting customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("customer %s %w", code, models.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var customer models.Customer
	err := row.Scan(
		&customer.CustomerCode, &customer.CustomerName, &customer.CustomerInn,
		&customer.CustomerKpp, &customer.CustomerLegalAddress, &customer.CustomerPostalAddress,
		&customer.CustomerEmail, &customer.CustomerCodeMain,
		&customer.IsOrganization, &customer.IsPerson,
	)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
