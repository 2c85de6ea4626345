package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hypernova-labs/purchase-service/internal/database"
	"github.com/hypernova-labs/purchase-service/internal/models"
	"github.com/sirupsen/logrus"
)

// CustomerService maneja la lógica de negocio para Customer
type CustomerService struct {
	db           *database.DB
	customerRepo *database.CustomerRepository
	logger       *logrus.Logger
}

// NewCustomerService crea una nueva instancia del servicio
func NewCustomerService(db *database.DB, logger *logrus.Logger) *CustomerService {
	return &CustomerService{
		db:           db,
		customerRepo: database.NewCustomerRepository(db, logger),
		logger:       logger,
	}
}

// FindAll obtiene todos los clientes ordenados por nombre
func (s *CustomerService) FindAll(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting customers: %w", err)
	}

	return customers, nil
}

// FindByCode obtiene un cliente por código. Retorna nil si no existe.
func (s *CustomerService) FindByCode(ctx context.Context, code string) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting customer: %w", err)
	}

	return customer, nil
}

// Search busca clientes combinando con AND los filtros provistos
func (s *CustomerService) Search(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	customers, err := s.customerRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error searching customers: %w", err)
	}

	return customers, nil
}

// Create crea un nuevo cliente. Falla con ErrConflict si el código ya existe.
func (s *CustomerService) Create(ctx context.Context, req *models.CustomerRequest) (*models.Customer, error) {
	var created *models.Customer

	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		repo := s.customerRepo.WithTx(tx)

		// Verificar si el cliente ya existe
		existing, err := repo.FindByCode(ctx, req.CustomerCode)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return err
		}
		if existing != nil {
			return fmt.Errorf("customer with code %s %w", req.CustomerCode, models.ErrConflict)
		}

		created, err = repo.Insert(ctx, req.ToCustomer(req.CustomerCode))
		return err
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			s.logger.WithField("customer_code", req.CustomerCode).Warn("Customer already exists")
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"customer_code": created.CustomerCode,
		"customer_name": created.CustomerName,
	}).Info("Customer created successfully")

	return created, nil
}

// Update sobrescribe los campos mutables del cliente con el código indicado
func (s *CustomerService) Update(ctx context.Context, code string, req *models.CustomerRequest) (*models.Customer, error) {
	var updated *models.Customer

	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		updated, err = s.customerRepo.WithTx(tx).Update(ctx, req.ToCustomer(code))
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"customer_code": code,
		"customer_name": updated.CustomerName,
	}).Info("Customer updated successfully")

	return updated, nil
}

// Delete elimina un cliente por código
func (s *CustomerService) Delete(ctx context.Context, code string) error {
	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		return s.customerRepo.WithTx(tx).Delete(ctx, code)
	})
	if err != nil {
		return err
	}

	s.logger.WithField("customer_code", code).Info("Customer deleted successfully")

	return nil
}
