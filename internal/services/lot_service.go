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

// LotService maneja la lógica de negocio para Lot
type LotService struct {
	db      *database.DB
	lotRepo *database.LotRepository
	logger  *logrus.Logger
}

// NewLotService crea una nueva instancia del servicio
func NewLotService(db *database.DB, logger *logrus.Logger) *LotService {
	return &LotService{
		db:      db,
		lotRepo: database.NewLotRepository(db, logger),
		logger:  logger,
	}
}

// FindAll obtiene todos los lotes ordenados por nombre
func (s *LotService) FindAll(ctx context.Context) ([]models.Lot, error) {
	lots, err := s.lotRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting lots: %w", err)
	}

	return lots, nil
}

// FindByID obtiene un lote por ID. Retorna nil si no existe.
func (s *LotService) FindByID(ctx context.Context, id int64) (*models.Lot, error) {
	lot, err := s.lotRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting lot: %w", err)
	}

	return lot, nil
}

// Search busca lotes combinando con AND los filtros provistos
func (s *LotService) Search(ctx context.Context, filter models.LotFilter) ([]models.Lot, error) {
	lots, err := s.lotRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error searching lots: %w", err)
	}

	return lots, nil
}

// Create crea un nuevo lote
func (s *LotService) Create(ctx context.Context, req *models.LotRequest) (*models.Lot, error) {
	var created *models.Lot

	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		created, err = s.lotRepo.WithTx(tx).Insert(ctx, req.ToLot(0))
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"lot_id":        created.ID,
		"lot_name":      created.LotName,
		"customer_code": created.CustomerCode,
		"price":         created.Price.String(),
	}).Info("Lot created successfully")

	return created, nil
}

// Update sobrescribe todos los campos del lote salvo el ID
func (s *LotService) Update(ctx context.Context, id int64, req *models.LotRequest) (*models.Lot, error) {
	var updated *models.Lot

	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		updated, err = s.lotRepo.WithTx(tx).Update(ctx, req.ToLot(id))
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"lot_id":   id,
		"lot_name": updated.LotName,
		"price":    updated.Price.String(),
	}).Info("Lot updated successfully")

	return updated, nil
}

// Delete elimina un lote por ID
func (s *LotService) Delete(ctx context.Context, id int64) error {
	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		return s.lotRepo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.WithField("lot_id", id).Info("Lot deleted successfully")

	return nil
}
