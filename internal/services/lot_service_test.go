package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hypernova-labs/purchase-service/internal/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lotCols = []string{
	"id", "lot_name", "customer_code", "price", "currency_code",
	"nds_rate", "place_delivery", "date_delivery",
}

func newLotService(t *testing.T) (*LotService, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return NewLotService(db, testLogger()), mock
}

func lotRow(id int64, name, price string) []driver.Value {
	return []driver.Value{id, name, "C1", price, "USD", "20%", nil, nil}
}

func lotRequest(name, price string) *models.LotRequest {
	p := decimal.RequireFromString(price)
	return &models.LotRequest{
		LotName:      name,
		CustomerCode: "C1",
		Price:        &p,
		CurrencyCode: "USD",
		NdsRate:      "20%",
	}
}

func TestLotService_Create(t *testing.T) {
	svc, mock := newLotService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO lot").
		WithArgs("Widget", "C1", sqlmock.AnyArg(), "USD", "20%", nil, nil).
		WillReturnRows(sqlmock.NewRows(lotCols).AddRow(lotRow(1, "Widget", "100.50")...))
	mock.ExpectCommit()

	lot, err := svc.Create(context.Background(), lotRequest("Widget", "100.50"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), lot.ID)
	assert.True(t, lot.Price.Equal(decimal.RequireFromString("100.5")))
	assert.Nil(t, lot.DateDelivery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotService_Create_WithDelivery(t *testing.T) {
	svc, mock := newLotService(t)

	delivery := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	req := lotRequest("Widget", "10")
	req.PlaceDelivery = strPtr("Warehouse 1")
	req.DateDelivery = models.NewLocalDateTime(delivery)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO lot").
		WithArgs("Widget", "C1", sqlmock.AnyArg(), "USD", "20%", "Warehouse 1", delivery).
		WillReturnRows(sqlmock.NewRows(lotCols).
			AddRow(int64(2), "Widget", "C1", "10.00", "USD", "20%", "Warehouse 1", delivery))
	mock.ExpectCommit()

	lot, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, lot.PlaceDelivery)
	assert.Equal(t, "Warehouse 1", *lot.PlaceDelivery)
	require.NotNil(t, lot.DateDelivery)
	assert.True(t, delivery.Equal(lot.DateDelivery.Time))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotService_Create_UnknownCustomer(t *testing.T) {
	svc, mock := newLotService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO lot").
		WillReturnError(&pq.Error{Code: "23503", Message: "violates foreign key constraint"})
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), lotRequest("Widget", "1"))

	assert.True(t, errors.Is(err, models.ErrInvalidReference))
	assert.Contains(t, err.Error(), "customer C1 does not exist")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotService_UpdateThenFind(t *testing.T) {
	svc, mock := newLotService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE lot").
		WithArgs(int64(1), "Gadget", "C1", sqlmock.AnyArg(), "USD", "20%", nil, nil).
		WillReturnRows(sqlmock.NewRows(lotCols).AddRow(lotRow(1, "Gadget", "200.00")...))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM lot WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(lotCols).AddRow(lotRow(1, "Gadget", "200.00")...))

	updated, err := svc.Update(context.Background(), 1, lotRequest("Gadget", "200"))
	require.NoError(t, err)
	assert.Equal(t, "Gadget", updated.LotName)

	found, err := svc.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Gadget", found.LotName)
	assert.True(t, found.Price.Equal(decimal.NewFromInt(200)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotService_Update_NotFound(t *testing.T) {
	svc, mock := newLotService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE lot").WillReturnRows(sqlmock.NewRows(lotCols))
	mock.ExpectRollback()

	_, err := svc.Update(context.Background(), 42, lotRequest("Gadget", "1"))

	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Equal(t, "lot 42 not found", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotService_FindByID_Missing(t *testing.T) {
	svc, mock := newLotService(t)

	mock.ExpectQuery("FROM lot WHERE id").WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows(lotCols))

	lot, err := svc.FindByID(context.Background(), 9)
	assert.NoError(t, err)
	assert.Nil(t, lot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotService_Delete(t *testing.T) {
	svc, mock := newLotService(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM lot").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM lot").WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.True(t, errors.Is(svc.Delete(context.Background(), 2), models.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotService_Search(t *testing.T) {
	svc, mock := newLotService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM lot WHERE 1=1 AND lot_name ILIKE $1 AND currency_code = $2 ORDER BY lot_name")).
		WithArgs("%wid%", "USD").
		WillReturnRows(sqlmock.NewRows(lotCols).AddRow(lotRow(1, "Widget", "1.00")...))

	lots, err := svc.Search(context.Background(), models.LotFilter{LotName: "wid", CurrencyCode: "USD"})
	require.NoError(t, err)

	require.Len(t, lots, 1)
	assert.Equal(t, "Widget", lots[0].LotName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
