package api

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hypernova-labs/purchase-service/internal/models"
)

// fakeCustomerService guarda los clientes en memoria con la misma semántica que el servicio real
type fakeCustomerService struct {
	mu        sync.Mutex
	customers map[string]models.Customer
	err       error
}

func newFakeCustomerService() *fakeCustomerService {
	return &fakeCustomerService{customers: make(map[string]models.Customer)}
}

func (f *fakeCustomerService) FindAll(ctx context.Context) ([]models.Customer, error) {
	return f.Search(ctx, models.CustomerFilter{})
}

func (f *fakeCustomerService) FindByCode(_ context.Context, code string) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	customer, ok := f.customers[code]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

func (f *fakeCustomerService) Search(_ context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	result := make([]models.Customer, 0)
	for _, c := range f.customers {
		if filter.Name != "" && !strings.Contains(strings.ToLower(c.CustomerName), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Inn != "" && (c.CustomerInn == nil || *c.CustomerInn != filter.Inn) {
			continue
		}
		if filter.IsOrganization != nil && c.IsOrganization != *filter.IsOrganization {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CustomerName < result[j].CustomerName })
	return result, nil
}

func (f *fakeCustomerService) Create(_ context.Context, req *models.CustomerRequest) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[req.CustomerCode]; ok {
		return nil, fmt.Errorf("customer with code %s %w", req.CustomerCode, models.ErrConflict)
	}
	customer := req.ToCustomer(req.CustomerCode)
	f.customers[customer.CustomerCode] = *customer
	return customer, nil
}

func (f *fakeCustomerService) Update(_ context.Context, code string, req *models.CustomerRequest) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[code]; !ok {
		return nil, fmt.Errorf("customer %s %w", code, models.ErrNotFound)
	}
	customer := req.ToCustomer(code)
	f.customers[code] = *customer
	return customer, nil
}

func (f *fakeCustomerService) Delete(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.customers[code]; !ok {
		return fmt.Errorf("customer %s %w", code, models.ErrNotFound)
	}
	delete(f.customers, code)
	return nil
}

// fakeLotService guarda los lotes en memoria con IDs secuenciales
type fakeLotService struct {
	mu     sync.Mutex
	lots   map[int64]models.Lot
	nextID int64
}

func newFakeLotService() *fakeLotService {
	return &fakeLotService{lots: make(map[int64]models.Lot), nextID: 1}
}

func (f *fakeLotService) FindAll(ctx context.Context) ([]models.Lot, error) {
	return f.Search(ctx, models.LotFilter{})
}

func (f *fakeLotService) FindByID(_ context.Context, id int64) (*models.Lot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lot, ok := f.lots[id]
	if !ok {
		return nil, nil
	}
	return &lot, nil
}

func (f *fakeLotService) Search(_ context.Context, filter models.LotFilter) ([]models.Lot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]models.Lot, 0)
	for _, l := range f.lots {
		if filter.LotName != "" && !strings.Contains(strings.ToLower(l.LotName), strings.ToLower(filter.LotName)) {
			continue
		}
		if filter.CustomerCode != "" && l.CustomerCode != filter.CustomerCode {
			continue
		}
		if filter.CurrencyCode != "" && l.CurrencyCode != filter.CurrencyCode {
			continue
		}
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LotName < result[j].LotName })
	return result, nil
}

func (f *fakeLotService) Create(_ context.Context, req *models.LotRequest) (*models.Lot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lot := req.ToLot(f.nextID)
	f.nextID++
	f.lots[lot.ID] = *lot
	return lot, nil
}

func (f *fakeLotService) Update(_ context.Context, id int64, req *models.LotRequest) (*models.Lot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lots[id]; !ok {
		return nil, fmt.Errorf("lot %d %w", id, models.ErrNotFound)
	}
	lot := req.ToLot(id)
	f.lots[id] = *lot
	return lot, nil
}

func (f *fakeLotService) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lots[id]; !ok {
		return fmt.Errorf("lot %d %w", id, models.ErrNotFound)
	}
	delete(f.lots, id)
	return nil
}

type fakeHealth struct{ err error }

func (h fakeHealth) HealthCheck(context.Context) error { return h.err }

type fakeLimiter struct {
	limit int64
	count map[string]int64
}

func (l *fakeLimiter) Allow(_ context.Context, key string) (bool, int64) {
	l.count[key]++
	return l.count[key] <= l.limit, l.count[key]
}

var errDatabaseDown = errors.New("connection refused")
