package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"logitrack/internal/domain"
	"logitrack/internal/redis"
	"logitrack/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK CARGO REPOSITORY
// ──────────────────────────────────────────────

// MockCargoRepository is a mock implementation of CargoRepository.
type MockCargoRepository struct {
	mu     sync.RWMutex
	cargos map[string]*domain.Cargo

	// Counters for verification
	CreateCallCount          int32
	UpdateCallCount          int32
	SetDriverCallCount       int32
	ClaimUnassignedCallCount int32
	SetStatusCallCount       int32

	// Error injection
	CreateError    error
	UpdateError    error
	SetDriverError error
	SetStatusError error
}

// NewMockCargoRepository creates a new mock cargo repository.
func NewMockCargoRepository() *MockCargoRepository {
	return &MockCargoRepository{
		cargos: make(map[string]*domain.Cargo),
	}
}

// AddCargo adds a cargo to the mock repository.
func (m *MockCargoRepository) AddCargo(cargo *domain.Cargo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cargos[cargo.ID] = cargo
}

func (m *MockCargoRepository) Create(ctx context.Context, cargo *domain.Cargo) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cargos[cargo.ID] = cargo
	return nil
}

func (m *MockCargoRepository) GetByID(ctx context.Context, id string) (*domain.Cargo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cargo, ok := m.cargos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *cargo
	return &copy, nil
}

func (m *MockCargoRepository) GetByBusiness(ctx context.Context, businessID string) ([]*domain.Cargo, error) {
	return m.filter(func(c *domain.Cargo) bool { return c.BusinessID == businessID }), nil
}

func (m *MockCargoRepository) GetByDriver(ctx context.Context, driverID string) ([]*domain.Cargo, error) {
	return m.filter(func(c *domain.Cargo) bool { return c.DriverID == driverID }), nil
}

func (m *MockCargoRepository) GetByCustomer(ctx context.Context, customerID string) ([]*domain.Cargo, error) {
	return m.filter(func(c *domain.Cargo) bool { return c.CustomerID == customerID }), nil
}

func (m *MockCargoRepository) GetUnassigned(ctx context.Context) ([]*domain.Cargo, error) {
	return m.filter(func(c *domain.Cargo) bool { return c.DriverID == "" }), nil
}

func (m *MockCargoRepository) GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Cargo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.cargos {
		if c.DriverID == driverID && c.Status != domain.CargoStatusDelivered {
			copy := *c
			return &copy, nil
		}
	}
	return nil, nil // No active cargo
}

func (m *MockCargoRepository) Update(ctx context.Context, cargo *domain.Cargo) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cargos[cargo.ID]; !ok {
		return repository.ErrNotFound
	}
	m.cargos[cargo.ID] = cargo
	return nil
}

func (m *MockCargoRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cargos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.cargos, id)
	return nil
}

func (m *MockCargoRepository) SetDriver(ctx context.Context, id, driverID string) error {
	atomic.AddInt32(&m.SetDriverCallCount, 1)
	if m.SetDriverError != nil {
		return m.SetDriverError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cargo, ok := m.cargos[id]
	if !ok {
		return repository.ErrNotFound
	}
	cargo.DriverID = driverID
	cargo.Status = domain.CargoStatusPending
	return nil
}

func (m *MockCargoRepository) ClaimUnassigned(ctx context.Context, id, driverID string) error {
	atomic.AddInt32(&m.ClaimUnassignedCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	cargo, ok := m.cargos[id]
	if !ok || cargo.DriverID != "" {
		return repository.ErrNotFound
	}
	cargo.DriverID = driverID
	cargo.Status = domain.CargoStatusPending
	return nil
}

func (m *MockCargoRepository) SetStatus(ctx context.Context, id string, status domain.CargoStatus, deliveredAt time.Time) error {
	atomic.AddInt32(&m.SetStatusCallCount, 1)
	if m.SetStatusError != nil {
		return m.SetStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cargo, ok := m.cargos[id]
	if !ok {
		return repository.ErrNotFound
	}
	cargo.Status = status
	if status == domain.CargoStatusDelivered {
		cargo.DeliveryDate = deliveredAt
	}
	return nil
}

func (m *MockCargoRepository) SetLocation(ctx context.Context, id, location string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cargo, ok := m.cargos[id]
	if !ok {
		return repository.ErrNotFound
	}
	cargo.Location = location
	return nil
}

func (m *MockCargoRepository) filter(keep func(*domain.Cargo) bool) []*domain.Cargo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Cargo, 0)
	for _, c := range m.cargos {
		if keep(c) {
			copy := *c
			result = append(result, &copy)
		}
	}
	return result
}

// GetCargo returns the cargo by ID (for test assertions).
func (m *MockCargoRepository) GetCargo(id string) *domain.Cargo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cargos[id]
}

// CountCargos returns the number of cargos.
func (m *MockCargoRepository) CountCargos() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cargos)
}

// CountActiveCargosForDriver counts undelivered cargos held by a driver.
func (m *MockCargoRepository) CountActiveCargosForDriver(driverID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, c := range m.cargos {
		if c.DriverID == driverID && c.Status != domain.CargoStatusDelivered {
			count++
		}
	}
	return count
}

// ──────────────────────────────────────────────
// MOCK REQUEST REPOSITORY
// ──────────────────────────────────────────────

// MockRequestRepository is a mock implementation of RequestRepository.
type MockRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]*domain.CargoRequest

	// Counters for verification
	CreateCallCount    int32
	SetStatusCallCount int32

	// Error injection
	CreateError    error
	SetStatusError error
}

// NewMockRequestRepository creates a new mock request repository.
func NewMockRequestRepository() *MockRequestRepository {
	return &MockRequestRepository{
		requests: make(map[string]*domain.CargoRequest),
	}
}

// AddRequest adds a request to the mock repository.
func (m *MockRequestRepository) AddRequest(req *domain.CargoRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = req
}

func (m *MockRequestRepository) Create(ctx context.Context, req *domain.CargoRequest) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = req
	return nil
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id string) (*domain.CargoRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *req
	return &copy, nil
}

func (m *MockRequestRepository) GetPending(ctx context.Context) ([]*domain.CargoRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.CargoRequest, 0)
	for _, r := range m.requests {
		if r.Status == domain.RequestStatusPending {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockRequestRepository) GetByCustomer(ctx context.Context, customerID string) ([]*domain.CargoRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.CargoRequest, 0)
	for _, r := range m.requests {
		if r.CustomerID == customerID {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockRequestRepository) Update(ctx context.Context, req *domain.CargoRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[req.ID]; !ok {
		return repository.ErrNotFound
	}
	m.requests[req.ID] = req
	return nil
}

func (m *MockRequestRepository) Delete(ctx context.Context, id, customerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok || req.CustomerID != customerID {
		return repository.ErrNotFound
	}
	delete(m.requests, id)
	return nil
}

func (m *MockRequestRepository) SetStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	atomic.AddInt32(&m.SetStatusCallCount, 1)
	if m.SetStatusError != nil {
		return m.SetStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	req.Status = status
	return nil
}

// GetRequest returns the request by ID (for test assertions).
func (m *MockRequestRepository) GetRequest(id string) *domain.CargoRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requests[id]
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0)
	for _, u := range m.users {
		if u.Role == role {
			copy := *u
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStore.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "lock:driver:" + driverID
	if expiry, exists := m.locks[key]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleaseDriverLock(ctx context.Context, driverID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, "lock:driver:"+driverID)
	return nil
}

// IsLocked checks if a driver is locked (for test assertions).
func (m *MockLockStore) IsLocked(driverID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, exists := m.locks["lock:driver:"+driverID]
	return exists && time.Now().Before(expiry)
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is a mock implementation of CacheStore.
type MockCacheStore struct {
	mu      sync.RWMutex
	entries map[string]*redis.CachedCargo

	// Counters
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32

	// Error injection
	GetError error
	SetError error
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		entries: make(map[string]*redis.CachedCargo),
	}
}

func (m *MockCacheStore) GetCargo(ctx context.Context, cargoID string) (*redis.CachedCargo, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[cargoID]
	if !ok {
		return nil, nil // Cache miss.
	}
	copy := *entry
	return &copy, nil
}

func (m *MockCacheStore) SetCargo(ctx context.Context, cargo *redis.CachedCargo) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[cargo.ID] = cargo
	return nil
}

func (m *MockCacheStore) InvalidateCargo(ctx context.Context, cargoID string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, cargoID)
	return nil
}

// HasEntry checks if a snapshot is cached (for test assertions).
func (m *MockCacheStore) HasEntry(cargoID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[cargoID]
	return ok
}
