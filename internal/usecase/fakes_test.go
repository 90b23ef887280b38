package usecase

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/metrics"
)

// Prometheus collectors register globally, so the package shares one set
// across all tests.
var testMetrics = metrics.NewTrackingMetrics()

type fakeDeviceRepo struct {
	mu      sync.Mutex
	devices map[string]*domain.Device

	// failUpdates makes UpdateConnectionStatus fail for the listed devices.
	failUpdates map[string]bool
	// failCreates makes CreateDevice fail.
	failCreates bool
	updates     []string
}

func newFakeDeviceRepo(devices ...*domain.Device) *fakeDeviceRepo {
	repo := &fakeDeviceRepo{
		devices:     make(map[string]*domain.Device),
		failUpdates: make(map[string]bool),
	}
	for _, device := range devices {
		repo.devices[device.DeviceID] = device
	}
	return repo
}

func (r *fakeDeviceRepo) CreateDevice(device *domain.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreates {
		return fmt.Errorf("device store unavailable")
	}
	r.devices[device.DeviceID] = device
	return nil
}

func (r *fakeDeviceRepo) GetDeviceByID(deviceID string) (*domain.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	device, ok := r.devices[deviceID]
	if !ok {
		return nil, domain.ErrDeviceNotFound
	}
	return device, nil
}

func (r *fakeDeviceRepo) DeleteDevice(deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.devices, deviceID)
	return nil
}

func (r *fakeDeviceRepo) GetUserDevices(userID string) ([]*domain.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var devices []*domain.Device
	for _, device := range r.devices {
		if device.UserID == userID {
			devices = append(devices, device)
		}
	}
	return devices, nil
}

func (r *fakeDeviceRepo) GetConnectionStates() ([]*domain.DeviceConnectionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.devices))
	for id := range r.devices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	states := make([]*domain.DeviceConnectionState, 0, len(ids))
	for _, id := range ids {
		device := r.devices[id]
		states = append(states, &domain.DeviceConnectionState{
			DeviceID:     device.DeviceID,
			Connected:    device.Connected,
			LastReceived: device.LastReceived,
		})
	}
	return states, nil
}

func (r *fakeDeviceRepo) UpdateConnectionStatus(deviceID string, connected bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdates[deviceID] {
		return fmt.Errorf("write failed for %s", deviceID)
	}
	device, ok := r.devices[deviceID]
	if !ok {
		return domain.ErrDeviceNotFound
	}
	device.Connected = connected
	r.updates = append(r.updates, deviceID)
	return nil
}

func (r *fakeDeviceRepo) updateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.updates)
}

type fakeGpsRepo struct {
	mu      sync.Mutex
	nextID  int64
	records map[string][]*domain.GpsRecord
	devices *fakeDeviceRepo
}

func newFakeGpsRepo(devices *fakeDeviceRepo) *fakeGpsRepo {
	return &fakeGpsRepo{
		records: make(map[string][]*domain.GpsRecord),
		devices: devices,
	}
}

func (r *fakeGpsRepo) AppendRecord(record *domain.GpsRecord, deviceStatus string, receivedAt time.Time) error {
	device, err := r.devices.GetDeviceByID(record.DeviceID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	record.ID = r.nextID
	r.records[record.DeviceID] = append(r.records[record.DeviceID], record)

	device.Status = deviceStatus
	device.Connected = true
	device.LastReceived = &receivedAt
	return nil
}

func (r *fakeGpsRepo) GetLastRecord(deviceID string) (*domain.GpsRecord, error) {
	records, err := r.GetLastNRecords(deviceID, 1)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return records[0], nil
}

func (r *fakeGpsRepo) GetLastNRecords(deviceID string, n int) ([]*domain.GpsRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.records[deviceID]

	out := make([]*domain.GpsRecord, 0, n)
	for i := len(stored) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}

type fakeUserRepo struct {
	users []*domain.User
}

func (r *fakeUserRepo) GetUserByID(userID string) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type grantKey struct {
	deviceID  string
	granteeID string
}

type fakeAccessRepo struct {
	mu      sync.Mutex
	grants  map[grantKey]*domain.DeviceAccess
	devices *fakeDeviceRepo
}

func newFakeAccessRepo(devices *fakeDeviceRepo) *fakeAccessRepo {
	return &fakeAccessRepo{
		grants:  make(map[grantKey]*domain.DeviceAccess),
		devices: devices,
	}
}

func (r *fakeAccessRepo) GrantAccess(access *domain.DeviceAccess) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := grantKey{deviceID: access.DeviceID, granteeID: access.GranteeID}
	if _, exists := r.grants[key]; exists {
		return domain.ErrAccessExists
	}
	r.grants[key] = access
	return nil
}

func (r *fakeAccessRepo) RevokeAccess(deviceID, granteeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := grantKey{deviceID: deviceID, granteeID: granteeID}
	if _, exists := r.grants[key]; !exists {
		return domain.ErrAccessNotGranted
	}
	delete(r.grants, key)
	return nil
}

func (r *fakeAccessRepo) HasAccess(deviceID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.grants[grantKey{deviceID: deviceID, granteeID: userID}]
	return ok, nil
}

func (r *fakeAccessRepo) GetVisibleDevices(userID string) ([]*domain.Device, error) {
	own, err := r.devices.GetUserDevices(userID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool, len(own))
	for _, device := range own {
		seen[device.DeviceID] = true
	}
	for key := range r.grants {
		if key.granteeID != userID || seen[key.deviceID] {
			continue
		}
		device, err := r.devices.GetDeviceByID(key.deviceID)
		if err != nil {
			continue
		}
		own = append(own, device)
		seen[key.deviceID] = true
	}
	return own, nil
}

func (r *fakeAccessRepo) GetGrantsByOwner(ownerID string) ([]*domain.DeviceAccess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var grants []*domain.DeviceAccess
	for _, grant := range r.grants {
		device, err := r.devices.GetDeviceByID(grant.DeviceID)
		if err != nil || device.UserID != ownerID {
			continue
		}
		grants = append(grants, grant)
	}
	return grants, nil
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []domain.StreamEvent
}

func (b *fakeBroadcaster) Publish(deviceID string, event domain.StreamEvent) (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return 1, 0
}

func (b *fakeBroadcaster) published() []domain.StreamEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.StreamEvent(nil), b.events...)
}

type fakeWalletRepo struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
	entries  []*domain.WalletTransaction

	// failCredits makes Credit fail without touching any balance.
	failCredits bool
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{balances: make(map[string]decimal.Decimal)}
}

func (r *fakeWalletRepo) setBalance(userID string, balance decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[userID] = balance
}

func (r *fakeWalletRepo) balance(userID string) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[userID]
}

func (r *fakeWalletRepo) GetWallet(userID string) (*domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance, ok := r.balances[userID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return &domain.Wallet{UserID: userID, Balance: balance}, nil
}

func (r *fakeWalletRepo) Credit(userID string, amount decimal.Decimal, entry *domain.WalletTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCredits {
		return fmt.Errorf("wallet store unavailable")
	}
	balance, ok := r.balances[userID]
	if !ok {
		return domain.ErrWalletNotFound
	}
	r.balances[userID] = balance.Add(amount)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeWalletRepo) Debit(userID string, amount decimal.Decimal, entry *domain.WalletTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance, ok := r.balances[userID]
	if !ok {
		return domain.ErrWalletNotFound
	}
	if balance.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}
	r.balances[userID] = balance.Sub(amount)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeWalletRepo) Transfer(fromUserID, toUserID string, amount decimal.Decimal, sendEntry, receiveEntry *domain.WalletTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	from, ok := r.balances[fromUserID]
	if !ok {
		return domain.ErrWalletNotFound
	}
	to, ok := r.balances[toUserID]
	if !ok {
		return domain.ErrRecipientNotFound
	}
	if from.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}
	r.balances[fromUserID] = from.Sub(amount)
	r.balances[toUserID] = to.Add(amount)
	r.entries = append(r.entries, sendEntry, receiveEntry)
	return nil
}

func (r *fakeWalletRepo) GetTransactions(userID string, filters domain.TransactionFilters) ([]*domain.WalletTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.WalletTransaction
	for _, entry := range r.entries {
		if entry.WalletUserID != userID {
			continue
		}
		if filters.Direction != "" && string(entry.Direction) != filters.Direction {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*domain.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*domain.Request)}
}

func (r *fakeRequestRepo) CreateRequest(request *domain.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[request.ID] = request
	return nil
}

func (r *fakeRequestRepo) GetRequestByID(requestID string) (*domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return request, nil
}

func (r *fakeRequestRepo) GetUserRequests(userID string) ([]*domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Request
	for _, request := range r.requests {
		if request.UserID == userID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) GetPendingRequests() ([]*domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Request
	for _, request := range r.requests {
		if request.Status == domain.RequestStatusPending {
			out = append(out, request)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ResolvePending(requestID string, status domain.RequestStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return domain.ErrRequestNotFound
	}
	if request.Status != domain.RequestStatusPending {
		return domain.ErrConflict
	}
	request.Status = status
	return nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[string]*domain.Service

	// failCreates makes CreateService fail.
	failCreates bool
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[string]*domain.Service)}
}

func (r *fakeServiceRepo) CreateService(service *domain.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreates {
		return fmt.Errorf("service store unavailable")
	}
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) GetServiceByID(serviceID string) (*domain.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	service, ok := r.services[serviceID]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return service, nil
}

func (r *fakeServiceRepo) GetUserServices(userID string) ([]*domain.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Service
	for _, service := range r.services {
		if service.UserID == userID {
			out = append(out, service)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) UpdateServiceStatus(serviceID string, status domain.ServiceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	service, ok := r.services[serviceID]
	if !ok {
		return domain.ErrServiceNotFound
	}
	service.Status = status
	return nil
}

func (r *fakeServiceRepo) UpdateServiceExpiration(serviceID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	service, ok := r.services[serviceID]
	if !ok {
		return domain.ErrServiceNotFound
	}
	service.ExpirationDate = expiresAt
	return nil
}

type fakeSubPlanRepo struct {
	plans map[string]*domain.SubPlan
}

func (r *fakeSubPlanRepo) GetSubPlanByName(name string) (*domain.SubPlan, error) {
	plan, ok := r.plans[name]
	if !ok {
		return nil, domain.ErrSubPlanNotFound
	}
	return plan, nil
}

func (r *fakeSubPlanRepo) GetAllSubPlans() ([]*domain.SubPlan, error) {
	out := make([]*domain.SubPlan, 0, len(r.plans))
	for _, plan := range r.plans {
		out = append(out, plan)
	}
	return out, nil
}

// fakeTx collects restore hooks from the repos scoped to it. Rollback runs
// them newest first, Commit discards them.
type fakeTx struct {
	mu        sync.Mutex
	restores  []func()
	committed bool
}

func (tx *fakeTx) Commit() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.committed = true
	tx.restores = nil
	return nil
}

func (tx *fakeTx) Rollback() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	for i := len(tx.restores) - 1; i >= 0; i-- {
		tx.restores[i]()
	}
	tx.restores = nil
	return nil
}

func (tx *fakeTx) onRollback(restore func()) {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.restores = append(tx.restores, restore)
}

type fakeTxManager struct{}

func (m *fakeTxManager) Begin() (domain.Tx, error) {
	return &fakeTx{}, nil
}

func (r *fakeWalletRepo) WithTx(tx domain.Tx) domain.WalletRepository {
	r.mu.Lock()
	balances := make(map[string]decimal.Decimal, len(r.balances))
	for userID, balance := range r.balances {
		balances[userID] = balance
	}
	entries := append([]*domain.WalletTransaction(nil), r.entries...)
	r.mu.Unlock()

	tx.(*fakeTx).onRollback(func() {
		r.mu.Lock()
		r.balances = balances
		r.entries = entries
		r.mu.Unlock()
	})
	return r
}

func (r *fakeRequestRepo) WithTx(tx domain.Tx) domain.RequestRepository {
	r.mu.Lock()
	saved := make(map[string]domain.Request, len(r.requests))
	for id, request := range r.requests {
		saved[id] = *request
	}
	r.mu.Unlock()

	tx.(*fakeTx).onRollback(func() {
		r.mu.Lock()
		restored := make(map[string]*domain.Request, len(saved))
		for id, request := range saved {
			request := request
			restored[id] = &request
		}
		r.requests = restored
		r.mu.Unlock()
	})
	return r
}

func (r *fakeServiceRepo) WithTx(tx domain.Tx) domain.ServiceRepository {
	r.mu.Lock()
	saved := make(map[string]domain.Service, len(r.services))
	for id, service := range r.services {
		saved[id] = *service
	}
	r.mu.Unlock()

	tx.(*fakeTx).onRollback(func() {
		r.mu.Lock()
		restored := make(map[string]*domain.Service, len(saved))
		for id, service := range saved {
			service := service
			restored[id] = &service
		}
		r.services = restored
		r.mu.Unlock()
	})
	return r
}

func (r *fakeDeviceRepo) WithTx(tx domain.Tx) domain.DeviceRepository {
	r.mu.Lock()
	saved := make(map[string]*domain.Device, len(r.devices))
	for id, device := range r.devices {
		saved[id] = device
	}
	r.mu.Unlock()

	tx.(*fakeTx).onRollback(func() {
		r.mu.Lock()
		r.devices = saved
		r.mu.Unlock()
	})
	return r
}
