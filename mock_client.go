package sdk

import (
	"context"
	"sync"
)

// MockStorefront provides in-memory service implementations for unit tests
// that exercise the view and flow layers without hitting a backend.
type MockStorefront struct {
	Cart   *MockCartService
	Orders *MockOrderService
	Auth   *MockAuthService
}

// MockError is returned when a mock is used without a queued result.
type MockError struct {
	Reason string
}

func (e MockError) Error() string { return "mock storefront: " + e.Reason }

// NewMockStorefront creates an empty mock.
func NewMockStorefront() *MockStorefront {
	return &MockStorefront{
		Cart:   &MockCartService{},
		Orders: &MockOrderService{},
		Auth:   &MockAuthService{},
	}
}

// WithCart enqueues a cart snapshot for the next Get call.
func (m *MockStorefront) WithCart(cart Cart) *MockStorefront {
	m.Cart.enqueueGet(cart, nil)
	return m
}

// WithCartError enqueues an error for the next Get call.
func (m *MockStorefront) WithCartError(err error) *MockStorefront {
	m.Cart.enqueueGet(Cart{}, err)
	return m
}

// WithRemoveResult enqueues the outcome of the next RemoveItem call.
func (m *MockStorefront) WithRemoveResult(err error) *MockStorefront {
	m.Cart.enqueueRemove(err)
	return m
}

// WithPlaceResult enqueues the outcome of the next Place call.
func (m *MockStorefront) WithPlaceResult(err error) *MockStorefront {
	m.Orders.enqueue(err)
	return m
}

// WithLoginResult enqueues the outcome of the next Login call.
func (m *MockStorefront) WithLoginResult(resp LoginResponse, err error) *MockStorefront {
	m.Auth.enqueueLogin(resp, err)
	return m
}

// WithRegisterResult enqueues the outcome of the next Register call.
func (m *MockStorefront) WithRegisterResult(resp RegisterResponse, err error) *MockStorefront {
	m.Auth.enqueueRegister(resp, err)
	return m
}

type mockCartResult struct {
	cart Cart
	err  error
}

// MockCartService implements CartService using preconfigured responses.
type MockCartService struct {
	mu          sync.Mutex
	getQueue    []mockCartResult
	removeQueue []error

	// GetCalls counts fetches; RemoveCalls records the indexes passed.
	GetCalls    int
	RemoveCalls []int
}

func (m *MockCartService) enqueueGet(cart Cart, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getQueue = append(m.getQueue, mockCartResult{cart: cart, err: err})
}

func (m *MockCartService) enqueueRemove(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeQueue = append(m.removeQueue, err)
}

// Get implements CartService.
func (m *MockCartService) Get(ctx context.Context) (Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if len(m.getQueue) == 0 {
		return Cart{}, MockError{Reason: "no cart result queued"}
	}
	next := m.getQueue[0]
	m.getQueue = m.getQueue[1:]
	return next.cart, next.err
}

// RemoveItem implements CartService.
func (m *MockCartService) RemoveItem(ctx context.Context, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls = append(m.RemoveCalls, index)
	if len(m.removeQueue) == 0 {
		return MockError{Reason: "no remove result queued"}
	}
	next := m.removeQueue[0]
	m.removeQueue = m.removeQueue[1:]
	return next
}

// MockOrderService implements OrderService using preconfigured responses.
type MockOrderService struct {
	mu    sync.Mutex
	queue []error

	PlaceCalls int
}

func (m *MockOrderService) enqueue(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, err)
}

// Place implements OrderService.
func (m *MockOrderService) Place(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlaceCalls++
	if len(m.queue) == 0 {
		return MockError{Reason: "no place result queued"}
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	return next
}

type mockLoginResult struct {
	resp LoginResponse
	err  error
}

type mockRegisterResult struct {
	resp RegisterResponse
	err  error
}

// MockAuthService implements AuthService using preconfigured responses.
type MockAuthService struct {
	mu            sync.Mutex
	loginQueue    []mockLoginResult
	registerQueue []mockRegisterResult

	// LoginCalls and RegisterCalls record the credentials passed.
	LoginCalls    []Credentials
	RegisterCalls []Credentials
}

func (m *MockAuthService) enqueueLogin(resp LoginResponse, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginQueue = append(m.loginQueue, mockLoginResult{resp: resp, err: err})
}

func (m *MockAuthService) enqueueRegister(resp RegisterResponse, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registerQueue = append(m.registerQueue, mockRegisterResult{resp: resp, err: err})
}

// Login implements AuthService.
func (m *MockAuthService) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCalls = append(m.LoginCalls, creds)
	if len(m.loginQueue) == 0 {
		return LoginResponse{}, MockError{Reason: "no login result queued"}
	}
	next := m.loginQueue[0]
	m.loginQueue = m.loginQueue[1:]
	return next.resp, next.err
}

// Register implements AuthService.
func (m *MockAuthService) Register(ctx context.Context, creds Credentials) (RegisterResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCalls = append(m.RegisterCalls, creds)
	if len(m.registerQueue) == 0 {
		return RegisterResponse{}, MockError{Reason: "no register result queued"}
	}
	next := m.registerQueue[0]
	m.registerQueue = m.registerQueue[1:]
	return next.resp, next.err
}
