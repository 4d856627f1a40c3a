package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"storefront/internal/models"
	"storefront/internal/shop"
	"storefront/internal/storage"

	"go.uber.org/zap"
)

// Result reports the outcome of a session operation the way a form shows it.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func failed(msg string) Result { return Result{Error: msg} }

// Session errors.
var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrEmptyCart   = errors.New("cart is empty")
)

// Session holds the signed-in user and token, mirrored to storage under
// storage.KeyToken and storage.KeyUser. It is logged in iff a token is held.
type Session struct {
	api    *Client
	store  storage.Storage
	logger *zap.Logger

	mu    sync.RWMutex
	token string
	user  *models.Profile

	// rand draws checkout order numbers.
	rand *rand.Rand
	now  func() time.Time
}

// NewSession restores any persisted token and profile from st.
func NewSession(api *Client, st storage.Storage, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		api:    api,
		store:  st,
		logger: logger,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}

	token, ok, err := st.Get(storage.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", storage.KeyToken, err)
	}
	if ok {
		if err := json.Unmarshal(token, &s.token); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", storage.KeyToken, err)
		}
	}

	raw, ok, err := st.Get(storage.KeyUser)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", storage.KeyUser, err)
	}
	if ok {
		var user models.Profile
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", storage.KeyUser, err)
		}
		s.user = &user
	}
	return s, nil
}

// LoggedIn reports whether a token is held.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// User returns a copy of the cached profile, or nil.
func (s *Session) User() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the bearer token, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Login signs in. On failure the session is left as it was.
func (s *Session) Login(ctx context.Context, email, password string) Result {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Debug("login failed", zap.Error(err))
		return failed(errorMessage(err, "Login failed"))
	}
	return s.adopt(resp)
}

// Register creates an account and signs in with it.
func (s *Session) Register(ctx context.Context, email, password, name string) Result {
	resp, err := s.api.Register(ctx, email, password, name)
	if err != nil {
		s.logger.Debug("registration failed", zap.Error(err))
		return failed(errorMessage(err, "Registration failed"))
	}
	return s.adopt(resp)
}

// adopt persists the profile first and the token last, so storage never
// holds a token without its profile. If the token write fails the previous
// profile is put back.
func (s *Session) adopt(resp *AuthResponse) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev, err := s.store.Get(storage.KeyUser)
	if err != nil {
		return failed(err.Error())
	}
	if err := s.saveUser(&resp.User); err != nil {
		return failed(err.Error())
	}
	if err := s.saveToken(resp.Token); err != nil {
		if rerr := s.restoreUser(prev, hadPrev); rerr != nil {
			s.logger.Warn("failed to roll back profile", zap.Error(rerr))
		}
		return failed(err.Error())
	}
	s.token = resp.Token
	s.user = &resp.User
	s.logger.Info("signed in", zap.String("email", resp.User.Email))
	return Result{Success: true}
}

func (s *Session) saveToken(token string) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return s.store.Set(storage.KeyToken, raw)
}

func (s *Session) restoreUser(prev []byte, ok bool) error {
	if !ok {
		return s.store.Remove(storage.KeyUser)
	}
	return s.store.Set(storage.KeyUser, prev)
}

// saveUser persists user. Callers hold mu.
func (s *Session) saveUser(user *models.Profile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return s.store.Set(storage.KeyUser, raw)
}

// UpdateProfile sends the non-nil fields of update and caches the returned profile.
func (s *Session) UpdateProfile(ctx context.Context, update models.ProfileUpdate) Result {
	token := s.Token()
	if token == "" {
		return failed("Access denied")
	}

	user, err := s.api.UpdateProfile(ctx, token, update)
	if err != nil {
		s.logger.Debug("profile update failed", zap.Error(err))
		return failed(errorMessage(err, "Update failed"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveUser(user); err != nil {
		return failed(err.Error())
	}
	s.user = user
	return Result{Success: true}
}

// Logout forgets the token and profile in memory and in storage. No request is made.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil
	return errors.Join(
		s.store.Remove(storage.KeyToken),
		s.store.Remove(storage.KeyUser),
	)
}

// UploadAvatar uploads an image and returns its URL. The profile is not changed;
// pass the URL to UpdateProfile to use it.
func (s *Session) UploadAvatar(ctx context.Context, filename string, r io.Reader) (string, error) {
	token := s.Token()
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return s.api.UploadAvatar(ctx, token, filename, r)
}

// Orders lists the signed-in user's orders, newest first.
func (s *Session) Orders(ctx context.Context) ([]models.Order, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	return s.api.Orders(ctx, token)
}

// Checkout places an order for every cart line under a number of the form
// #VM-<year>-<n>. The cart itself is not modified.
func (s *Session) Checkout(ctx context.Context, cart []models.CartItem) (*models.Order, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	req := models.OrderRequest{
		OrderNo: s.orderNo(),
		Total:   shop.Total(cart),
		Items:   make([]models.OrderItemRequest, 0, len(cart)),
	}
	for _, line := range cart {
		req.Items = append(req.Items, models.OrderItemRequest{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	order, err := s.api.CreateOrder(ctx, token, req)
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}
	s.logger.Info("order placed", zap.String("order_no", order.OrderNo), zap.Float64("total", order.Total))
	return order, nil
}

func (s *Session) orderNo() string {
	s.mu.Lock()
	n := s.rand.Intn(10000)
	s.mu.Unlock()
	return fmt.Sprintf("#VM-%d-%d", s.now().Year(), n)
}
