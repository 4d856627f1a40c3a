// Package shop holds the shopping cart and wishlist and keeps them in sync
// with local storage.
package shop

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"storefront/internal/models"
	"storefront/internal/storage"

	"github.com/shopspring/decimal"
)

// Store is the single source of truth for the cart and the wishlist. Every
// mutation writes the changed collection through to storage; if the write
// fails the in-memory state is left unchanged.
type Store struct {
	storage  storage.Storage
	mu       sync.RWMutex
	cart     []models.CartItem
	wishlist []string
}

// NewStore returns a Store hydrated from st. Missing keys start empty; a
// malformed payload is an error.
func NewStore(st storage.Storage) (*Store, error) {
	s := &Store{
		storage:  st,
		cart:     []models.CartItem{},
		wishlist: []string{},
	}
	if err := s.hydrate(storage.KeyCart, &s.cart); err != nil {
		return nil, err
	}
	if err := s.hydrate(storage.KeyWishlist, &s.wishlist); err != nil {
		return nil, err
	}
	if s.cart == nil {
		s.cart = []models.CartItem{}
	}
	if s.wishlist == nil {
		s.wishlist = []string{}
	}
	return s, nil
}

func (s *Store) hydrate(key string, dst interface{}) error {
	data, ok, err := s.storage.Get(key)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("malformed %s payload: %w", key, err)
	}
	return nil
}

// setCart writes cart to storage and adopts it only if the write succeeds.
// Callers hold mu.
func (s *Store) setCart(cart []models.CartItem) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.storage.Set(storage.KeyCart, raw); err != nil {
		return err
	}
	s.cart = cart
	return nil
}

// setWishlist is setCart for the wishlist.
func (s *Store) setWishlist(wishlist []string) error {
	raw, err := json.Marshal(wishlist)
	if err != nil {
		return fmt.Errorf("failed to encode wishlist: %w", err)
	}
	if err := s.storage.Set(storage.KeyWishlist, raw); err != nil {
		return err
	}
	s.wishlist = wishlist
	return nil
}

// AddToCart adds one unit of product in the given size. An existing line with
// the same product and size is incremented and takes the new color.
func (s *Store) AddToCart(product models.Product, size, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := append([]models.CartItem(nil), s.cart...)
	for i := range cart {
		if cart[i].ID == product.ID && cart[i].SelectedSize == size {
			cart[i].Quantity = addQuantity(cart[i].Quantity, 1)
			cart[i].SelectedColor = color
			return s.setCart(cart)
		}
	}
	cart = append(cart, models.CartItem{
		Product:       product,
		SelectedSize:  size,
		SelectedColor: color,
		Quantity:      1,
	})
	return s.setCart(cart)
}

// RemoveFromCart deletes every line of the product, whatever its size.
func (s *Store) RemoveFromCart(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setCart(s.filter(func(item models.CartItem) bool { return item.ID != productID }))
}

// RemoveLine deletes only the line for the product in the given size.
func (s *Store) RemoveLine(productID, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setCart(s.filter(func(item models.CartItem) bool {
		return item.ID != productID || item.SelectedSize != size
	}))
}

func (s *Store) filter(keep func(models.CartItem) bool) []models.CartItem {
	kept := make([]models.CartItem, 0, len(s.cart))
	for _, item := range s.cart {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

// UpdateQuantity adds delta to every line of the product. Quantities never
// drop below 1; lines are never removed here.
func (s *Store) UpdateQuantity(productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := append([]models.CartItem(nil), s.cart...)
	for i := range cart {
		if cart[i].ID == productID {
			cart[i].Quantity = max(1, addQuantity(cart[i].Quantity, delta))
		}
	}
	return s.setCart(cart)
}

// addQuantity adds q and delta, saturating at the int bounds.
func addQuantity(q, delta int) int {
	switch {
	case delta > 0 && q > math.MaxInt-delta:
		return math.MaxInt
	case delta < 0 && q < math.MinInt-delta:
		return math.MinInt
	}
	return q + delta
}

// Clear empties the cart. The wishlist is kept.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setCart([]models.CartItem{})
}

// ToggleWishlist adds the product to the wishlist or removes it if present.
func (s *Store) ToggleWishlist(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.wishlist {
		if id == productID {
			return s.setWishlist(append(s.wishlist[:i:i], s.wishlist[i+1:]...))
		}
	}
	return s.setWishlist(append(s.wishlist[:len(s.wishlist):len(s.wishlist)], productID))
}

// InWishlist reports whether the product is in the wishlist.
func (s *Store) InWishlist(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// Cart returns a copy of the cart lines in insertion order.
func (s *Store) Cart() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.CartItem(nil), s.cart...)
}

// Wishlist returns a copy of the wishlisted product ids.
func (s *Store) Wishlist() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.wishlist...)
}

// TotalItems is the sum of quantities over all lines.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, item := range s.cart {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price × quantity over all lines.
func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Total(s.cart)
}

// Total sums price × quantity over items using decimal arithmetic.
func Total(items []models.CartItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum.InexactFloat64()
}
