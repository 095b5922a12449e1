package store

import (
	"errors"
	"sync"
	"time"
)

// ErrNoSession is returned for a user whose session is not live.
var ErrNoSession = errors.New("no active session")

// Sessions is the part of the session manager the cart registry follows.
type Sessions interface {
	Active(uid string) bool
	OnClose(fn func(uid string))
}

// Carts keeps one cart per signed-in user for the lifetime of the session.
type Carts struct {
	catalog     *Catalog
	bannerDelay time.Duration

	mu     sync.Mutex
	carts  map[string]*Cart
	active func(uid string) bool
}

func NewCarts(c *Catalog, bannerDelay time.Duration) *Carts {
	return &Carts{catalog: c, bannerDelay: bannerDelay, carts: map[string]*Cart{}}
}

// Follow ties the registry to s: carts are only created for active sessions
// and are dropped when a session closes.
func (cs *Carts) Follow(s Sessions) {
	cs.mu.Lock()
	cs.active = s.Active
	cs.mu.Unlock()
	s.OnClose(cs.Drop)
}

func (cs *Carts) Catalog() *Catalog { return cs.catalog }

// For returns uid's cart, creating it on first use. The session check and
// the insert share the lock Drop takes.
func (cs *Carts) For(uid string) (*Cart, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if c, ok := cs.carts[uid]; ok {
		return c, nil
	}
	if cs.active != nil && !cs.active(uid) {
		return nil, ErrNoSession
	}
	c := NewCart(cs.catalog, cs.bannerDelay)
	cs.carts[uid] = c
	return c, nil
}

// Drop discards uid's cart.
func (cs *Carts) Drop(uid string) {
	cs.mu.Lock()
	c, ok := cs.carts[uid]
	delete(cs.carts, uid)
	cs.mu.Unlock()
	if ok {
		c.Stop()
	}
}

func (cs *Carts) Len() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.carts)
}

func (cs *Carts) StopAll() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for uid, c := range cs.carts {
		c.Stop()
		delete(cs.carts, uid)
	}
}
