// Package storetest provides in-memory stores for tests of code built on
// the store interfaces.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"aqso/models"
	"aqso/store"
)

// Transactions is an in-memory store.Transactions. It enforces the
// no_kwitansi unique index like the database does.
type Transactions struct {
	mu        sync.Mutex
	numbering sync.Mutex
	nextID    uint
	rows      map[uint]models.Transaction

	// FailInsert, when set, is returned by Insert instead of storing.
	FailInsert error
}

var _ store.Transactions = (*Transactions)(nil)

func NewTransactions(seed ...models.Transaction) *Transactions {
	s := &Transactions{rows: map[uint]models.Transaction{}}
	for i := range seed {
		t := seed[i]
		if err := s.Insert(context.Background(), &t); err != nil {
			panic(err)
		}
	}
	return s
}

// Len returns the number of stored rows.
func (s *Transactions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *Transactions) FindAll(_ context.Context) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, 0, len(s.rows))
	for _, t := range s.rows {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Tanggal.Equal(out[j].Tanggal.Time) {
			return out[i].Tanggal.After(out[j].Tanggal.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Transactions) FindByID(_ context.Context, id uint) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &t, nil
}

func (s *Transactions) ReceiptNumbers(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.rows))
	for _, t := range s.rows {
		out = append(out, t.NoKwitansi)
	}
	return out, nil
}

func (s *Transactions) Insert(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailInsert != nil {
		return s.FailInsert
	}
	if err := s.checkUnique(tx); err != nil {
		return err
	}
	s.nextID++
	tx.ID = s.nextID
	now := time.Now()
	tx.CreatedAt, tx.UpdatedAt = now, now
	s.rows[tx.ID] = *tx
	return nil
}

func (s *Transactions) Update(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[tx.ID]; !ok {
		return store.ErrNotFound
	}
	if err := s.checkUnique(tx); err != nil {
		return err
	}
	tx.UpdatedAt = time.Now()
	s.rows[tx.ID] = *tx
	return nil
}

func (s *Transactions) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// Numbering serializes callers. Unlike the database store it does not roll
// back writes when fn fails.
func (s *Transactions) Numbering(_ context.Context, fn func(store.Transactions) error) error {
	s.numbering.Lock()
	defer s.numbering.Unlock()
	return fn(s)
}

func (s *Transactions) checkUnique(tx *models.Transaction) error {
	for id, t := range s.rows {
		if id != tx.ID && t.NoKwitansi == tx.NoKwitansi {
			return fmt.Errorf("duplicate key value violates unique constraint \"idx_transactions_no_kwitansi\" (no_kwitansi=%s)", tx.NoKwitansi)
		}
	}
	return nil
}

// Customers is an in-memory store.Customers.
type Customers struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]models.Customer
}

var _ store.Customers = (*Customers)(nil)

func NewCustomers() *Customers {
	return &Customers{rows: map[uint]models.Customer{}}
}

func (s *Customers) FindAll(_ context.Context) ([]models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Customer, 0, len(s.rows))
	for _, c := range s.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Tanggal.Equal(out[j].Tanggal.Time) {
			return out[i].Tanggal.After(out[j].Tanggal.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Customers) FindByID(_ context.Context, id uint) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (s *Customers) Insert(_ context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	s.rows[c.ID] = *c
	return nil
}

func (s *Customers) Update(_ context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[c.ID]; !ok {
		return store.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	s.rows[c.ID] = *c
	return nil
}

func (s *Customers) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}
