package store

import (
	"context"
	"fmt"

	"aqso/models"

	"gorm.io/gorm"
)

// Transactions is the persistence contract of the transaction record service.
type Transactions interface {
	// FindAll returns every transaction, newest tanggal first, ties by id desc.
	FindAll(ctx context.Context) ([]models.Transaction, error)
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	// ReceiptNumbers returns the no_kwitansi of every stored transaction.
	ReceiptNumbers(ctx context.Context) ([]string, error)
	Insert(ctx context.Context, tx *models.Transaction) error
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	// Numbering runs fn while holding exclusive rights to assign receipt
	// numbers. Everything fn does through the given store commits or rolls
	// back together.
	Numbering(ctx context.Context, fn func(Transactions) error) error
}

type gormTransactions struct {
	db *gorm.DB
}

// NewTransactions returns the gorm backed Transactions store.
func NewTransactions(db *gorm.DB) Transactions {
	return &gormTransactions{db: db}
}

func (s *gormTransactions) FindAll(ctx context.Context) ([]models.Transaction, error) {
	var items []models.Transaction
	if err := s.db.WithContext(ctx).Order("tanggal desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return items, nil
}

func (s *gormTransactions) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.WithContext(ctx).First(&tx, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &tx, nil
}

func (s *gormTransactions) ReceiptNumbers(ctx context.Context) ([]string, error) {
	var nums []string
	if err := s.db.WithContext(ctx).Model(&models.Transaction{}).Pluck("no_kwitansi", &nums).Error; err != nil {
		return nil, fmt.Errorf("read receipt numbers: %w", err)
	}
	return nums, nil
}

func (s *gormTransactions) Insert(ctx context.Context, tx *models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (s *gormTransactions) Update(ctx context.Context, tx *models.Transaction) error {
	// Updates, unlike Save, never falls back to an insert
	res := s.db.WithContext(ctx).Model(tx).Select("*").Omit("id", "created_at").Updates(tx)
	if res.Error != nil {
		return fmt.Errorf("update transaction %d: %w", tx.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormTransactions) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Transaction{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete transaction %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormTransactions) Numbering(ctx context.Context, fn func(Transactions) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SHARE ROW EXCLUSIVE conflicts with itself, so concurrent numbering
		// waits here while plain reads keep going.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("LOCK TABLE transactions IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
				return fmt.Errorf("lock transactions: %w", err)
			}
		}
		return fn(&gormTransactions{db: tx})
	})
}
