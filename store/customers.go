package store

import (
	"context"
	"fmt"

	"aqso/models"

	"gorm.io/gorm"
)

// Customers persists customer records.
type Customers interface {
	FindAll(ctx context.Context) ([]models.Customer, error)
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	Insert(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id uint) error
}

type gormCustomers struct {
	db *gorm.DB
}

func NewCustomers(db *gorm.DB) Customers {
	return &gormCustomers{db: db}
}

func (s *gormCustomers) FindAll(ctx context.Context) ([]models.Customer, error) {
	var items []models.Customer
	if err := s.db.WithContext(ctx).Order("tanggal desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return items, nil
}

func (s *gormCustomers) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *gormCustomers) Insert(ctx context.Context, c *models.Customer) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (s *gormCustomers) Update(ctx context.Context, c *models.Customer) error {
	res := s.db.WithContext(ctx).Model(c).Select("*").Omit("id", "created_at").Updates(c)
	if res.Error != nil {
		return fmt.Errorf("update customer %d: %w", c.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormCustomers) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Customer{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete customer %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
