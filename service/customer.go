package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"aqso/models"
	"aqso/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateCustomerInput struct {
	Tanggal    string           `json:"tanggal"`
	Nama       string           `json:"nama" validate:"required"`
	Alamat     string           `json:"alamat"`
	NoTelpon   string           `json:"no_telpon"`
	Type       string           `json:"type"`
	Harga      *decimal.Decimal `json:"harga"`
	NoRumah    string           `json:"no_rumah"`
	Keterangan string           `json:"keterangan"`
	Lunas      bool             `json:"lunas"`
}

type CustomerPatch struct {
	Tanggal    *string          `json:"tanggal"`
	Nama       *string          `json:"nama"`
	Alamat     *string          `json:"alamat"`
	NoTelpon   *string          `json:"no_telpon"`
	Type       *string          `json:"type"`
	Harga      *decimal.Decimal `json:"harga"`
	NoRumah    *string          `json:"no_rumah"`
	Keterangan *string          `json:"keterangan"`
	Lunas      *bool            `json:"lunas"`
}

type CustomerService struct {
	repo store.Customers
	log  *zap.Logger
	now  func() time.Time
}

func NewCustomerService(repo store.Customers, log *zap.Logger, opts ...Option) *CustomerService {
	if log == nil {
		log = zap.NewNop()
	}
	o := buildOptions(opts)
	return &CustomerService{repo: repo, log: log, now: o.now}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list customers", Err: err}
	}
	return items, nil
}

func (s *CustomerService) Create(ctx context.Context, in CreateCustomerInput) (*models.Customer, error) {
	in.Nama = strings.TrimSpace(in.Nama)
	missing, invalid := missingFields(in)
	harga := decimal.Zero
	if in.Harga != nil {
		if !validAmount(*in.Harga) {
			invalid = append(invalid, "harga")
		}
		harga = *in.Harga
	}
	tanggal := models.NewDate(s.now())
	if strings.TrimSpace(in.Tanggal) != "" {
		d, err := models.ParseDate(in.Tanggal)
		if err != nil {
			invalid = append(invalid, "tanggal")
		}
		tanggal = d
	}
	if len(missing) > 0 || len(invalid) > 0 {
		return nil, &ValidationError{Message: "Missing required customer fields", Missing: missing, Invalid: invalid}
	}
	c := &models.Customer{
		Tanggal:    tanggal,
		Nama:       in.Nama,
		Alamat:     in.Alamat,
		NoTelpon:   in.NoTelpon,
		Type:       in.Type,
		Harga:      harga,
		NoRumah:    in.NoRumah,
		Keterangan: in.Keterangan,
		Lunas:      in.Lunas,
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		s.log.Error("create customer failed", zap.Error(err))
		return nil, &StoreError{Op: "create customer", Err: err}
	}
	s.log.Info("customer created", zap.Uint("id", c.ID), zap.String("nama", c.Nama))
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, patch CustomerPatch) (*models.Customer, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	var invalid []string
	if patch.Nama != nil {
		if n := strings.TrimSpace(*patch.Nama); n != "" {
			c.Nama = n
		} else {
			invalid = append(invalid, "nama")
		}
	}
	if patch.Tanggal != nil {
		if d, err := models.ParseDate(*patch.Tanggal); err == nil {
			c.Tanggal = d
		} else {
			invalid = append(invalid, "tanggal")
		}
	}
	if patch.Harga != nil {
		if !validAmount(*patch.Harga) {
			invalid = append(invalid, "harga")
		} else {
			c.Harga = *patch.Harga
		}
	}
	for _, f := range []struct {
		dst *string
		src *string
	}{
		{&c.Alamat, patch.Alamat},
		{&c.NoTelpon, patch.NoTelpon},
		{&c.Type, patch.Type},
		{&c.NoRumah, patch.NoRumah},
		{&c.Keterangan, patch.Keterangan},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	if patch.Lunas != nil {
		c.Lunas = *patch.Lunas
	}
	if len(invalid) > 0 {
		return nil, &ValidationError{Message: "Invalid customer fields", Invalid: invalid}
	}
	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "customer", ID: id}
		}
		s.log.Error("update customer failed", zap.Uint("id", id), zap.Error(err))
		return nil, &StoreError{Op: "update customer", Err: err}
	}
	return c, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uint) (*models.Customer, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "customer", ID: id}
		}
		s.log.Error("delete customer failed", zap.Uint("id", id), zap.Error(err))
		return nil, &StoreError{Op: "delete customer", Err: err}
	}
	s.log.Info("customer deleted", zap.Uint("id", id), zap.String("nama", c.Nama))
	return c, nil
}

func (s *CustomerService) find(ctx context.Context, id uint) (*models.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "customer", ID: id}
	}
	if err != nil {
		return nil, &StoreError{Op: "find customer", Err: err}
	}
	return c, nil
}
