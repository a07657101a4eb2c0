// Package service holds the record services behind the HTTP handlers and
// operator tools.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"aqso/models"
	"aqso/pkg/kwitansi"
	"aqso/pkg/terbilang"
	"aqso/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateTransactionInput is the body of a transaction create request.
// Jumlah is a pointer so that an absent amount can be told from zero.
type CreateTransactionInput struct {
	NoKwitansi      string           `json:"no_kwitansi"`
	DiterimaDari    string           `json:"diterima_dari" validate:"required"`
	UntukPembayaran string           `json:"untuk_pembayaran" validate:"required"`
	Jumlah          *decimal.Decimal `json:"jumlah" validate:"required"`
	KetPembayaran   *string          `json:"ket_pembayaran"`
	NamaMarketing   *string          `json:"nama_marketing"`
	Terbilang       *string          `json:"terbilang"`
	Tanggal         string           `json:"tanggal"`
}

// TransactionPatch lists the fields an update may replace. Nil means keep.
type TransactionPatch struct {
	NoKwitansi      *string          `json:"no_kwitansi"`
	DiterimaDari    *string          `json:"diterima_dari"`
	UntukPembayaran *string          `json:"untuk_pembayaran"`
	KetPembayaran   *string          `json:"ket_pembayaran"`
	NamaMarketing   *string          `json:"nama_marketing"`
	Jumlah          *decimal.Decimal `json:"jumlah"`
	Terbilang       *string          `json:"terbilang"`
	Tanggal         *string          `json:"tanggal"`
}

// TransactionService creates, updates, deletes and lists transactions and
// assigns receipt numbers.
type TransactionService struct {
	repo store.Transactions
	log  *zap.Logger
	now  func() time.Time
}

// Option configures a service.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used for default dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func NewTransactionService(repo store.Transactions, log *zap.Logger, opts ...Option) *TransactionService {
	if log == nil {
		log = zap.NewNop()
	}
	o := buildOptions(opts)
	return &TransactionService{repo: repo, log: log, now: o.now}
}

// List returns all transactions, most recent first.
func (s *TransactionService) List(ctx context.Context) ([]models.Transaction, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list transactions", Err: err}
	}
	return items, nil
}

// Create validates in, fills the defaults (receipt number, date, terbilang)
// and stores the transaction.
func (s *TransactionService) Create(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error) {
	in.DiterimaDari = strings.TrimSpace(in.DiterimaDari)
	in.UntukPembayaran = strings.TrimSpace(in.UntukPembayaran)
	in.NoKwitansi = strings.TrimSpace(in.NoKwitansi)

	missing, invalid := missingFields(in)
	if in.Jumlah != nil && !validAmount(*in.Jumlah) {
		invalid = append(invalid, "jumlah")
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
		s.log.Warn("transaction validation failed", zap.Strings("missing", missing), zap.Strings("invalid", invalid))
		return nil, &ValidationError{Message: "Missing required transaction fields", Missing: missing, Invalid: invalid}
	}

	tx := &models.Transaction{
		NoKwitansi:      in.NoKwitansi,
		DiterimaDari:    in.DiterimaDari,
		UntukPembayaran: in.UntukPembayaran,
		KetPembayaran:   in.KetPembayaran,
		NamaMarketing:   in.NamaMarketing,
		Jumlah:          *in.Jumlah,
		Terbilang:       in.Terbilang,
		Tanggal:         tanggal,
	}
	if tx.Terbilang == nil {
		words := terbilang.Rupiah(tx.Jumlah)
		tx.Terbilang = &words
	}

	var err error
	if tx.NoKwitansi != "" {
		err = s.repo.Insert(ctx, tx)
	} else {
		err = s.repo.Numbering(ctx, func(repo store.Transactions) error {
			nums, err := repo.ReceiptNumbers(ctx)
			if err != nil {
				return err
			}
			tx.NoKwitansi = kwitansi.Next(nums)
			return repo.Insert(ctx, tx)
		})
	}
	if err != nil {
		s.log.Error("create transaction failed", zap.String("no_kwitansi", tx.NoKwitansi), zap.Bool("duplicate", store.IsUniqueViolation(err)), zap.Error(err))
		return nil, &StoreError{Op: "create transaction", Err: err}
	}
	s.log.Info("transaction created", zap.Uint("id", tx.ID), zap.String("no_kwitansi", tx.NoKwitansi))
	return tx, nil
}

// Update applies patch to transaction id.
func (s *TransactionService) Update(ctx context.Context, id uint, patch TransactionPatch) (*models.Transaction, error) {
	tx, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	var invalid []string
	setString := func(dst *string, src *string, field string, required bool) {
		if src == nil {
			return
		}
		v := *src
		if required {
			v = strings.TrimSpace(v)
			if v == "" {
				invalid = append(invalid, field)
				return
			}
		}
		*dst = v
	}
	setString(&tx.NoKwitansi, patch.NoKwitansi, "no_kwitansi", true)
	setString(&tx.DiterimaDari, patch.DiterimaDari, "diterima_dari", true)
	setString(&tx.UntukPembayaran, patch.UntukPembayaran, "untuk_pembayaran", true)
	if patch.KetPembayaran != nil {
		tx.KetPembayaran = patch.KetPembayaran
	}
	if patch.NamaMarketing != nil {
		tx.NamaMarketing = patch.NamaMarketing
	}
	if patch.Terbilang != nil {
		tx.Terbilang = patch.Terbilang
	}
	if patch.Jumlah != nil {
		if !validAmount(*patch.Jumlah) {
			invalid = append(invalid, "jumlah")
		} else {
			tx.Jumlah = *patch.Jumlah
		}
	}
	if patch.Tanggal != nil {
		d, err := models.ParseDate(*patch.Tanggal)
		if err != nil {
			invalid = append(invalid, "tanggal")
		} else {
			tx.Tanggal = d
		}
	}
	if len(invalid) > 0 {
		return nil, &ValidationError{Message: "Invalid transaction fields", Invalid: invalid}
	}

	if err := s.repo.Update(ctx, tx); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "transaction", ID: id}
		}
		s.log.Error("update transaction failed", zap.Uint("id", id), zap.Error(err))
		return nil, &StoreError{Op: "update transaction", Err: err}
	}
	s.log.Info("transaction updated", zap.Uint("id", id), zap.String("no_kwitansi", tx.NoKwitansi))
	return tx, nil
}

// Delete removes transaction id and returns it as it was before deletion.
func (s *TransactionService) Delete(ctx context.Context, id uint) (*models.Transaction, error) {
	tx, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "transaction", ID: id}
		}
		s.log.Error("delete transaction failed", zap.Uint("id", id), zap.Error(err))
		return nil, &StoreError{Op: "delete transaction", Err: err}
	}
	s.log.Info("transaction deleted", zap.Uint("id", id), zap.String("no_kwitansi", tx.NoKwitansi))
	return tx, nil
}

func (s *TransactionService) find(ctx context.Context, id uint) (*models.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "transaction", ID: id}
	}
	if err != nil {
		s.log.Error("find transaction failed", zap.Uint("id", id), zap.Error(err))
		return nil, &StoreError{Op: "find transaction", Err: err}
	}
	return tx, nil
}
