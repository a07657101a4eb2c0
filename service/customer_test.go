package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"aqso/store/storetest"

	"github.com/shopspring/decimal"
)

func newCustomerService() *CustomerService {
	return NewCustomerService(storetest.NewCustomers(), nil, WithClock(func() time.Time { return fixedNow }))
}

func TestCustomerCreateDefaults(t *testing.T) {
	svc := newCustomerService()
	c, err := svc.Create(context.Background(), CreateCustomerInput{Nama: "Rina", NoRumah: "B-12"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !c.Harga.IsZero() || c.Lunas || c.Tanggal.String() != fixedNow.Format("2006-01-02") {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestCustomerCreateRequiresNama(t *testing.T) {
	svc := newCustomerService()
	_, err := svc.Create(context.Background(), CreateCustomerInput{Alamat: "x"})
	var verr *ValidationError
	if !errors.As(err, &verr) || !reflect.DeepEqual(verr.Missing, []string{"nama"}) {
		t.Fatalf("expected missing nama got %v", err)
	}
}

func TestCustomerHargaRange(t *testing.T) {
	svc := newCustomerService()
	_, err := svc.Create(context.Background(), CreateCustomerInput{Nama: "Rina", Harga: amount("10000000000000")})
	var verr *ValidationError
	if !errors.As(err, &verr) || !reflect.DeepEqual(verr.Invalid, []string{"harga"}) {
		t.Fatalf("expected invalid harga got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateCustomerInput{Nama: "Rina", Harga: amount("9999999999999.99")}); err != nil {
		t.Fatalf("column max must be accepted: %v", err)
	}
}

func TestCustomerUpdateAndDelete(t *testing.T) {
	svc := newCustomerService()
	c, _ := svc.Create(context.Background(), CreateCustomerInput{Nama: "Rina", Tanggal: "2025-01-01"})
	lunas := true
	harga := decimal.NewFromInt(350000000)
	up, err := svc.Update(context.Background(), c.ID, CustomerPatch{Lunas: &lunas, Harga: &harga})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !up.Lunas || !up.Harga.Equal(harga) || up.Nama != "Rina" || up.Tanggal.String() != "2025-01-01" {
		t.Fatalf("unexpected update result %+v", up)
	}
	snap, err := svc.Delete(context.Background(), c.ID)
	if err != nil || snap.Nama != "Rina" {
		t.Fatalf("delete: %v %+v", err, snap)
	}
	_, err = svc.Delete(context.Background(), c.ID)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
}
