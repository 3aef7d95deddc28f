package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshcart-backend/internal/models"
)

func TestAnnotateVoucherBuyNGetN(t *testing.T) {
	v := models.Voucher{ID: 1, VoucherType: models.VoucherBuyNGetN}
	view := AnnotateVoucher(v)
	assert.Equal(t, "All Products", view.AppliesTo)

	pid := uint(9)
	v.ProductID = &pid
	view = AnnotateVoucher(v)
	assert.Equal(t, "Product #9", view.AppliesTo)
}

func TestAnnotateVoucherProductDiscount(t *testing.T) {
	v := models.Voucher{
		ID:          2,
		VoucherType: models.VoucherProductDiscount,
		ProductDiscount: &models.VoucherProductDiscountRule{
			DiscountType: models.DiscountNominal,
			Discount:     5000,
		},
	}
	view := AnnotateVoucher(v)
	assert.Equal(t, "5000 off per product", view.Discount)

	v.ProductDiscount.DiscountType = models.DiscountPercentage
	v.ProductDiscount.Discount = 10
	view = AnnotateVoucher(v)
	assert.Equal(t, "10% off", view.Discount)

	v.ProductDiscount.Discount = 2.5
	view = AnnotateVoucher(v)
	assert.Equal(t, "2.5% off", view.Discount)

	// missing rule row leaves the voucher unannotated
	v.ProductDiscount = nil
	view = AnnotateVoucher(v)
	assert.Empty(t, view.Discount)
}

func TestAnnotateVoucherDelivery(t *testing.T) {
	free := AnnotateVoucher(models.Voucher{ID: 3, VoucherType: models.VoucherDeliveryFree})
	assert.Equal(t, "Free delivery", free.Discount)
	require.NotNil(t, free.DeliveryPrice)
	assert.Equal(t, 0.0, *free.DeliveryPrice)

	discounted := AnnotateVoucher(models.Voucher{
		ID:               4,
		VoucherType:      models.VoucherDeliveryDiscount,
		DeliveryDiscount: &models.VoucherDeliveryDiscountRule{Discount: 25},
	})
	assert.Equal(t, "25% off delivery", discounted.Discount)
	assert.Nil(t, discounted.DeliveryPrice)
}

func TestAnnotateVoucherUnknownTypePassesThrough(t *testing.T) {
	view := AnnotateVoucher(models.Voucher{ID: 5, Name: "Mystery", VoucherType: "mystery_type"})
	assert.Equal(t, uint(5), view.ID)
	assert.Empty(t, view.Discount)
	assert.Empty(t, view.AppliesTo)
	assert.Nil(t, view.DeliveryPrice)
}

func TestActiveVouchersFiltersByWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := newMemoryRepo()
	repo.vouchers = []models.Voucher{
		{ID: 1, Name: "Live", VoucherType: models.VoucherDeliveryFree,
			StartedAt: now.AddDate(0, 0, -1), EndAt: now.AddDate(0, 0, 1)},
		{ID: 2, Name: "Expired", VoucherType: models.VoucherDeliveryFree,
			StartedAt: now.AddDate(0, 0, -10), EndAt: now.AddDate(0, 0, -5)},
		{ID: 3, Name: "Upcoming", VoucherType: models.VoucherDeliveryFree,
			StartedAt: now.AddDate(0, 0, 5), EndAt: now.AddDate(0, 0, 10)},
	}
	svc := NewService(repo, nil)

	views, err := svc.ActiveVouchers(now)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Live", views[0].Name)
}

func TestVoucherDetail(t *testing.T) {
	repo := newMemoryRepo()
	repo.vouchers = []models.Voucher{
		{ID: 7, Name: "Weekend", VoucherType: models.VoucherDeliveryFree},
	}
	svc := NewService(repo, nil)

	view, err := svc.VoucherDetail(7)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, "Free delivery", view.Discount)

	view, err = svc.VoucherDetail(999)
	require.NoError(t, err)
	assert.Nil(t, view)
}
