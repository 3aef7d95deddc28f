package checkout

import (
	"fmt"
	"strconv"
	"time"

	"freshcart-backend/internal/models"
)

// VoucherView is a voucher annotated with display text for the client.
type VoucherView struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	Code          string             `json:"code"`
	VoucherType   models.VoucherType `json:"voucher_type"`
	ProductID     *uint              `json:"product_id,omitempty"`
	StartedAt     time.Time          `json:"started_at"`
	EndAt         time.Time          `json:"end_at"`
	AppliesTo     string             `json:"applies_to,omitempty"`
	Discount      string             `json:"discount,omitempty"`
	DeliveryPrice *float64           `json:"delivery_price,omitempty"`
}

// formatAmount renders 10.0 as "10" and 2.5 as "2.5".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// AnnotateVoucher shapes a voucher for display based on its type.
// Unknown types pass through without annotation.
func AnnotateVoucher(v models.Voucher) VoucherView {
	view := VoucherView{
		ID:          v.ID,
		Name:        v.Name,
		Code:        v.Code,
		VoucherType: v.VoucherType,
		ProductID:   v.ProductID,
		StartedAt:   v.StartedAt,
		EndAt:       v.EndAt,
	}

	switch v.VoucherType {
	case models.VoucherBuyNGetN:
		if v.ProductID == nil {
			view.AppliesTo = "All Products"
		} else {
			view.AppliesTo = fmt.Sprintf("Product #%d", *v.ProductID)
		}

	case models.VoucherProductDiscount:
		if v.ProductDiscount == nil {
			break
		}
		switch v.ProductDiscount.DiscountType {
		case models.DiscountNominal:
			view.Discount = fmt.Sprintf("%s off per product", formatAmount(v.ProductDiscount.Discount))
		case models.DiscountPercentage:
			view.Discount = fmt.Sprintf("%s%% off", formatAmount(v.ProductDiscount.Discount))
		}

	case models.VoucherDeliveryFree:
		zero := 0.0
		view.DeliveryPrice = &zero
		view.Discount = "Free delivery"

	case models.VoucherDeliveryDiscount:
		if v.DeliveryDiscount != nil {
			view.Discount = fmt.Sprintf("%s%% off delivery", formatAmount(v.DeliveryDiscount.Discount))
		}
	}

	return view
}

// ActiveVouchers returns vouchers valid right now, annotated for display.
func (s *Service) ActiveVouchers(now time.Time) ([]VoucherView, error) {
	vouchers, err := s.repo.ActiveVouchers(now)
	if err != nil {
		return nil, err
	}

	views := make([]VoucherView, 0, len(vouchers))
	for _, v := range vouchers {
		views = append(views, AnnotateVoucher(v))
	}
	return views, nil
}

// VoucherDetail returns a single annotated voucher, or nil when missing.
func (s *Service) VoucherDetail(id uint) (*VoucherView, error) {
	voucher, err := s.repo.VoucherByID(id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, nil
	}
	view := AnnotateVoucher(*voucher)
	return &view, nil
}
