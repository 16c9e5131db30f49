package voucher

import (
	"testing"

	"nushoplah/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPayable(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount Discount
		want     float64
	}{
		{
			name:     "dollar voucher",
			price:    100,
			discount: Discount{Type: models.VoucherTypeDollar, Amount: 30},
			want:     70.00,
		},
		{
			name:     "dollar voucher floors at zero",
			price:    10,
			discount: Discount{Type: models.VoucherTypeDollar, Amount: 30},
			want:     0,
		},
		{
			name:     "percentage voucher",
			price:    50,
			discount: Discount{Type: models.VoucherTypePercentage, Percentage: 20},
			want:     40.00,
		},
		{
			name:     "percentage voucher rounds half-up",
			price:    9.99,
			discount: Discount{Type: models.VoucherTypePercentage, Percentage: 15},
			want:     8.49, // 8.4915 -> 8.49
		},
		{
			name:     "full percentage discount",
			price:    25,
			discount: Discount{Type: models.VoucherTypePercentage, Percentage: 100},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Payable(tt.price, tt.discount))
		})
	}
}
