package scan

import (
	"testing"

	domainErrors "nushoplah/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_IdentityPayload(t *testing.T) {
	raw := `{"uid":12,"firstName":"Wei Ling","currentPoint":650,"totalPoint":1800,"amountPaid":0,"isVoucher":false}`

	result, err := Classify(raw, 99)
	require.NoError(t, err)
	require.False(t, result.IsVoucher())

	assert.Equal(t, uint(12), result.Identity.UID)
	assert.Equal(t, "Wei Ling", result.Identity.FirstName)
	assert.Equal(t, 650, result.Identity.CurrentPoint)
	assert.Equal(t, 1800, result.Identity.TotalPoint)
}

func TestClassify_VoucherPayload(t *testing.T) {
	raw := `{"voucherId":4,"voucherType":"dollar","voucherAmount":5,"pointsRequired":100,` +
		`"voucherDescription":"$5 off","customerId":12,"customerName":"Wei Ling","sellerId":7,"isVoucher":true}`

	result, err := Classify(raw, 7)
	require.NoError(t, err)
	require.True(t, result.IsVoucher())

	assert.Equal(t, uint(4), result.Voucher.VoucherID)
	assert.Equal(t, uint(7), result.Voucher.SellerID)
	assert.Equal(t, 100, result.Voucher.PointsRequired)
}

func TestClassify_ForeignVoucherRejected(t *testing.T) {
	raw := `{"voucherId":4,"customerId":12,"sellerId":7,"isVoucher":true}`

	_, err := Classify(raw, 8)
	assert.ErrorIs(t, err, domainErrors.ErrForeignVoucher)
}

func TestClassify_MalformedPayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "this is not a QR we issued"},
		{"empty string", ""},
		{"json array", `[1,2,3]`},
		{"identity missing uid", `{"firstName":"A","currentPoint":0,"totalPoint":0,"isVoucher":false}`},
		{"identity missing firstName", `{"uid":1,"currentPoint":0,"totalPoint":0,"isVoucher":false}`},
		{"identity missing currentPoint", `{"uid":1,"firstName":"A","totalPoint":0,"isVoucher":false}`},
		{"identity missing totalPoint", `{"uid":1,"firstName":"A","currentPoint":0,"isVoucher":false}`},
		{"voucher missing voucherId", `{"customerId":12,"sellerId":7,"isVoucher":true}`},
		{"voucher missing customerId", `{"voucherId":4,"sellerId":7,"isVoucher":true}`},
		{"voucher missing sellerId", `{"voucherId":4,"customerId":12,"isVoucher":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.raw, 7)
			assert.ErrorIs(t, err, domainErrors.ErrMalformedPayload)
		})
	}
}

func TestClassify_SellerCheckRunsAfterShapeCheck(t *testing.T) {
	// A voucher payload that is both ill-shaped and foreign reports the
	// shape problem first.
	raw := `{"customerId":12,"sellerId":999,"isVoucher":true}`
	_, err := Classify(raw, 7)
	assert.ErrorIs(t, err, domainErrors.ErrMalformedPayload)
}
