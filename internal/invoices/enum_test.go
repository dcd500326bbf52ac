package invoices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"quotation", TypeQuotation},
		{"QUOTATION", TypeQuotation},
		{" Quotation ", TypeQuotation},
		{"estimate", TypeEstimate},
		{"bogus", TypeQuotation},
		{"", TypeQuotation},
		{"   ", TypeQuotation},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in, Types, TypeQuotation), "input %q", tc.in)
	}

	assert.Equal(t, StatusOverdue, Normalize("oVeRdUe", Statuses, StatusOpen))
	assert.Equal(t, PaymentPending, Normalize("refunded", PaymentStatuses, PaymentPending))
}

func TestNormalizeFilter(t *testing.T) {
	assert.Equal(t, PaymentPaid, NormalizeFilter("paid", PaymentStatuses))
	assert.Empty(t, NormalizeFilter("all", PaymentStatuses))
}

func TestNumberPrefix(t *testing.T) {
	assert.Equal(t, "QTN", NumberPrefix(TypeQuotation))
	assert.Equal(t, "EST", NumberPrefix(TypeEstimate))
	assert.Equal(t, "QTN", NumberPrefix("Unknown"))
}
