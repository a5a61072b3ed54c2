package onelink

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		want   string
	}{
		{"zero", "0", "+0000000000000"},
		{"minus one", "-1", "-0000000000100"},
		{"whole amount", "120.00", "+0000000012000"},
		{"negative fraction", "-5.5", "-0000000000550"},
		{"truncates sub minor units", "10.999", "+0000000001099"},
		{"largest column value", "9999999999.99", "+0999999999999"},
		{"saturates", "123456789012.34", "+9999999999999"},
		{"negative saturates", "-100000000000", "-9999999999999"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatAmount(decimal.RequireFromString(tc.amount))
			assert.Equal(t, tc.want, got)
			assert.Len(t, got, 1+AmountWidth)
		})
	}
}

func TestFormatAmount_InjectiveWithinRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := int64(9999999999999)
		a := rapid.Int64Range(-limit, limit).Draw(t, "a")
		b := rapid.Int64Range(-limit, limit).Draw(t, "b")

		fa := FormatAmount(decimal.New(a, -2))
		fb := FormatAmount(decimal.New(b, -2))

		if len(fa) != 14 || len(fb) != 14 {
			t.Fatalf("unexpected width: %q %q", fa, fb)
		}
		if (a == b) != (fa == fb) {
			t.Fatalf("amounts %d and %d encode to %q and %q", a, b, fa, fb)
		}
	})
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "        ", FormatDate(nil))
	assert.Len(t, FormatDate(nil), DateWidth)

	d := time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "20260220", FormatDate(&d))

	// calendar fields are read in the value's own location
	karachi := time.FixedZone("PKT", 5*60*60)
	early := time.Date(2026, time.March, 1, 1, 0, 0, 0, karachi)
	assert.Equal(t, "20260301", FormatDate(&early))

	old := time.Date(987, time.January, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "09870105", FormatDate(&old))
}

func TestBillingMonth(t *testing.T) {
	d := time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "260201", BillingMonth(d, "01"))
	assert.Equal(t, "260203", BillingMonth(d, "03"))
	assert.Equal(t, "260201", BillingMonth(d, ""))

	dec := time.Date(2009, time.December, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "091201", BillingMonth(dec, DefaultInstallment))
}
