package document

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a currency value with a dollar sign, two decimal
// places, and thousands separators, e.g. $1,234.56. Negative values keep
// the sign ahead of the dollar sign: -$50.00.
func FormatMoney(value decimal.Decimal) string {
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Neg()
	}
	return sign + "$" + groupThousands(value.StringFixed(2))
}

// FormatQuantity renders a quantity with two decimal places.
func FormatQuantity(value decimal.Decimal) string {
	return value.StringFixed(2)
}

func groupThousands(fixed string) string {
	dot := strings.IndexByte(fixed, '.')
	intPart, fracPart := fixed, ""
	if dot >= 0 {
		intPart, fracPart = fixed[:dot], fixed[dot:]
	}
	if len(intPart) <= 3 {
		return intPart + fracPart
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + fracPart
}
