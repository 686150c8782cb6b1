package coinfolio

import "testing"

func TestMoney_String(t *testing.T) {
	tests := []struct {
		money Money
		want  string
	}{
		{USD(1234.56), "$1,234.56"},
		{USD(0), "$0.00"},
		{USD(-42), "-$42.00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.money.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	if got := USD(10).Add(USD(5)); !got.Equal(USD(15)) {
		t.Errorf("Add = %s, want %s", got, USD(15))
	}
	if got := USD(10).Sub(USD(5)); !got.Equal(USD(5)) {
		t.Errorf("Sub = %s, want %s", got, USD(5))
	}
	if got := USD(10).Mul(Q(3)); !got.Equal(USD(30)) {
		t.Errorf("Mul = %s, want %s", got, USD(30))
	}
	if got := USD(10).Div(Q(4)); !got.Equal(USD(2.5)) {
		t.Errorf("Div = %s, want %s", got, USD(2.5))
	}
}

func TestMoney_WeakCurrency(t *testing.T) {
	// a currency-less zero value picks up the other operand's currency
	var zero Money
	got := zero.Add(USD(5))
	if got.Currency() != "USD" {
		t.Errorf("currency = %q, want USD", got.Currency())
	}
	if !got.Equal(USD(5)) {
		t.Errorf("got %s, want %s", got, USD(5))
	}
}

func TestPercent(t *testing.T) {
	if !Percent(2.5).Equal(Percent(2.50009)) {
		t.Error("Equal() must tolerate sub-basis-point noise")
	}
	if Percent(2.5).Equal(Percent(2.6)) {
		t.Error("Equal() must not equate distinct percentages")
	}
	if got := Percent(2.5).SignedString(); got != "+2.50%" {
		t.Errorf("SignedString() = %q, want %q", got, "+2.50%")
	}
	if got := Percent(-2.5).SignedString(); got != "-2.50%" {
		t.Errorf("SignedString() = %q, want %q", got, "-2.50%")
	}
}
