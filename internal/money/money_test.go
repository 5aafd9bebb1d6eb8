package money

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "150", want: 150},
		{in: "18446744073709551615", want: 18446744073709551615},
		{in: "", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "12.5", wantErr: true},
		{in: "abc", wantErr: true},
		// 2^128, one past the maximum.
		{in: "340282366920938463463374607431768211456", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %s", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got.Cmp(FromUint64(tt.want)) != 0 {
			t.Errorf("Parse(%q) = %s, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseBeyond64Bits(t *testing.T) {
	const big = "340282366920938463463374607431768211455" // 2^128 - 1
	a, err := Parse(big)
	if err != nil {
		t.Fatalf("Parse(%q): %v", big, err)
	}
	if a.String() != big {
		t.Errorf("round trip: got %s, want %s", a, big)
	}
}

func TestArithmetic(t *testing.T) {
	a := FromUint64(150)
	b := FromUint64(90)

	if got := a.Add(b); got.Cmp(FromUint64(240)) != 0 {
		t.Errorf("150+90 = %s, want 240", got)
	}
	if got := a.Sub(b); got.Cmp(FromUint64(60)) != 0 {
		t.Errorf("150-90 = %s, want 60", got)
	}
	if got := a.Sub(a); !got.IsZero() {
		t.Errorf("150-150 = %s, want 0", got)
	}
}

func TestDivUint64Truncates(t *testing.T) {
	// 100 split 3 ways truncates to 33; the remainder is the caller's problem.
	if got := FromUint64(100).DivUint64(3); got.Cmp(FromUint64(33)) != 0 {
		t.Errorf("100/3 = %s, want 33", got)
	}
}

func TestDivUint64ByZero(t *testing.T) {
	if got := FromUint64(100).DivUint64(0); !got.IsZero() {
		t.Errorf("100/0 = %s, want 0", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a := FromUint64(12345)
	data, err := a.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != `"12345"` {
		t.Errorf("MarshalJSON = %s, want \"12345\"", data)
	}

	var b Amount
	if err := b.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if a.Cmp(b) != 0 {
		t.Errorf("round trip: got %s, want %s", b, a)
	}

	if err := b.UnmarshalJSON([]byte(`42`)); err == nil {
		t.Error("expected error unmarshaling bare number")
	}
}
