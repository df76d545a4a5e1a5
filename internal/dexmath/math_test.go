package dexmath

import (
	"math/big"
	"testing"
)

func bi(s string) *big.Int {
	z, _ := new(big.Int).SetString(s, 10)
	return z
}

func TestGetAmountOutInto_Basic(t *testing.T) {
	t.Parallel()

	out := new(big.Int)
	ok := GetAmountOutInto(out, bi("100"), bi("1000"), bi("1000"))
	if !ok {
		t.Fatalf("ok=false")
	}
	if out.Cmp(bi("90")) != 0 { // 90.6... -> 90
		t.Fatalf("want 90 got %s", out.String())
	}
}

func TestGetAmountOutInto_Zeroes(t *testing.T) {
	t.Parallel()

	out := new(big.Int)
	if ok := GetAmountOutInto(out, bi("0"), bi("1"), bi("1")); ok {
		t.Fatal("zero amountIn should be false")
	}
	if ok := GetAmountOutInto(out, bi("1"), bi("0"), bi("1")); ok {
		t.Fatal("zero reserveIn should be false")
	}
	if ok := GetAmountOutInto(out, bi("1"), bi("1"), bi("0")); ok {
		t.Fatal("zero reserveOut should be false")
	}
}

func TestGetAmountIn_Basic(t *testing.T) {
	t.Parallel()

	in, ok := GetAmountIn(bi("100"), bi("1000"), bi("1000"))
	if !ok {
		t.Fatalf("ok=false")
	}
	if in.Cmp(bi("112")) != 0 { // 111.4... + 1 -> 112
		t.Fatalf("want 112 got %s", in.String())
	}
}

func TestGetAmountIn_OutputAtReserve(t *testing.T) {
	t.Parallel()

	if _, ok := GetAmountIn(bi("1000"), bi("1000"), bi("1000")); ok {
		t.Fatal("amountOut equal to reserveOut should be false")
	}
	if _, ok := GetAmountIn(bi("0"), bi("1000"), bi("1000")); ok {
		t.Fatal("zero amountOut should be false")
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	out, ok := Quote(bi("100"), bi("300"), bi("400"))
	if !ok {
		t.Fatalf("ok=false")
	}
	if out.Cmp(bi("133")) != 0 {
		t.Fatalf("want 133 got %s", out.String())
	}
	if _, ok := Quote(bi("1"), bi("0"), bi("1")); ok {
		t.Fatal("zero reserve should be false")
	}
}

func TestSqrtMin(t *testing.T) {
	t.Parallel()

	if got := Sqrt(bi("120000")); got.Cmp(bi("346")) != 0 {
		t.Fatalf("want 346 got %s", got)
	}
	if got := Sqrt(bi("0")); got.Sign() != 0 {
		t.Fatalf("want 0 got %s", got)
	}
	if got := Min(bi("5"), bi("3")); got.Cmp(bi("3")) != 0 {
		t.Fatalf("want 3 got %s", got)
	}
}

func TestFitsU256(t *testing.T) {
	t.Parallel()

	max := MaxU256()
	if !FitsU256(max) {
		t.Fatal("max uint256 should fit")
	}
	if FitsU256(new(big.Int).Add(max, big.NewInt(1))) {
		t.Fatal("2^256 should not fit")
	}
	if FitsU256(big.NewInt(-1)) {
		t.Fatal("negative should not fit")
	}
}

func BenchmarkGetAmountOut_Allocating(b *testing.B) {
	ain := bi("1000000000000000000")
	rIn := bi("1234567890000000000000")
	rOut := bi("987654321000000000000000")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, ok := GetAmountOut(ain, rIn, rOut); !ok {
			b.Fatal("unexpected false")
		}
	}
}

func BenchmarkGetAmountOut_NoAllocs(b *testing.B) {
	ain := bi("1000000000000000000")
	rIn := bi("1234567890000000000000")
	rOut := bi("987654321000000000000000")
	out := new(big.Int) // allocate once and reuse
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if !GetAmountOutInto(out, ain, rIn, rOut) {
			b.Fatal("unexpected false")
		}
	}
}
