package conv

import (
	"math"
	"testing"
)

func TestIntToUint32(t *testing.T) {
	tests := []struct {
		in   int
		want uint32
	}{
		{0, 0},
		{1, 1},
		{math.MaxUint16, math.MaxUint16},
	}
	for _, tt := range tests {
		if got := IntToUint32(tt.in); got != tt.want {
			t.Errorf("IntToUint32(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIntToUint32_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative value")
		}
	}()
	IntToUint32(-1)
}
