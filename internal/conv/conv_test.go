package conv

import "testing"

func TestIntToByte(t *testing.T) {
	tests := []struct {
		in   int
		want byte
	}{
		{0, 0},
		{'a', 'a'},
		{255, 255},
	}
	for _, tt := range tests {
		if got := IntToByte(tt.in); got != tt.want {
			t.Errorf("IntToByte(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIntToBytePanics(t *testing.T) {
	for _, n := range []int{-1, 256, 1 << 20} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("IntToByte(%d) did not panic", n)
				}
			}()
			IntToByte(n)
		}()
	}
}

func TestIntToUint32(t *testing.T) {
	if got := IntToUint32(255); got != 255 {
		t.Errorf("IntToUint32(255) = %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("IntToUint32(-1) did not panic")
		}
	}()
	IntToUint32(-1)
}
