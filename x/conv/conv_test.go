package conv

import "testing"

func TestItoa(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{-1, "-1"},
		{447, "447"},
		{-447, "-447"},
		{1234567890, "1234567890"},
	}
	var buf [20]byte
	for _, tc := range cases {
		if got := string(Itoa(buf[:], tc.n)); got != tc.want {
			t.Errorf("Itoa(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestQuarters(t *testing.T) {
	cases := []struct {
		q    int64
		want string
	}{
		{0, "0.00"},
		{-1, "-0.25"},
		{-2, "-0.50"},
		{-3, "-0.75"},
		{-4, "-1.00"},
		{-447, "-111.75"},
		{5, "1.25"},
	}
	var buf [24]byte
	for _, tc := range cases {
		if got := string(Quarters(buf[:], tc.q)); got != tc.want {
			t.Errorf("Quarters(%d) = %q, want %q", tc.q, got, tc.want)
		}
	}
}
