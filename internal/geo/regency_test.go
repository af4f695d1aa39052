package geo

import "testing"

func TestNormalizeRegency(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Badung", "Badung"},
		{"kota prefix", "Kota Bandung", "Bandung"},
		{"kota dot prefix", "Kota. Bandung", "Bandung"},
		{"kabupaten prefix", "Kabupaten Badung", "Badung"},
		{"kab dot prefix", "Kab. Sleman", "Sleman"},
		{"prefix case insensitive", "KOTA Surabaya", "Surabaya"},
		{"dki fix", "DKI Jakarta", "Jakarta"},
		{"long jakarta fix", "Daerah Khusus Ibukota Jakarta", "Jakarta"},
		{"jogja fix", "Jogja", "Yogyakarta"},
		{"jogjakarta fix", "Jogjakarta", "Yogyakarta"},
		{"kota jogja", "Kota Jogjakarta", "Yogyakarta"},
		{"bare sulawesi cleared", "Sulawesi", ""},
		{"bare sumatera cleared", "sumatera", ""},
		{"sulawesi selatan kept", "Sulawesi Selatan", "Sulawesi Selatan"},
		{"non-ascii stripped", "Bandung –City", "Bandung City"},
		{"collapse spaces", "Kota   Malang", "Malang"},
		{"hyphen kept", "Toba-Samosir", "Toba-Samosir"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeRegency(tc.in); got != tc.want {
				t.Errorf("NormalizeRegency(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStripNonASCII(t *testing.T) {
	if got := stripNonASCII("Dépok"); got != "Dpok" {
		t.Errorf("stripNonASCII = %q, want %q", got, "Dpok")
	}
	if got := stripNonASCII("plain"); got != "plain" {
		t.Errorf("stripNonASCII changed ASCII input: %q", got)
	}
}
