package geo

import "testing"

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		name       string
		address    string
		province   string
		regency    string
		wantDetail string
		wantCity   string
	}{
		{
			name:     "empty",
			address:  "",
			province: "Bali", regency: "Badung",
			wantDetail: "", wantCity: "",
		},
		{
			name:       "bare city name",
			address:    "Jakarta",
			wantDetail: "", wantCity: "Jakarta",
		},
		{
			name:       "bare province name",
			address:    "Jawa Barat",
			wantDetail: "", wantCity: "Jawa Barat",
		},
		{
			name:       "bare city case insensitive",
			address:    "bandung",
			wantDetail: "", wantCity: "bandung",
		},
		{
			name:       "street district city province country",
			address:    "Jl. Malioboro No.1, Gedong Tengen, Yogyakarta, Daerah Istimewa Yogyakarta, Indonesia",
			wantDetail: "Jl. Malioboro No.1, Gedong Tengen, Yogyakarta", wantCity: "Yogyakarta",
		},
		{
			name:       "city in middle part",
			address:    "Jl. Asia Afrika No.8, Bandung, Jawa Barat",
			wantDetail: "Jl. Asia Afrika No.8, Bandung", wantCity: "Jawa Barat",
		},
		{
			name:       "country token skipped",
			address:    "Jl. Pantai Kuta, Badung, Bali, Indonesia",
			wantDetail: "Jl. Pantai Kuta, Badung", wantCity: "Bali",
		},
		{
			name:     "no known city falls back to regency",
			address:  "Jl. Raya Senggigi Km.8, Lombok Barat",
			province: "Nusa Tenggara Barat", regency: "Lombok Barat",
			wantDetail: "Jl. Raya Senggigi Km.8, Lombok Barat", wantCity: "Lombok Barat",
		},
		{
			name:     "no known city and no regency falls back to province",
			address:  "Jl. Trans Sulawesi Km.12",
			province: "Gorontalo", regency: "",
			wantDetail: "Jl. Trans Sulawesi Km.12", wantCity: "Gorontalo",
		},
		{
			name:       "trailing separators stripped",
			address:    "Jl. Veteran No.2; , Jawa Tengah",
			wantDetail: "Jl. Veteran No.2", wantCity: "Jawa Tengah",
		},
		{
			name:       "single part no commas no fallback",
			address:    "Dusun Sade Rembitan",
			wantDetail: "Dusun Sade Rembitan", wantCity: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			detail, city := SplitAddress(tc.address, tc.province, tc.regency)
			if detail != tc.wantDetail || city != tc.wantCity {
				t.Errorf("SplitAddress(%q, %q, %q) = (%q, %q), want (%q, %q)",
					tc.address, tc.province, tc.regency,
					detail, city, tc.wantDetail, tc.wantCity)
			}
		})
	}
}

func TestTrimTrailingSeparators(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Jl. Veteran,", "Jl. Veteran"},
		{"Jl. Veteran; ,  ", "Jl. Veteran"},
		{"Jl. Veteran", "Jl. Veteran"},
		{"", ""},
		{",;", ""},
	}
	for _, tc := range tests {
		if got := trimTrailingSeparators(tc.in); got != tc.want {
			t.Errorf("trimTrailingSeparators(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
