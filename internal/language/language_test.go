package language

import "testing"

func TestToISO2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"eng", "en"},
		{"english", "en"},
		{"fre", "fr"},
		{"fra", "fr"},
		{"en-US", "en"},
		{"pt-BR", "pt"},
		{"zh-Hans", "zh"},
		{"xx", "xx"}, // unknown 2-letter codes pass through
		{"", ""},
		{"klingon", ""},
	}
	for _, tc := range cases {
		if got := ToISO2(tc.in); got != tc.want {
			t.Errorf("ToISO2(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"en", "English"},
		{"deu", "German"},
		{"ja-JP", "Japanese"},
		{"", "Unknown"},
		{"qq", "QQ"},
	}
	for _, tc := range cases {
		if got := DisplayName(tc.in); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
