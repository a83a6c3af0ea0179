package analytics

import "testing"

func TestFormatUsd(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1500, "$1.50K"},
		{-2500000, "-$2.50M"},
		{999.99, "$999.99"},
		{1000, "$1.00K"},
		{1000000, "$1.00M"},
		{-42.5, "-$42.50"},
		{0, "$0.00"},
	}
	for _, c := range cases {
		if got := FormatUsd(c.in); got != c.want {
			t.Errorf("FormatUsd(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{12.345, "+12.35%"},
		{0, "+0.00%"},
		{-3.2, "-3.20%"},
	}
	for _, c := range cases {
		if got := FormatPercent(c.in); got != c.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{45, "45m"},
		{59.4, "59m"},
		{90, "1.5h"},
		{60, "1.0h"},
		{1439, "24.0h"},
		{1440, "1.0d"},
		{4320, "3.0d"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.in); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
