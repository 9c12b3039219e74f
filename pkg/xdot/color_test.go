package xdot

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func rgbaEqual(a, b RGBA) bool {
	return almostEqual(a.R, b.R) && almostEqual(a.G, b.G) &&
		almostEqual(a.B, b.B) && almostEqual(a.A, b.A)
}

func TestParseColor(t *testing.T) {
	fallback := RGBA{0.25, 0.5, 0.75, 1}

	tests := []struct {
		name  string
		input string
		want  RGBA
	}{
		{
			name:  "HexRGB",
			input: "#ff0000",
			want:  RGBA{1, 0, 0, 1},
		},
		{
			name:  "HexRGBA",
			input: "#0080ff40",
			want:  RGBA{0, 128.0 / 255.0, 1, 64.0 / 255.0},
		},
		{
			name:  "HexMalformedAlphaOpaque",
			input: "#0080ffzz",
			want:  RGBA{0, 128.0 / 255.0, 1, 1},
		},
		{
			name:  "HSVRed",
			input: "0 1 1",
			want:  RGBA{1, 0, 0, 1},
		},
		{
			name:  "HSVCommas",
			input: "0,1,1",
			want:  RGBA{1, 0, 0, 1},
		},
		{
			name:  "NamedWhite",
			input: "white",
			want:  RGBA{1, 1, 1, 1},
		},
		{
			name:  "NamedCaseInsensitive",
			input: "Black",
			want:  RGBA{0, 0, 0, 1},
		},
		{
			name:  "UnknownNameKeepsFallback",
			input: "no-such-color",
			want:  fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseColor(tt.input, fallback, log.New(io.Discard))
			if !rgbaEqual(got, tt.want) {
				t.Errorf("parseColor(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColorUnknownNameWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	fallback := RGBA{0.1, 0.2, 0.3, 1}
	got := parseColor("chucknorris", fallback, logger)

	if !rgbaEqual(got, fallback) {
		t.Errorf("fallback not preserved: got %+v", got)
	}
	if n := strings.Count(buf.String(), "unknown color"); n != 1 {
		t.Errorf("warnings = %d, want 1 (output: %q)", n, buf.String())
	}
}
