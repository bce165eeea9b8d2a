package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestResolveScheme(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		wantCustom   bool
		wantFallback bool
	}{
		{"bright green", 10, false, false},
		{"dark green", 2, false, false},
		{"bright red", 9, true, false},
		{"out of range high", 16, false, true},
		{"out of range low", -3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, fellBack := resolveScheme(tt.code)
			if sc.custom != tt.wantCustom {
				t.Errorf("resolveScheme(%d).custom = %v, want %v", tt.code, sc.custom, tt.wantCustom)
			}
			if fellBack != tt.wantFallback {
				t.Errorf("resolveScheme(%d) fallback = %v, want %v", tt.code, fellBack, tt.wantFallback)
			}
		})
	}
}

func TestCustomSchemeColors(t *testing.T) {
	sc, _ := resolveScheme(9)
	head, mid, _, _, darkest := sc.colors()
	if head != tcell.ColorWhite {
		t.Errorf("custom head = %v, want white", head)
	}
	if mid != tcell.PaletteColor(9) {
		t.Errorf("custom mid = %v, want palette color 9", mid)
	}
	if darkest != tcell.ColorBlack {
		t.Errorf("custom darkest = %v, want black", darkest)
	}
	if sc.baseRGB() == greenRGB {
		t.Error("custom red scheme should not fade through green")
	}
}

func TestFallbackSchemeIsGreen(t *testing.T) {
	sc, fellBack := resolveScheme(16)
	if !fellBack {
		t.Fatal("resolveScheme(16) should report a fallback")
	}
	if sc.baseRGB() != greenRGB {
		t.Errorf("fallback baseRGB = %v, want green", sc.baseRGB())
	}
}

func TestFadedColor(t *testing.T) {
	if got := fadedColor(greenRGB, 1); got != tcell.NewRGBColor(0, 255, 0) {
		t.Errorf("full alpha = %v, want pure green", got)
	}
	if got := fadedColor(greenRGB, 0); got != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("zero alpha = %v, want black", got)
	}
	// out-of-range alphas clamp instead of overflowing
	if got := fadedColor(greenRGB, 2); got != tcell.NewRGBColor(0, 255, 0) {
		t.Errorf("alpha 2 = %v, want pure green", got)
	}
}
