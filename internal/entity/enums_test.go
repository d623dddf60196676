package entity

import "testing"

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{"vegetables", "fruits", "spices", "grains", "dairy", "oil", "packaging", "other"} {
		if _, err := ParseCategory(valid); err != nil {
			t.Errorf("ParseCategory(%q) unexpected error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "Vegetables", "meat"} {
		if _, err := ParseCategory(invalid); err == nil {
			t.Errorf("ParseCategory(%q) expected error", invalid)
		}
	}
}

func TestParseUnit(t *testing.T) {
	for _, valid := range []string{"kg", "g", "litre", "ml", "piece", "dozen", "packet"} {
		if _, err := ParseUnit(valid); err != nil {
			t.Errorf("ParseUnit(%q) unexpected error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "KG", "pound"} {
		if _, err := ParseUnit(invalid); err == nil {
			t.Errorf("ParseUnit(%q) expected error", invalid)
		}
	}
}
