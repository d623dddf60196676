package entity

import "fmt"

// Category classifies raw materials traded on the marketplace.
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategorySpices     Category = "spices"
	CategoryGrains     Category = "grains"
	CategoryDairy      Category = "dairy"
	CategoryOil        Category = "oil"
	CategoryPackaging  Category = "packaging"
	CategoryOther      Category = "other"
)

// Unit is the measurement unit a quantity is expressed in.
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitGram     Unit = "g"
	UnitLitre    Unit = "litre"
	UnitMillilit Unit = "ml"
	UnitPiece    Unit = "piece"
	UnitDozen    Unit = "dozen"
	UnitPacket   Unit = "packet"
)

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryVegetables, CategoryFruits, CategorySpices, CategoryGrains,
		CategoryDairy, CategoryOil, CategoryPackaging, CategoryOther:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category: %q", s)
	}
}

// ParseUnit validates a raw unit string.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(s); u {
	case UnitKilogram, UnitGram, UnitLitre, UnitMillilit, UnitPiece, UnitDozen, UnitPacket:
		return u, nil
	default:
		return "", fmt.Errorf("unknown unit: %q", s)
	}
}
