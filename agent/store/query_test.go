package store

import (
	"errors"
	"testing"
)

func TestContainsPattern(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Mumbai":  "%mumbai%",
		"50%":     "%50!%%",
		"a_b":     "%a!_b%",
		"wow!":    "%wow!!%",
		"":        "%%",
		"Navi  M": "%navi  m%",
		"ŠKODA":   "%škoda%",
		"a\xffb":  "%a\uFFFDb%",
	}
	for in, want := range cases {
		if got := ContainsPattern(in); got != want {
			t.Fatalf("ContainsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCarQueryValidate(t *testing.T) {
	t.Parallel()

	ok := NewCarQuery().ContainsAny("x", FieldBrand, FieldModel).Limit(1)
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	bad := NewCarQuery().Contains(CarField("price_per_day"), "1")
	if err := bad.Validate(); !errors.Is(err, ErrFieldNotAllowed) {
		t.Fatalf("Validate() error = %v, want ErrFieldNotAllowed", err)
	}

	if err := NewCarQuery().Limit(-1).Validate(); err == nil {
		t.Fatal("expected negative limit to fail")
	}
}

func TestCarQueryIsImmutable(t *testing.T) {
	t.Parallel()

	base := NewCarQuery().Contains(FieldLocationCity, "pune")
	a := base.Contains(FieldCategory, "suv")
	b := base.Contains(FieldCategory, "sedan")

	if len(base.Groups()) != 1 {
		t.Fatalf("base groups = %d, want 1", len(base.Groups()))
	}
	if a.Groups()[1][0].Term != "suv" || b.Groups()[1][0].Term != "sedan" {
		t.Fatalf("derived queries share state: a=%v b=%v", a.Groups(), b.Groups())
	}
}

func TestCarQueryMatch(t *testing.T) {
	t.Parallel()

	car := CarListing{
		Brand:    "Hyundai",
		Model:    "Creta",
		Category: "SUV",
		Location: Location{City: "Mumbai", State: "Maharashtra", Address: "Powai"},
		IsActive: true,
	}

	q := NewCarQuery().
		ContainsAny("powai", FieldLocationCity, FieldLocationState, FieldLocationAddress).
		Contains(FieldCategory, "suv").
		ActiveOnly()
	if !q.Match(car) {
		t.Fatal("expected match")
	}

	car.IsActive = false
	if q.Match(car) {
		t.Fatal("inactive car must not match an active-only query")
	}

	if NewCarQuery().Contains(FieldCategory, "sedan").Match(car) {
		t.Fatal("category mismatch must not match")
	}
}
