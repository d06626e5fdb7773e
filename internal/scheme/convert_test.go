package scheme

import (
	"errors"
	"reflect"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Parse([]byte(`{
		"single": {"国語": {"points": 50, "base": 200}},
		"pair": {
			"国語": {"points": 50, "base": 200},
			"数学": {"points": 50, "base": 100}
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestConvertSingleSubject(t *testing.T) {
	r := testRegistry(t)
	res, err := r.Convert(map[string]float64{"国語": 100}, "single", nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 25 || res.BreakdownMap()["国語"] != 25 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestConvertTwoSubjects(t *testing.T) {
	r := testRegistry(t)
	res, err := r.Convert(map[string]float64{"国語": 100, "数学": 100}, "pair", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Converted{{"国語", 25}, {"数学", 50}}
	if !reflect.DeepEqual(res.Breakdown, want) {
		t.Fatalf("breakdown %+v, want %+v", res.Breakdown, want)
	}
	if res.Total != 75 {
		t.Fatalf("total %v, want 75", res.Total)
	}
	if r.MaxTotal("pair") != 100 {
		t.Fatalf("max total %v, want 100", r.MaxTotal("pair"))
	}
}

func TestConvertClipping(t *testing.T) {
	r := testRegistry(t)
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"negative", -30, 0},
		{"zero", 0, 0},
		{"at base", 200, 50},
		{"above base", 999, 50},
		{"fraction", 1, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Convert(map[string]float64{"国語": tt.raw}, "single", nil)
			if err != nil {
				t.Fatal(err)
			}
			if got := res.BreakdownMap()["国語"]; got != tt.want {
				t.Fatalf("converted %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertMissingSubjectIsZero(t *testing.T) {
	r := testRegistry(t)
	res, err := r.Convert(map[string]float64{"数学": 100}, "pair", nil)
	if err != nil {
		t.Fatal(err)
	}
	m := res.BreakdownMap()
	if v, ok := m["国語"]; !ok || v != 0 {
		t.Fatalf("expected 国語 present with 0, got %v (%v)", v, ok)
	}
	if res.Total != 50 {
		t.Fatalf("total %v, want 50", res.Total)
	}
}

func TestConvertBaseOverride(t *testing.T) {
	r := testRegistry(t)
	raw := map[string]float64{"国語": 100, "数学": 100}
	res, err := r.Convert(raw, "pair", map[string]int{"国語": 100})
	if err != nil {
		t.Fatal(err)
	}
	m := res.BreakdownMap()
	if m["国語"] != 50 {
		t.Fatalf("override not applied: %v", m["国語"])
	}
	if m["数学"] != 50 {
		t.Fatalf("unrelated subject changed: %v", m["数学"])
	}

	// overrides for unknown subjects are ignored
	res, err = r.Convert(raw, "pair", map[string]int{"理科": 0})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 75 {
		t.Fatalf("total %v, want 75", res.Total)
	}
}

func TestConvertInvalidBase(t *testing.T) {
	r := testRegistry(t)
	for _, base := range []int{0, -100} {
		res, err := r.Convert(map[string]float64{}, "pair", map[string]int{"数学": base})
		var ib *InvalidBaseError
		if !errors.As(err, &ib) {
			t.Fatalf("expected InvalidBaseError, got %v", err)
		}
		if ib.Subject != "数学" || ib.Base != base {
			t.Fatalf("unexpected error detail %+v", ib)
		}
		if res.Breakdown != nil {
			t.Fatalf("expected no partial breakdown, got %+v", res.Breakdown)
		}
	}
}

func TestConvertUnknownScheme(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Convert(map[string]float64{"国語": 100}, "foo", map[string]int{"国語": 0})
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Key != "foo" {
		t.Fatalf("expected NotFoundError for foo, got %v", err)
	}
}

func TestConvertIsPure(t *testing.T) {
	r := Default()
	raw := map[string]float64{"国語": 151, "数学": 133.5, "外国語": 177}
	a, err := r.Convert(raw, "hokudai_sogo_rikei", nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Convert(raw, "hokudai_sogo_rikei", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
}

func TestConvertTwoStageRounding(t *testing.T) {
	s := Scheme{Key: "thirds", Subjects: []Subject{
		{Name: "a", Points: 10, Base: 3},
		{Name: "b", Points: 10, Base: 3},
		{Name: "c", Points: 10, Base: 3},
	}}
	res, err := Convert(s, map[string]float64{"a": 1, "b": 1, "c": 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range res.Breakdown {
		if c.Value != 3.33 {
			t.Fatalf("%s: %v, want 3.33", c.Subject, c.Value)
		}
	}
	// sum of the rounded parts, not round(10.0)
	if res.Total != 9.99 {
		t.Fatalf("total %v, want 9.99", res.Total)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{25, 25},
		{3.333333, 3.33},
		{3.336, 3.34},
		{0.125, 0.12},
		{0.375, 0.38},
		{2.675, 2.67},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
