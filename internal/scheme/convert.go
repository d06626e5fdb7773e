package scheme

import "strconv"

// Converted is the rescaled value of a single subject.
type Converted struct {
	Subject string
	Value   float64
}

//
// Result of a conversion, breakdown follows the
// subject order of the scheme.
//
type Result struct {
	Total     float64
	Breakdown []Converted
}

// BreakdownMap returns the breakdown keyed by subject.
func (r Result) BreakdownMap() map[string]float64 {
	m := make(map[string]float64, len(r.Breakdown))
	for _, c := range r.Breakdown {
		m[c.Subject] = c.Value
	}
	return m
}

//
// Convert rescales raw subject scores for the scheme named by key.
//
// raw: raw score per subject, missing subjects count as 0
// bases: optional full-mark overrides per subject
//
// Each subject is clipped to [0, base], scaled to its points and
// rounded to 2 places; the total is the sum of the rounded values,
// rounded again.
//
func (r *Registry) Convert(raw map[string]float64, key string, bases map[string]int) (Result, error) {
	s, ok := r.schemes[key]
	if !ok {
		return Result{}, &NotFoundError{Key: key}
	}
	return Convert(s, raw, bases)
}

//
// Convert applies a single scheme to raw scores, see Registry.Convert.
//
func Convert(s Scheme, raw map[string]float64, bases map[string]int) (Result, error) {

	res := Result{Breakdown: make([]Converted, 0, len(s.Subjects))}
	var total float64

	for _, subj := range s.Subjects {
		base := subj.Base
		if b, ok := bases[subj.Name]; ok {
			base = b
		}
		if base <= 0 {
			return Result{}, &InvalidBaseError{Subject: subj.Name, Base: base}
		}

		score := clip(raw[subj.Name], float64(base))
		conv := round2((score / float64(base)) * subj.Points)

		res.Breakdown = append(res.Breakdown, Converted{Subject: subj.Name, Value: conv})
		total += conv
	}

	res.Total = round2(total)
	return res, nil
}

func clip(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// round2 rounds to 2 decimal places, exact halves go to even.
func round2(v float64) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return f
}
