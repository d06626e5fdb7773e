//
// Package scheme holds the conversion scheme table and the
// converter that rescales raw subject scores against it.
//
package scheme

import "fmt"

//
// Subject is one examinable subject within a scheme.
// Points is the target allocation the subject contributes to the
// converted total, Base the full-mark denominator of the raw score.
//
type Subject struct {
	Name   string
	Points float64
	Base   int
}

//
// Scheme is a named conversion configuration, subjects are kept
// in the order they were defined.
//
type Scheme struct {
	Key      string
	Subjects []Subject
}

// MaxTotal is the sum of all subject points.
func (s Scheme) MaxTotal() float64 {
	var total float64
	for _, subj := range s.Subjects {
		total += subj.Points
	}
	return total
}

//
// returned when a scheme key is not registered
//
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown scheme: %s", e.Key)
}

//
// returned when the effective full-mark base
// for a subject is not positive
//
type InvalidBaseError struct {
	Subject string
	Base    int
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid full-mark base for %s: %d", e.Subject, e.Base)
}
