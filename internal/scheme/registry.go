package scheme

import (
	_ "embed"
	"io/ioutil"
	"math"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

//go:embed schemes.json
var defaultTable []byte

//
// Registry is the read-only set of schemes available to the
// converter. It is built once and never modified, so it can be
// shared between concurrent requests without locking.
//
type Registry struct {
	order    []string
	schemes  map[string]Scheme
	maxTotal map[string]float64
}

//
// Entry pairs a scheme with its precomputed maximum total
//
type Entry struct {
	Scheme   Scheme
	MaxTotal float64
}

//
// Default returns a registry built from the embedded scheme table.
//
func Default() *Registry {
	r, err := Parse(defaultTable)
	if err != nil {
		panic(errors.Wrap(err, "embedded scheme table is invalid"))
	}
	return r
}

//
// Load reads a scheme table from a json file.
//
func Load(path string) (*Registry, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read scheme table")
	}
	r, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scheme table %s", path)
	}
	return r, nil
}

//
// Parse builds a registry from a json scheme table of the form
//
//   {"<scheme key>": {"<subject>": {"points": 50, "base": 200}, ...}, ...}
//
// Document order of schemes and subjects is preserved.
//
func Parse(data []byte) (*Registry, error) {

	if !gjson.ValidBytes(data) {
		return nil, errors.New("scheme table is not valid json")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("scheme table must be a json object")
	}

	r := &Registry{
		schemes:  map[string]Scheme{},
		maxTotal: map[string]float64{},
	}

	var err error
	root.ForEach(func(k, v gjson.Result) bool {
		var s Scheme
		s, err = parseScheme(k.String(), v)
		if err != nil {
			return false
		}
		if _, dup := r.schemes[s.Key]; dup {
			err = errors.Errorf("duplicate scheme %q", s.Key)
			return false
		}
		r.order = append(r.order, s.Key)
		r.schemes[s.Key] = s
		r.maxTotal[s.Key] = s.MaxTotal()
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(r.order) == 0 {
		return nil, errors.New("scheme table defines no schemes")
	}

	return r, nil
}

func parseScheme(key string, v gjson.Result) (Scheme, error) {

	s := Scheme{Key: key}
	if key == "" {
		return s, errors.New("scheme key must not be empty")
	}
	if !v.IsObject() {
		return s, errors.Errorf("scheme %q must be a json object", key)
	}

	seen := map[string]bool{}
	var err error
	v.ForEach(func(name, def gjson.Result) bool {
		subj := Subject{Name: name.String()}
		if seen[subj.Name] {
			err = errors.Errorf("scheme %q: duplicate subject %q", key, subj.Name)
			return false
		}
		seen[subj.Name] = true

		points := def.Get("points")
		if points.Type != gjson.Number || points.Num <= 0 {
			err = errors.Errorf("scheme %q: subject %q needs positive points", key, subj.Name)
			return false
		}
		base := def.Get("base")
		if base.Type != gjson.Number || base.Num <= 0 || base.Num != math.Trunc(base.Num) {
			err = errors.Errorf("scheme %q: subject %q needs a positive integer base", key, subj.Name)
			return false
		}
		subj.Points = points.Num
		subj.Base = int(base.Int())
		s.Subjects = append(s.Subjects, subj)
		return true
	})
	if err != nil {
		return s, err
	}
	if len(s.Subjects) == 0 {
		return s, errors.Errorf("scheme %q defines no subjects", key)
	}

	return s, nil
}

//
// Lookup finds a scheme by key.
//
func (r *Registry) Lookup(key string) (Scheme, bool) {
	s, ok := r.schemes[key]
	if !ok {
		return Scheme{}, false
	}
	return copyScheme(s), true
}

//
// List returns every scheme in definition order.
//
func (r *Registry) List() []Entry {
	entries := make([]Entry, 0, len(r.order))
	for _, key := range r.order {
		entries = append(entries, Entry{
			Scheme:   copyScheme(r.schemes[key]),
			MaxTotal: r.maxTotal[key],
		})
	}
	return entries
}

//
// MaxTotal returns the precomputed target total for a scheme,
// 0 if the key is unknown.
//
func (r *Registry) MaxTotal(key string) float64 {
	return r.maxTotal[key]
}

func copyScheme(s Scheme) Scheme {
	subjects := make([]Subject, len(s.Subjects))
	copy(subjects, s.Subjects)
	return Scheme{Key: s.Key, Subjects: subjects}
}
