package otfconvert

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

//
// ConvertRequest is a /convert payload that has passed
// shape validation
//
type ConvertRequest struct {
	SchemeKey string
	Scores    map[string]float64
	// nil when no overrides were sent
	Bases map[string]int
}

//
// ValidationError reports a payload that does not have
// the expected shape
//
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

//
// checks field presence and types of a conversion payload
// before any conversion is attempted
//
func parseConvertRequest(body []byte) (*ConvertRequest, error) {

	if !gjson.ValidBytes(body) {
		return nil, &ValidationError{Reason: "request body is not valid json"}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, &ValidationError{Reason: "request body must be a json object"}
	}

	req := &ConvertRequest{Scores: map[string]float64{}}

	key := root.Get("scheme_key")
	if !key.Exists() {
		return nil, &ValidationError{Field: "scheme_key", Reason: "field required"}
	}
	if key.Type != gjson.String {
		return nil, &ValidationError{Field: "scheme_key", Reason: "must be a string"}
	}
	req.SchemeKey = key.String()

	scores := root.Get("scores")
	if !scores.Exists() {
		return nil, &ValidationError{Field: "scores", Reason: "field required"}
	}
	if !scores.IsObject() {
		return nil, &ValidationError{Field: "scores", Reason: "must be an object of subject to number"}
	}
	var verr error
	scores.ForEach(func(k, v gjson.Result) bool {
		if v.Type != gjson.Number {
			verr = &ValidationError{Field: "scores." + k.String(), Reason: "must be a number"}
			return false
		}
		req.Scores[k.String()] = v.Num
		return true
	})
	if verr != nil {
		return nil, verr
	}

	bases := root.Get("bases")
	if !bases.Exists() || bases.Type == gjson.Null {
		return req, nil
	}
	if !bases.IsObject() {
		return nil, &ValidationError{Field: "bases", Reason: "must be an object of subject to integer"}
	}
	req.Bases = map[string]int{}
	bases.ForEach(func(k, v gjson.Result) bool {
		if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) || math.Abs(v.Num) > math.MaxInt32 {
			verr = &ValidationError{Field: "bases." + k.String(), Reason: "must be an integer"}
			return false
		}
		req.Bases[k.String()] = int(v.Int())
		return true
	})
	if verr != nil {
		return nil, verr
	}

	return req, nil
}
