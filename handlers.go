package otfconvert

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/nsip/otf-convert/internal/scheme"
)

//
// json view of a single scheme, subjects keep
// the scheme's definition order on the wire
//
type schemeView struct {
	Key      string          `json:"key"`
	MaxTotal float64         `json:"max_total"`
	Subjects orderedSubjects `json:"subjects"`
}

type orderedSubjects []scheme.Subject

func (o orderedSubjects) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBufferString("{")
	for i, subj := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(subj.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(map[string]interface{}{"points": subj.Points, "base": subj.Base})
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type orderedBreakdown []scheme.Converted

func (o orderedBreakdown) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBufferString("{")
	for i, c := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Subject)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type ConvertResponse struct {
	SchemeKey string           `json:"scheme_key"`
	Total     float64          `json:"total"`
	Breakdown orderedBreakdown `json:"breakdown"`
	MaxTotal  float64          `json:"max_total"`
}

func newSchemeView(s scheme.Scheme, maxTotal float64) schemeView {
	return schemeView{Key: s.Key, MaxTotal: maxTotal, Subjects: orderedSubjects(s.Subjects)}
}

func (s *Service) redirectToDocs(c echo.Context) error {
	return c.Redirect(http.StatusTemporaryRedirect, s.docsPath)
}

//
// lists the routes this service exposes
//
func (s *Service) docsHandler(c echo.Context) error {
	type route struct {
		Method string `json:"method"`
		Path   string `json:"path"`
	}
	routes := []route{}
	for _, r := range s.e.Routes() {
		routes = append(routes, route{Method: r.Method, Path: r.Path})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return c.JSON(http.StatusOK, map[string]interface{}{
		"title":   serviceTitle,
		"version": serviceVersion,
		"routes":  routes,
	})
}

func healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) listSchemesHandler(c echo.Context) error {
	entries := s.registry.List()
	views := make([]schemeView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newSchemeView(entry.Scheme, entry.MaxTotal))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"schemes": views})
}

func (s *Service) getSchemeHandler(c echo.Context) error {
	key := c.Param("key")
	sch, ok := s.registry.Lookup(key)
	if !ok {
		return &scheme.NotFoundError{Key: key}
	}
	return c.JSON(http.StatusOK, newSchemeView(sch, s.registry.MaxTotal(key)))
}

//
// converts raw scores under the requested scheme
// body: {"scheme_key": "...", "scores": {subject: number}, "bases": {subject: int}}
// bases is optional and overrides the full-mark base per subject
//
func (s *Service) convertHandler(c echo.Context) error {

	body, err := ioutil.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read request body")
	}

	req, err := parseConvertRequest(body)
	if err != nil {
		return err
	}

	result, err := s.registry.Convert(req.Scores, req.SchemeKey, req.Bases)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ConvertResponse{
		SchemeKey: req.SchemeKey,
		Total:     result.Total,
		Breakdown: orderedBreakdown(result.Breakdown),
		MaxTotal:  s.registry.MaxTotal(req.SchemeKey),
	})
}
