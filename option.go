package otfconvert

import (
	"strings"

	"github.com/nsip/otf-convert/internal/scheme"
	"github.com/nsip/otf-convert/internal/util"
	"github.com/pkg/errors"
)

type Option func(*Service) error

//
// apply all supplied options to the service
// returns any error encountered while applying the options
//
func (s *Service) setOptions(options ...Option) error {
	for _, opt := range options {
		if err := opt(s); err != nil {
			return err
		}
	}
	return nil
}

//
// set a name for this service instance,
// if empty a short unique name is generated
//
func Name(name string) Option {
	return func(s *Service) error {
		if name != "" {
			s.serviceName = name
			return nil
		}
		s.serviceName = util.GenerateName()
		return nil
	}
}

//
// set an id for this service instance,
// if empty a unique id is generated
//
func ID(id string) Option {
	return func(s *Service) error {
		if id != "" {
			s.serviceID = id
			return nil
		}
		s.serviceID = util.GenerateID()
		return nil
	}
}

//
// host address the service binds to
//
func Host(hostName string) Option {
	return func(s *Service) error {
		if hostName != "" {
			s.serviceHost = hostName
			return nil
		}
		return errors.New("Host cannot be empty")
	}
}

//
// port the service listens on,
// 0 picks any available port
//
func Port(port int) Option {
	return func(s *Service) error {
		if port < 0 {
			return errors.Errorf("invalid port %d", port)
		}
		if port != 0 {
			s.servicePort = port
			return nil
		}
		p, err := util.AvailablePort()
		if err != nil {
			return err
		}
		s.servicePort = p
		return nil
	}
}

//
// scheme registry used for all conversions
//
func Schemes(r *scheme.Registry) Option {
	return func(s *Service) error {
		if r == nil {
			return errors.New("scheme registry cannot be nil")
		}
		s.registry = r
		s.schemeSource = "(supplied)"
		return nil
	}
}

//
// load the scheme registry from a json file,
// if path is empty the built-in table is used
//
func SchemeFile(path string) Option {
	return func(s *Service) error {
		if path == "" {
			s.registry = scheme.Default()
			s.schemeSource = "(built-in)"
			return nil
		}
		r, err := scheme.Load(path)
		if err != nil {
			return err
		}
		s.registry = r
		s.schemeSource = path
		return nil
	}
}

//
// path of the documentation endpoint, the root
// route redirects here
//
func DocsPath(path string) Option {
	return func(s *Service) error {
		if !strings.HasPrefix(path, "/") || path == "/" {
			return errors.Errorf("docs path %q must start with / and not be the root", path)
		}
		s.docsPath = path
		return nil
	}
}
