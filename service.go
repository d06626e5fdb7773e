package otfconvert

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nsip/otf-convert/internal/scheme"
	"github.com/nsip/otf-convert/internal/util"
)

const (
	serviceTitle   = "otf-convert score conversion api"
	serviceVersion = "1.0.0"
)

type Service struct {
	// embedded web server to handle conversion requests
	e *echo.Echo
	// the unique name of this service when running multiple instances
	serviceName string
	// the unique id of this service when running multiple instances
	serviceID string
	// the host address this service instance is running on
	serviceHost string
	// the port that this service instance is running on
	servicePort int
	// read-only table of conversion schemes
	registry *scheme.Registry
	// where the scheme table was loaded from
	schemeSource string
	// route the root path redirects to
	docsPath string
}

//
// create a new service instance
//
func New(options ...Option) (*Service, error) {

	srvc := Service{
		serviceHost: "localhost",
		docsPath:    "/docs",
	}

	if err := srvc.setOptions(options...); err != nil {
		return nil, err
	}
	if err := srvc.setDefaults(); err != nil {
		return nil, err
	}

	srvc.e = echo.New()
	srvc.e.HideBanner = true
	srvc.e.Logger.SetLevel(log.INFO)
	srvc.e.HTTPErrorHandler = errorHandler
	srvc.e.Use(middleware.Recover())
	srvc.e.Use(middleware.Logger())
	srvc.e.Use(middleware.BodyLimit("1M"))
	// open to any origin, intended for local use by browser front ends
	srvc.e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
	}))

	srvc.e.GET("/", srvc.redirectToDocs)
	srvc.e.GET(srvc.docsPath, srvc.docsHandler)
	// add pingable method to know we're up
	srvc.e.GET("/health", healthHandler)
	srvc.e.GET("/schemes", srvc.listSchemesHandler)
	srvc.e.GET("/schemes/:key", srvc.getSchemeHandler)
	srvc.e.POST("/convert", srvc.convertHandler)

	return &srvc, nil
}

//
// fill in anything the options left unset
//
func (s *Service) setDefaults() error {
	if s.registry == nil {
		s.registry = scheme.Default()
		s.schemeSource = "(built-in)"
	}
	if s.serviceName == "" {
		s.serviceName = util.GenerateName()
	}
	if s.serviceID == "" {
		s.serviceID = util.GenerateID()
	}
	if s.servicePort == 0 {
		p, err := util.AvailablePort()
		if err != nil {
			return err
		}
		s.servicePort = p
	}
	return nil
}

//
// start the service running
//
func (s *Service) Start() {

	address := fmt.Sprintf("%s:%d", s.serviceHost, s.servicePort)
	go func(addr string) {
		if err := s.e.Start(addr); err != nil && err != http.ErrServerClosed {
			s.e.Logger.Info("error starting server: ", err, ", shutting down...")
			// attempt clean shutdown by raising sig int
			p, _ := os.FindProcess(os.Getpid())
			p.Signal(os.Interrupt)
		}
	}(address)

}

//
// shut the server down gracefully
//
func (s *Service) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.e.Shutdown(ctx); err != nil {
		fmt.Println("could not shut down server cleanly: ", err)
		s.e.Logger.Fatal(err)
	}

}

func (s *Service) PrintConfig() {

	fmt.Println("\n\tOTF-Convert Service Configuration")
	fmt.Println("\t---------------------------------")
	fmt.Println()

	s.printID()
	s.printSchemeConfig()

}

func (s *Service) printID() {
	fmt.Println("\tservice name:\t\t", s.serviceName)
	fmt.Println("\tservice ID:\t\t", s.serviceID)
	fmt.Println("\tservice host:\t\t", s.serviceHost)
	fmt.Println("\tservice port:\t\t", s.servicePort)
	fmt.Println("\tdocs path:\t\t", s.docsPath)
}

func (s *Service) printSchemeConfig() {
	fmt.Println("\tscheme table:\t\t", s.schemeSource)
	for _, entry := range s.registry.List() {
		fmt.Printf("\t  %s\t(%d subjects, max %g)\n", entry.Scheme.Key, len(entry.Scheme.Subjects), entry.MaxTotal)
	}
}
