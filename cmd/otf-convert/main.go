package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	otfconvert "github.com/nsip/otf-convert"
	"github.com/peterbourgon/ff/v3"
)

func main() {

	fs := flag.NewFlagSet("otf-convert", flag.ExitOnError)
	var (
		_           = fs.String("config", "", "config file (optional), json format.")
		serviceName = fs.String("name", "", "name for this conversion service instance")
		serviceID   = fs.String("id", "", "id for this conversion service instance, leave blank to auto-generate a unique id")
		serviceHost = fs.String("host", "localhost", "name/address of host for this service")
		servicePort = fs.Int("port", 0, "port to run service on, if not specified will assign an available port automatically")
		schemeFile  = fs.String("schemes", "", "json scheme table to load instead of the built-in one (optional)")
		docsPath    = fs.String("docsPath", "/docs", "path of the documentation endpoint the root path redirects to")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
		ff.WithEnvVarPrefix("OTF_CONVERT_SRVC"),
	); err != nil {
		fmt.Printf("\nCannot parse otf-convert configuration:\n%s\n\n", err)
		os.Exit(1)
	}

	opts := []otfconvert.Option{
		otfconvert.Name(*serviceName),
		otfconvert.ID(*serviceID),
		otfconvert.Host(*serviceHost),
		otfconvert.Port(*servicePort),
		otfconvert.SchemeFile(*schemeFile),
		otfconvert.DocsPath(*docsPath),
	}

	srvc, err := otfconvert.New(opts...)
	if err != nil {
		fmt.Printf("\nCannot create otf-convert service:\n%s\n\n", err)
		os.Exit(1)
	}

	srvc.PrintConfig()

	// signal handler for shutdown
	closed := make(chan struct{})
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, os.Interrupt)
	go func() {
		<-c
		fmt.Println("\notf-convert shutting down")
		srvc.Shutdown()
		fmt.Println("otf-convert closed")
		close(closed)
	}()

	srvc.Start()

	// block until shutdown by sig-handler
	<-closed

}
