package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/seisio/gsewave/cmd/gsewave-server/api"
	log "github.com/sirupsen/logrus"
)

func main() {
	// command line
	opts := readCommandLineOptions()

	// configuration
	conf := readConfigurationFile(opts.ConfigPath)
	if opts.SpoolPath != "" {
		conf.SpoolPath = opts.SpoolPath
	}
	if conf.SpoolPath == "" {
		log.Fatal("no spool directory configured")
	}

	logAddBackends(conf)

	stat, err := os.Stat(conf.SpoolPath)
	if err != nil || !stat.IsDir() {
		log.WithField("path", conf.SpoolPath).Fatal("spool path is not a directory")
	}

	// http
	r := mux.NewRouter()
	api.Register(api.NewSpool(conf.SpoolPath), r)

	srv := &http.Server{
		Addr:    conf.API.Address,
		Handler: r,

		ReadHeaderTimeout: conf.API.ServeTimeout,
		ReadTimeout:       conf.API.ServeTimeout,
		WriteTimeout:      conf.API.ServeTimeout,
		IdleTimeout:       conf.API.ServeTimeout,
	}

	go func() {
		log.WithField("address", conf.API.Address).Info("serving waveform api")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown did not complete cleanly")
	}
}
