package main

import (
	"context"
	"fmt"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/sirupsen/logrus"
	"github.com/splunk-releases/releases/config"
	"github.com/splunk-releases/releases/inmem"
	"github.com/splunk-releases/releases/metrics"
	"github.com/splunk-releases/releases/transport/rest"
)

func printBanner() {
	figure.NewColorFigure("splunk releases", "doom", "green", true).Print()
	color.New(color.FgCyan).Println("Catalog of Splunk Enterprise and Universal Forwarder downloads")
}

func listenAndServe(cfg config.Config) (func() error, error) {
	m := metrics.New("splunkreleases")
	cache := inmem.NewCatalogCache(m.InstrumentSource(catalogBuilder(cfg)))
	releaseController := rest.ReleaseController{Store: cache, Limits: cfg.API.Limits}

	server := fiber.New(fiber.Config{
		ReadTimeout:           10 * time.Second,
		ErrorHandler:          rest.ErrorHandler,
		DisableStartupMessage: true,
	})
	server.Use(rest.LogHandler(), rest.MetricsHandler(m))
	server.Get("/status", monitor.New())
	server.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	releaseController.InstallTo(server)
	server.Use(rest.NotFoundHandler)

	ln, err := rest.Listen("", cfg.API.Port, cfg.API.Retries)
	if err != nil {
		return nil, err
	}
	go func() {
		if err := server.Listener(ln); err != nil {
			logrus.WithError(err).Errorln("Api server stopped.")
		}
	}()
	return server.Shutdown, nil
}

func runAPI(ctx context.Context, cfg config.Config) error {
	setupLogger(logrus.InfoLevel, cfg.Debug, cfg.API.Syslog)
	printBanner()

	logrus.Infoln("Starting listening... To shut down use ^C")
	shutdown, err := listenAndServe(cfg)
	if err != nil {
		return fmt.Errorf("start api: %w", err)
	}

	<-ctx.Done()

	logrus.Infoln("Shutting down...")
	if err := shutdown(); err != nil {
		logrus.WithError(err).Warningln("Fiber shutdown failed.")
	}
	return nil
}
