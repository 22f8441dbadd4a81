package main

import (
	"context"
	"log/syslog"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	logrusys "github.com/sirupsen/logrus/hooks/syslog"
	"github.com/splunk-releases/releases/config"
	"github.com/splunk-releases/releases/transport/cli"
)

func setupLogger(level logrus.Level, debug bool, useSyslog bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.Stamp,
		FullTimestamp:   true,
	})
	logrus.SetLevel(level)
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if !useSyslog {
		return
	}

	syslogHook, err := logrusys.NewSyslogHook("", "", syslog.LOG_USER, "splunkreleases")
	if err != nil {
		logrus.WithError(err).Fatalln("Could not create syslog hook.")
		return
	}
	logrus.AddHook(syslogHook)
}

func main() {
	if err := config.LoadEnvFiles("."); err != nil {
		logrus.WithError(err).Warningln("Could not load env files.")
	}
	cfg := config.FromEnv()
	setupLogger(logrus.WarnLevel, cfg.Debug, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand(cfg).ExecuteContext(ctx)
	stop()
	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
	}
	logrus.Exit(cli.ExitCode(err))
}
