package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/sanverite/netring/internal/api"
	"github.com/sanverite/netring/internal/core"
	"github.com/sanverite/netring/internal/output"
	"github.com/sanverite/netring/internal/ports"
	"github.com/sanverite/netring/internal/scan"
)

func main() {
	var (
		portSpec      = flag.String("p", "80", "ports to probe: comma list and/or a-b ranges")
		count         = flag.Int("count", 3, "attempts per target")
		timeoutMS     = flag.Int("timeout", 2000, "TCP connect timeout in milliseconds")
		ping          = flag.Bool("ping", false, "enable ICMP echo probing in addition to TCP")
		pingTimeoutMS = flag.Int("ping-timeout", 1000, "ICMP reply timeout in milliseconds")
		once          = flag.Bool("once", false, "run a single cycle and exit")
		interval      = flag.Duration("interval", scan.DefaultInterval, "pause between cycles")
		jsonOut       = flag.Bool("json", false, "emit pretty JSON instead of the human summary")
		quiet         = flag.Bool("quiet", false, "suppress banner and waiting notices")
		maxParallel   = flag.Int64("max-parallel", scan.DefaultMaxParallel, "maximum concurrent probes")
		ratePerSec    = flag.Float64("rate", 0, "probe launches per second (0 = unpaced)")
		serveAddr     = flag.String("serve", "", "optional HTTP status listen address (e.g. "+api.DefaultAddress+")")
		verbose       = flag.Bool("v", false, "verbose structured logging to stderr")
	)
	flag.Parse()
	hosts := flag.Args()

	logger := zap.NewNop()
	if *verbose {
		dev, err := zap.NewDevelopment()
		if err == nil {
			logger = dev
		}
	}
	defer func() { _ = logger.Sync() }()

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	tcpPorts := ports.Parse(*portSpec)

	console := &output.ConsoleSink{W: os.Stdout, Quiet: *quiet}
	var sink scan.Sink = console
	if *jsonOut {
		sink = &output.JSONSink{W: os.Stdout}
	}

	state := core.NewState()
	runner, err := scan.New(scan.Config{
		Hosts:       hosts,
		Ports:       tcpPorts,
		Ping:        *ping,
		Count:       *count,
		TCPTimeout:  time.Duration(*timeoutMS) * time.Millisecond,
		PingTimeout: time.Duration(*pingTimeoutMS) * time.Millisecond,
		Once:        *once,
		Interval:    *interval,
		MaxParallel: *maxParallel,
		Rate:        *ratePerSec,
	}, sink, state, logger)
	if err != nil {
		switch {
		case errors.Is(err, scan.ErrNoHosts):
			fmt.Fprintln(os.Stderr, "error: at least one host argument is required")
		case errors.Is(err, scan.ErrNoWork):
			fmt.Fprintln(os.Stderr, "error: provide at least one port (-p) or enable -ping")
		default:
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *serveAddr != "" {
		srv := api.NewServer(state, api.ServerOptions{Addr: *serveAddr, Logger: logger})
		srv.Start()
		defer func() { _ = srv.Stop(context.Background()) }()
	}

	if !*jsonOut {
		console.Banner(hosts, tcpPorts, *ping)
	}

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
