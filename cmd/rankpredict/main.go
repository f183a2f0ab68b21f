package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-rankpredict/internal/config"
	"github.com/goliatone/go-rankpredict/internal/logger"
	"github.com/goliatone/go-rankpredict/internal/metrics"
	"github.com/goliatone/go-rankpredict/pkg/model"
	"github.com/goliatone/go-rankpredict/pkg/orchestrator"
	"github.com/goliatone/go-rankpredict/pkg/render"
	"github.com/goliatone/go-rankpredict/pkg/renderers/tui"
	"github.com/goliatone/go-rankpredict/pkg/surface"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("rankpredict: %v", err)
	}
}

// fieldValues collects repeated -set name=value flags.
type fieldValues map[string]string

func (f fieldValues) String() string {
	pairs := make([]string, 0, len(f))
	for name, value := range f {
		pairs = append(pairs, name+"="+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (f fieldValues) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", raw)
	}
	f[name] = value
	return nil
}

type cliOptions struct {
	configFile  string
	envFile     string
	flow        string
	format      string
	output      string
	metricsAddr string
	interactive bool
	strict      bool
	values      fieldValues
}

func parseFlags(args []string) (cliOptions, error) {
	opts := cliOptions{values: fieldValues{}}
	fs := flag.NewFlagSet("rankpredict", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", "", "config file (rankpredict.yaml is searched when empty)")
	fs.StringVar(&opts.envFile, "env", ".env", "dotenv file loaded before the environment")
	fs.StringVar(&opts.flow, "flow", string(model.FlowList), "flow to run: list or specific")
	fs.StringVar(&opts.format, "format", "", "output format: text, html or json (overrides output.format)")
	fs.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (overrides metrics.addr)")
	fs.BoolVar(&opts.interactive, "interactive", false, "prompt for every field in the terminal")
	fs.BoolVar(&opts.strict, "strict", false, "reject invalid forms before sending them")
	fs.Var(opts.values, "set", "field value as name=value; repeatable")
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	kind, err := model.ParseFlowKind(opts.flow)
	if err != nil {
		return err
	}

	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}
	cfg, err := config.Load(config.Options{ConfigFile: opts.configFile, EnvFiles: envFiles})
	if err != nil {
		return err
	}
	format := cfg.Output.Format
	if opts.format != "" {
		format = strings.ToLower(strings.TrimSpace(opts.format))
	}
	metricsAddr := cfg.Metrics.Addr
	if opts.metricsAddr != "" {
		metricsAddr = opts.metricsAddr
	}

	log, err := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	log = log.WithFields(map[string]any{"flow": string(kind)})

	recorder := metrics.New()
	if metricsAddr != "" {
		shutdown := serveMetrics(metricsAddr, recorder, log)
		defer shutdown()
	}

	orchOpts := []orchestrator.Option{
		orchestrator.WithBaseURL(cfg.Service.BaseURL),
		orchestrator.WithHTTPClient(&http.Client{Timeout: cfg.Service.Timeout}),
		orchestrator.WithLogger(log),
		orchestrator.WithMetrics(recorder),
		orchestrator.WithDefaultRenderer(format),
	}
	if opts.strict {
		orchOpts = append(orchOpts, orchestrator.WithStrictValidation())
	}
	orch := orchestrator.New(orchOpts...)

	spec, err := orch.FormSpec(kind)
	if err != nil {
		return err
	}

	if opts.interactive {
		renderer, err := orch.Registry().Get(format)
		if err != nil {
			return err
		}
		s := tui.NewSurface(spec, tui.WithOutput(stdout), tui.WithRenderer(renderer))
		ctrl, err := orch.NewFlow(ctx, kind, s.Controls(), s)
		if err != nil {
			return err
		}
		return tui.Run(ctx, ctrl, s)
	}

	mem := surface.NewMemory(spec)
	ctrl, err := orch.NewFlow(ctx, kind, mem.Controls(), mem)
	if err != nil {
		return err
	}
	if err := ctrl.Start(ctx); err != nil {
		log.WithError(err).Warn("options unavailable", nil)
	}
	for name, value := range opts.values {
		if err := mem.Set(name, value); err != nil {
			return fmt.Errorf("-set %s: %w", name, err)
		}
	}

	state, submitErr := ctrl.Submit(ctx)
	last, _ := mem.Last()
	out, err := orch.Render(ctx, format, render.Page{
		Flow:         spec,
		Form:         mem.Controls().FormState(),
		Options:      ctrl.Options(),
		Presentation: last,
	})
	if err != nil {
		return err
	}
	if err := writeOutput(stdout, opts.output, out); err != nil {
		return err
	}
	if submitErr != nil {
		return fmt.Errorf("submit (%s): %w", state.Phase(), submitErr)
	}
	return nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	_, err := fmt.Fprintf(stdout, "Result written to %s\n", path)
	return err
}

func serveMetrics(addr string, recorder *metrics.Recorder, log logger.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped", map[string]any{"addr": addr})
		}
	}()
	log.Info("serving metrics", map[string]any{"addr": addr})
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
