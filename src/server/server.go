package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/Iborrareddy/js-url-checker/src/aggregator"
	"github.com/Iborrareddy/js-url-checker/src/backoff"
	"github.com/Iborrareddy/js-url-checker/src/config"
	"github.com/Iborrareddy/js-url-checker/src/core"
	"github.com/Iborrareddy/js-url-checker/src/dbstorage"
	"github.com/Iborrareddy/js-url-checker/src/downloader"
	"github.com/Iborrareddy/js-url-checker/src/entity"
	"github.com/Iborrareddy/js-url-checker/src/enum"
	"github.com/Iborrareddy/js-url-checker/src/pool"
	"github.com/Iborrareddy/js-url-checker/src/probe"
	"github.com/Iborrareddy/js-url-checker/src/report"
	"github.com/Iborrareddy/js-url-checker/src/util"
	"github.com/Iborrareddy/js-url-checker/src/validator"
	"github.com/Iborrareddy/js-url-checker/src/verify"
)

const userAgent = "Mozilla/5.0 (JS-URL-Checker)"

type Server struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger
	config *config.Config

	dbStorage *dbstorage.SimpleDBStorage
}

func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Server) initLog() {
	var logger = log.New()
	logger.SetFormatter(&log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stdout)

	if s.config.Log.Context {
		logger.SetReportCaller(true)
	}

	if logLevel, err := log.ParseLevel(s.config.Log.Level); err != nil {
		logger.SetLevel(log.InfoLevel)
	} else {
		logger.SetLevel(logLevel)
	}
	s.logger = logger
}

func (s *Server) Start(ctx *cli.Context) error {
	cfg := config.Default()
	if configPath := ctx.String("config"); configPath != "" {
		if err := util.ReadConfig(configPath, cfg); err != nil {
			return fmt.Errorf("fail to load config, err: %w", err)
		}
	}
	applyFlags(ctx, cfg)
	s.config = cfg

	s.initLog()

	tasks, err := core.LoadSeedURLs(cfg.Core.InputPath)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("fail to read input file: %v", err), 1)
	}
	if len(tasks) == 0 {
		s.logger.Warn("no urls found in input")
		return nil
	}

	if cfg.Database.URL != "" {
		db, err := dbstorage.NewSimpleDBStorage(cfg.Database.URL)
		if err != nil {
			s.logger.WithError(err).Fatal("fail to create dbstorage handler")
		}
		s.dbStorage = db
		defer s.dbStorage.Close()
	}

	go s.trapSignals()

	runCtx := s.ctx
	if cfg.Core.RunTimeout > 0 {
		var cancelRun context.CancelFunc
		runCtx, cancelRun = context.WithTimeout(s.ctx, time.Duration(cfg.Core.RunTimeout)*time.Second)
		defer cancelRun()
	}

	prober := probe.NewSimpleProber(probe.Options{
		Timeout:      time.Duration(cfg.Checker.Timeout) * time.Second,
		MaxRedirects: int(cfg.Checker.MaxRedirects),
		SniffBytes:   int(cfg.Checker.SniffBytes),
		BodyCap:      cfg.Download.MaxBytes + 1, // one spare byte so the cap itself is detectable
		KeepBody:     cfg.Download.Enabled,
		UserAgent:    userAgent,
	})
	verifier := verify.NewSimpleVerifier(cfg.Checker.Strict)
	policy := backoff.Policy{
		Base: time.Duration(cfg.Checker.BackoffMs) * time.Millisecond,
		Cap:  time.Duration(cfg.Checker.BackoffCapMs) * time.Millisecond,
	}
	v := validator.NewSimpleValidator(prober, verifier, policy, validator.Options{
		MaxRetries: int(cfg.Checker.Retries),
		MaxJitter:  time.Duration(cfg.Checker.JitterMs) * time.Millisecond,
		WantBody:   cfg.Download.Enabled,
	}, nil, s.logger)

	agg := aggregator.New(tasks)

	var dl downloader.Downloader
	if cfg.Download.Enabled {
		dl = downloader.NewSimpleDownloader(downloader.Options{
			Dir:               cfg.Download.Dir,
			MaxBytes:          cfg.Download.MaxBytes,
			IncludeRedirected: cfg.Download.IncludeRedirected,
		}, s.logger)
	}

	p := pool.NewSimplePool(s.logger, int(cfg.Checker.Worker), cfg.Checker.RatePerSec,
		func(ctx context.Context, task entity.URLTask) {
			verdict, body := v.Validate(ctx, task)
			res := entity.CheckedResult{Task: task, Verdict: verdict}
			if dl != nil {
				out := dl.Download(task, verdict, body)
				res.Download = &out
			}
			agg.Add(res)
			s.logResult(res)
		})

	s.logger.WithField("urls", len(tasks)).WithField("workers", cfg.Checker.Worker).
		Info("checking urls")

	runErr := p.Run(runCtx, tasks)

	results := agg.Results()
	if err := report.WriteLists(cfg.Report.ActivePath, cfg.Report.InactivePath, results); err != nil {
		s.logger.WithError(err).Error("fail to write url lists")
	}
	if err := report.WriteCSV(cfg.Report.CSVPath, results); err != nil {
		s.logger.WithError(err).Error("fail to write csv report")
	}
	if s.dbStorage != nil {
		if err := s.dbStorage.StoreResults(results); err != nil {
			s.logger.WithError(err).Error("fail to store check history")
		}
	}
	s.summarize(results, agg.Completed())

	if runErr != nil {
		// cancelled or timed out: partial results are already written, the
		// exit code tells the caller the run did not finish
		return cli.NewExitError(fmt.Sprintf("run aborted: %v", runErr), 1)
	}
	return nil
}

func (s *Server) trapSignals() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c
	s.logger.Warn("interrupt signal, aborting run")
	s.cancel()
}

func (s *Server) logResult(res entity.CheckedResult) {
	fields := log.Fields{
		"url":      res.Task.Raw,
		"verdict":  res.Verdict.Kind.String(),
		"status":   res.Verdict.StatusCode,
		"attempts": res.Verdict.Attempts,
	}
	if res.Verdict.Detail != "" {
		fields["detail"] = res.Verdict.Detail
	}
	if res.Download != nil && res.Download.Written() {
		fields["saved"] = res.Download.Path
	}
	if res.Verdict.Kind.Active() {
		s.logger.WithFields(fields).Info("active")
	} else {
		s.logger.WithFields(fields).Info("inactive")
	}
}

func (s *Server) summarize(results []entity.CheckedResult, completed int) {
	counts := map[enum.VerdictKind]int{}
	for _, r := range results {
		counts[r.Verdict.Kind]++
	}
	s.logger.WithFields(log.Fields{
		"total":      len(results),
		"completed":  completed,
		"live":       counts[enum.VerdictLive],
		"dead":       counts[enum.VerdictDead],
		"redirected": counts[enum.VerdictRedirected],
		"blocked":    counts[enum.VerdictBlocked],
		"ambiguous":  counts[enum.VerdictAmbiguous],
		"cancelled":  counts[enum.VerdictCancelled],
	}).Info("run finished")
}

// applyFlags lets command line switches override file values, so the tool
// stays usable with no config file at all.
func applyFlags(ctx *cli.Context, cfg *config.Config) {
	if ctx.IsSet("input") {
		cfg.Core.InputPath = ctx.String("input")
	}
	if ctx.IsSet("workers") {
		cfg.Checker.Worker = uint32(ctx.Int("workers"))
	}
	if ctx.IsSet("timeout") {
		cfg.Checker.Timeout = uint32(ctx.Int("timeout"))
	}
	if ctx.IsSet("retries") {
		cfg.Checker.Retries = uint32(ctx.Int("retries"))
	}
	if ctx.IsSet("backoff") {
		cfg.Checker.BackoffMs = uint32(ctx.Int("backoff"))
	}
	if ctx.IsSet("strict") {
		cfg.Checker.Strict = ctx.Bool("strict")
	}
	if ctx.IsSet("download") {
		cfg.Download.Enabled = ctx.Bool("download")
	}
	if ctx.IsSet("outdir") {
		cfg.Download.Dir = ctx.String("outdir")
	}
	if ctx.IsSet("csv") {
		cfg.Report.CSVPath = ctx.String("csv")
	}
	if ctx.IsSet("run-timeout") {
		cfg.Core.RunTimeout = uint32(ctx.Int("run-timeout"))
	}
}
