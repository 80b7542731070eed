package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/SylvanB/meme.crabenjoyer.xyz/api"
	"github.com/SylvanB/meme.crabenjoyer.xyz/config"
	"github.com/SylvanB/meme.crabenjoyer.xyz/fetcher"
	"github.com/SylvanB/meme.crabenjoyer.xyz/logger"
	"github.com/SylvanB/meme.crabenjoyer.xyz/metrics"
	"github.com/SylvanB/meme.crabenjoyer.xyz/publisher"
	"github.com/SylvanB/meme.crabenjoyer.xyz/worker"
)

// ErrNoData is returned by the fetch command when the fetch failed. The
// cause has already been logged.
var ErrNoData = errors.New("no recent memes available")

func newRootCmd() *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:           "memes",
		Short:         "Fetch the memes uploaded recently",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("base-url", "", "origin serving GET /meme (env MEMES_BASE_URL)")
	root.PersistentFlags().String("log-level", "", "debug, info, warn or error (env MEMES_LOG_LEVEL)")
	bindFlag(v, config.KeyBaseURL, root.PersistentFlags().Lookup("base-url"))
	bindFlag(v, config.KeyLogLevel, root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newFetchCmd(v), newWatchCmd(v))
	return root
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func setup(v *viper.Viper, cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cmd.ErrOrStderr(), cfg.LogLevel), nil
}

func newFetchCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch recent memes once and print them as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, l, err := setup(v, cmd)
			if err != nil {
				return err
			}

			f := fetcher.NewFetcher(cfg.BaseURL, cfg.RequestTimeout, l)
			data, ok := f.GetRecentMemes(cmd.Context())
			if !ok {
				return ErrNoData
			}

			out, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return errors.Wrap(err, "encoding output")
			}
			_, err = cmd.OutOrStdout().Write(append(out, '\n'))
			return err
		},
	}
}

func newWatchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll recent memes and publish every result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, l, err := setup(v, cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, cfg, l)
		},
	}

	cmd.Flags().Duration("interval", 0, "poll interval (env MEMES_POLL_INTERVAL)")
	cmd.Flags().String("nats-url", "", "publish results to this NATS server (env MEMES_NATS_URL)")
	cmd.Flags().String("ops-addr", "", "health and metrics listen address (env MEMES_OPS_ADDR)")
	bindFlag(v, config.KeyPollInterval, cmd.Flags().Lookup("interval"))
	bindFlag(v, config.KeyNATSUrl, cmd.Flags().Lookup("nats-url"))
	bindFlag(v, config.KeyOpsAddr, cmd.Flags().Lookup("ops-addr"))

	return cmd
}

func runWatch(ctx context.Context, cfg *config.Config, l *log.Logger) error {
	metrics.Init("memes-client", version)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var pub publisher.Publisher = publisher.NewLogPublisher(l)
	if cfg.NATSUrl != "" {
		np, err := publisher.NewNATSPublisher(cfg.NATSUrl, cfg.NATSSubject, l)
		if err != nil {
			return err
		}
		l.Info("Connected to NATS", "url", cfg.NATSUrl, "subject", cfg.NATSSubject)
		pub = np
	}
	defer pub.Close()

	srv := api.NewServer(cfg.OpsAddr, l)
	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.ListenAndServe()
	}()
	srv.SetReady(true)

	f := fetcher.NewFetcher(cfg.BaseURL, cfg.RequestTimeout, l)
	w := worker.NewWorker(f, pub, cfg.PollInterval, version, l)

	workerErr := make(chan error, 1)
	go func() {
		workerErr <- w.Start(ctx)
	}()

	var runErr error
	select {
	case err := <-srvErr:
		if err == nil {
			err = errors.New("stopped unexpectedly")
		}
		runErr = errors.Wrap(err, "ops server")
		cancel()
		<-workerErr
	case <-workerErr:
		l.Info("Received shutdown signal, stopping...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("Ops server forced to shutdown", "err", err)
	}

	return runErr
}
