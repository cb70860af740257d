package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/linguoquest/linguoquest/internal/arcade"
	"github.com/linguoquest/linguoquest/internal/bank"
	"github.com/linguoquest/linguoquest/internal/content"
	"github.com/linguoquest/linguoquest/internal/logging"
	"github.com/linguoquest/linguoquest/internal/metrics"
	"github.com/linguoquest/linguoquest/internal/transport/ws"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rounds over a websocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		log, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		defer log.Sync()

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		var qbank content.Bank = bank.NewMemory()
		if cfg.Redis.Addr != "" {
			client, err := bank.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				return err
			}
			defer client.Close()
			qbank = bank.NewRedis(client)
			log.Info("question bank on redis", zap.String("addr", cfg.Redis.Addr))
		}

		m := metrics.New()
		supplier, offline := newSupplier(ctx, cfg, st.LLMEventRepo(), qbank, log)
		if offline {
			log.Warn("serving built-in content only")
		}
		launcher := arcade.New(supplier, cfg.Player,
			arcade.WithScores(st.ScoreRepo()),
			arcade.WithMetrics(m),
			arcade.WithLogger(log),
		)

		server := &http.Server{
			Addr:        cfg.Server.Addr,
			Handler:     ws.Routes(ws.NewHandler(launcher, m, log), m),
			ReadTimeout: cfg.Server.ReadTimeout,
		}

		errc := make(chan error, 1)
		go func() {
			log.Info("listening", zap.String("addr", cfg.Server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
			close(errc)
		}()

		sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-errc:
			return err
		case <-sigCtx.Done():
			log.Info("shutting down")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides LINGUOQUEST_SERVER_ADDR)")
}
