package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hypergraph/internal/server"
	"github.com/matzehuels/hypergraph/pkg/observability"
)

// serveCommand creates the serve command for the HTTP host.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr   string
		models string
		load   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve documents over HTTP with a live event stream",
		Long: `Serve documents over HTTP.

Documents come from the configured store (a models directory by default, or
MongoDB). One document is live at a time; drag requests move its vertices and
every visual update is pushed to GET /events as server-sent events.

Routes:
  GET  /documents                 list stored documents
  GET  /documents/{name}          raw stored document
  POST /documents/{name}/load     make a document live
  POST /documents/{name}/save     persist the live document
  GET  /document                  live document
  GET  /render.svg                live scene as SVG (?anchors=true&scale=N)
  GET  /vertices/{id}/anchors     world-space anchors of a vertex
  POST /drag/start|tick|end       drag interaction
  GET  /events                    event stream
  GET  /state, /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, models, load)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&models, "models", "", "models directory (overrides the configured store)")
	cmd.Flags().StringVar(&load, "load", "", "document to make live at startup")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, models, load string) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	logger := c.Logger
	if cfg.Server.LogFile != "" {
		file := rotatingFile(cfg.Server.LogFile, cfg.Server.MaxLogSize, cfg.Server.MaxLogAge)
		defer file.Close()
		logger = newLogger(io.MultiWriter(os.Stderr, file), c.Logger.GetLevel())
	}
	if logger.GetLevel() <= log.DebugLevel {
		observability.Use(observability.NewLogHooks(logger))
		defer observability.Reset()
	}

	store, err := c.newStore(ctx, models)
	if err != nil {
		return err
	}

	opts, err := c.engineOptions()
	if err != nil {
		store.Close()
		return err
	}
	opts.Logger = logger

	srv, err := server.New(server.Config{
		Addr:             addr,
		Engine:           opts,
		Store:            store,
		Logger:           logger,
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		PreviewCacheSize: cfg.Server.PreviewCacheMB << 20,
	})
	if err != nil {
		store.Close()
		return err
	}
	defer srv.Close()

	if load == "" {
		if p, err := c.loadPrefs(ctx); err == nil && p.HypergraphName != "" {
			load = p.HypergraphName
		}
	}
	if load != "" {
		if _, err := srv.LoadDocument(ctx, load); err != nil {
			logger.Warn("initial document not loaded", "name", load, "error", err)
		}
	}

	printInfo("Serving on %s", StyleHighlight.Render(addr))
	return srv.Run(ctx)
}
