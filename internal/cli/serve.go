package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/trustpane/pkg/buildinfo"
	"github.com/matzehuels/trustpane/pkg/cache"
	"github.com/matzehuels/trustpane/pkg/canvas"
	"github.com/matzehuels/trustpane/pkg/config"
	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/gfx"
	"github.com/matzehuels/trustpane/pkg/layout"
	"github.com/matzehuels/trustpane/pkg/shell"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command exposing layouts over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
		ttl       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

Endpoints:
  GET  /healthz                  liveness probe
  GET  /version                  build information
  GET  /layouts/{kind}           canvas geometry as JSON (?trust=&height=)
  GET  /layouts/{kind}/png       rendered image (?trust=&height=&labels=)
  GET  /live                     canvases of the shared live shell
  POST /live/resize?height=N     resize the live layout

The live shell holds one layout of the configured kind and is shared by all
clients. Rendered images are cached in Redis when --redis-addr is set, in the
local cache directory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			store, err := openServeCache(ctx, redisAddr, noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			srv, err := newServer(cfg, store, ttl, logger)
			if err != nil {
				return err
			}
			return serve(ctx, addr, srv.routes(), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for the render cache, e.g. localhost:6379")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().DurationVar(&ttl, "cache-ttl", time.Hour, "render cache entry lifetime")

	return cmd
}

func openServeCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache || redisAddr == "" {
		return newCache(noCache)
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
	if err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", redisAddr, err)
	}
	return rc, nil
}

// serve runs the HTTP server until ctx is cancelled, then drains it.
func serve(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	httpSrv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Listening", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// =============================================================================
// server
// =============================================================================

type server struct {
	cfg    config.Config
	store  cache.Cache
	ttl    time.Duration
	logger *log.Logger

	live       *shell.Shell
	liveHandle shell.Handle
}

func newServer(cfg config.Config, store cache.Cache, ttl time.Duration, logger *log.Logger) (*server, error) {
	r, err := gfx.NewRaster(cfg.Display, gfx.WithPalette(cfg.Render.Light, cfg.Render.Dark))
	if err != nil {
		return nil, err
	}
	live, err := shell.New(r, cfg, shell.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	h, err := live.CreateLayout(cfg.LayoutKind(), canvas.Trust(cfg.Layout.BaseTrust))
	if err != nil {
		return nil, err
	}
	if err := live.Clear(h); err != nil {
		return nil, err
	}
	return &server{cfg: cfg, store: store, ttl: ttl, logger: logger, live: live, liveHandle: h}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, buildinfo.Get())
	})
	r.Route("/layouts/{kind}", func(r chi.Router) {
		r.Get("/", s.handleLayout)
		r.Get("/png", s.handlePNG)
	})
	r.Get("/live", s.handleLive)
	r.Post("/live/resize", s.handleLiveResize)
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()))
	})
}

// sceneRequest parses {kind} and the trust/height query parameters.
// Heights may repeat or be comma separated.
func (s *server) sceneRequest(r *http.Request) (sceneOpts, error) {
	kind, err := layout.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		return sceneOpts{}, err
	}
	opts := sceneOpts{Kind: kind, BaseTrust: s.cfg.Layout.BaseTrust, Check: true}

	q := r.URL.Query()
	if v := q.Get("trust"); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil {
			return sceneOpts{}, errors.New(errors.ErrCodeInvalidInput, "trust %q is not a number", v)
		}
		opts.BaseTrust = t
	}
	for _, v := range q["height"] {
		for _, part := range strings.Split(v, ",") {
			h, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return sceneOpts{}, errors.New(errors.ErrCodeInvalidInput, "height %q is not a number", part)
			}
			opts.Heights = append(opts.Heights, h)
		}
	}
	return opts, nil
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.sceneRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sc, err := buildScene(gfx.NewRecorder(s.cfg.Display), s.cfg, opts, s.logger)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *server) handlePNG(w http.ResponseWriter, r *http.Request) {
	opts, err := s.sceneRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ropts := renderOpts{sceneOpts: opts, Labels: s.cfg.Render.Labels}
	if v := r.URL.Query().Get("labels"); v != "" {
		ropts.Labels, _ = strconv.ParseBool(v)
	}

	ctx := r.Context()
	key := renderKey(s.cfg, ropts)
	png, hit, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", "err", err)
	}
	if !hit {
		png, _, err = renderScene(s.cfg, ropts, s.logger)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.store.Set(ctx, key, png, s.ttl); err != nil {
			s.logger.Warn("cache write failed", "err", err)
		}
	}

	w.Header().Set("Content-Type", "image/png")
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.Write(png)
}

// liveState is the JSON view of the shared shell.
type liveState struct {
	Kind    string          `json:"kind"`
	Regions []layout.Region `json:"regions"`
}

func (s *server) liveState() (liveState, error) {
	kind, err := s.live.Kind(s.liveHandle)
	if err != nil {
		return liveState{}, err
	}
	regions, err := s.live.Regions(s.liveHandle)
	if err != nil {
		return liveState{}, err
	}
	return liveState{
		Kind:    kind.String(),
		Regions: append([]layout.Region{statusRegion(s.live.Status())}, regions...),
	}, nil
}

func (s *server) handleLive(w http.ResponseWriter, _ *http.Request) {
	st, err := s.liveState()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *server) handleLiveResize(w http.ResponseWriter, r *http.Request) {
	height, err := strconv.Atoi(r.URL.Query().Get("height"))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "height must be a number"))
		return
	}
	corner, err := s.live.Resize(s.liveHandle, height)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, step{Height: height, Corner: corner})
}

// =============================================================================
// Responses
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, httpStatus(code), errorBody{Code: string(code), Message: errors.UserMessage(err)})
}

// httpStatus maps error codes to HTTP status codes.
func httpStatus(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeDegenerateGeometry:
		return http.StatusBadRequest
	case errors.ErrCodeTrustViolation:
		return http.StatusForbidden
	case errors.ErrCodeCapacityExceeded:
		return http.StatusInsufficientStorage
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeBackendFailure:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
