// Package server exposes the probe over HTTP: a check endpoint, a health
// probe, and a metrics endpoint, built on chi + cors.
package server

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dnstrust/dnstrust/config"
	"github.com/dnstrust/dnstrust/dnsclient"
	"github.com/dnstrust/dnstrust/log"
	"github.com/dnstrust/dnstrust/metrics"
	"github.com/dnstrust/dnstrust/nswalk"
	"github.com/dnstrust/dnstrust/report"
	"github.com/dnstrust/dnstrust/runid"
	"github.com/dnstrust/dnstrust/simplequery"
	"github.com/dnstrust/dnstrust/util"
	"github.com/dnstrust/dnstrust/walker"
)

const readHeaderTimeout = 20 * time.Second

// Server is the probe's HTTP surface.
type Server struct {
	cfg   *config.Config
	inner *http.Server
}

// New builds a Server listening on cfg.HTTP.Address.
func New(cfg *config.Config) *Server {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"GET"}}))

	r.Get("/healthz", handleHealthz)
	r.Get("/check/{domain}", handleCheck(cfg))
	r.Handle("/metrics", metrics.Handler())

	return &Server{
		cfg: cfg,
		inner: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           r,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// ListenAndServe blocks serving HTTP until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.inner.Shutdown(context.Background())
	}()

	log.Log().Infof("HTTP server listening on %s", s.inner.Addr)

	if err := s.inner.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// handleHealthz godoc
// @Summary  Liveness probe
// @Produce  plain
// @Success  200
// @Router   /healthz [get]
func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// handleCheck godoc
// @Summary  Run a DNSSEC chain-of-trust check against a domain
// @Produce  json
// @Param    domain  path  string  true  "fully qualified domain name"
// @Success  200  {object}  object
// @Router   /check/{domain} [get]
func handleCheck(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		domain := chi.URLParam(r, "domain")

		start := time.Now()
		runID := runid.New()

		ctx, cancel := context.WithTimeout(r.Context(), cfg.QueryTimeout.Duration*8)
		defer cancel()

		rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // NS/address selection, not cryptographic
		client := dnsclient.NewClient(rng)

		suite := report.NewTestSuite(runID)

		simpleCases, _ := simplequery.Run(ctx, client, domain)

		allCases := util.ConcatSlices(simpleCases, []*report.TestCase{
			nswalk.Run(ctx, client, rng, domain),
			walker.New(client, rng).Walk(ctx, domain),
		})

		for _, tc := range allCases {
			suite.AddTestCase(tc)
		}

		body, err := suite.ToJSON(true, time.Since(start).Milliseconds())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, err = w.Write(body)
		util.LogOnError(ctx, "unable to write check response", err)
	}
}
