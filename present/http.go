// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package present

import (
	"fmt"
	"net/http"

	"cloudeng.io/logging"
	"cloudeng.io/logging/ctxlog"
	"github.com/go-chi/chi/v5"
)

// NewHandler returns an http.Handler that serves:
//
//	GET /status   the most recent Report as JSON, or 503 if there is none yet.
//	GET /healthz  a liveness check.
func NewHandler(latest *Latest) http.Handler {
	router := chi.NewRouter()
	router.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		r, ok := latest.Report()
		if !ok {
			http.Error(w, "no status available yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := logging.NewJSONFormatter(w, "", "  ").Format(r); err != nil {
			ctxlog.Logger(req.Context()).Error("failed to write status", "err", err)
		}
	})
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	return router
}
