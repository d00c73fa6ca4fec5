// balancaserve serves a local copy of the static dataset namespace so the
// viewer and reader can run offline: point BALANCA_DATA_BASE_URL at
// http://localhost:8077/data and drop the {direction}_{dimension}_{year}.json
// files into the data directory.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bruceeconomista/balanca-comercial-sc-v2/src/dataset"
)

func main() {
	cfg := dataset.LoadConfig()
	var dir string
	var addr string
	var logLevel string
	flag.StringVar(&dir, "dir", "./data", "Directory holding the dataset JSON files")
	flag.StringVar(&addr, "addr", ":8077", "Listen address")
	flag.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	flag.Parse()

	dataset.SetLogLevel(logLevel)
	if cfg.LogFile != "" {
		dataset.SetLogFile(cfg.LogFile)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		fmt.Fprintf(os.Stderr, "error: %q is not a directory\n", dir)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(dir),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	dataset.Infof("serving datasets from %s on %s", dir, addr)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRouter(dir string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/data/{name}.json", datasetHandler(dir))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}

// datasetHandler serves one dataset file by its namespace name. The name is
// validated against the fixed direction/dimension/year convention so the
// handler never reaches outside the data directory.
func datasetHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if !dataset.ValidResourceName(name) {
			dataset.Warnf("rejected dataset name %q", name)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, dir+"/"+name+".json")
	}
}
