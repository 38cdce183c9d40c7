// Package server serves a staging output directory for review over HTTP.
//
// Routes:
//
//	GET /              review.html
//	GET /images/*      slot images and thumbnails
//	GET /api/report    report.json
//	GET /api/products  staging rows as JSON; ?confidence=low filters
package server

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/tsawler/catalogstage/export"
)

// Server serves one output directory.
type Server struct {
	dir         string
	stagingFile string
	log         *zap.Logger
}

// New returns a server for dir. stagingFile names the staging CSV inside
// dir; empty means export.StagingFile.
func New(dir, stagingFile string, log *zap.Logger) *Server {
	if stagingFile == "" {
		stagingFile = export.StagingFile
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{dir: dir, stagingFile: stagingFile, log: log}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Handle("/images/*", http.StripPrefix("/images/",
		http.FileServer(http.Dir(filepath.Join(s.dir, export.ImageDir)))))
	r.Route("/api", func(r chi.Router) {
		r.Get("/report", s.handleReport)
		r.Get("/products", s.handleProducts)
	})
	return r
}

// ListenAndServe serves until the server fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("review server listening", zap.String("addr", addr), zap.String("dir", s.dir))
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.dir, export.HTMLFile))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(filepath.Join(s.dir, export.ReportFile))
	if err != nil {
		s.fail(w, err)
		return
	}
	defer f.Close()

	rep, err := export.ReadReport(f)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, rep)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(filepath.Join(s.dir, s.stagingFile))
	if err != nil {
		s.fail(w, err)
		return
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		s.fail(w, err)
		return
	}

	confidence := r.URL.Query().Get("confidence")
	products := []map[string]string{}
	if len(rows) > 0 {
		header := rows[0]
		for _, row := range rows[1:] {
			p := make(map[string]string, len(header))
			for i, h := range header {
				if i < len(row) {
					p[h] = row[i]
				}
			}
			if confidence != "" && p["confidence"] != confidence {
				continue
			}
			products = append(products, p)
		}
	}
	writeJSON(w, products)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	s.log.Error("request failed", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
