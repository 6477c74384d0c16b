package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tkutschbach/RST-Tace/internal/parser"
	"github.com/tkutschbach/RST-Tace/internal/pipeline"
)

// formOverhead is added to the body limit for multipart framing.
const formOverhead = 1 << 20

func (s *Server) handleAnalyse(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r, 1) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	src, ok := s.upload(w, r, "file")
	if !ok {
		return
	}

	table, err := s.pipeline.Analyse(r.Context(), src)
	if err != nil {
		s.pipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r, 2) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	a, ok := s.upload(w, r, "file_a")
	if !ok {
		return
	}
	b, ok := s.upload(w, r, "file_b")
	if !ok {
		return
	}

	comp, err := s.pipeline.Compare(r.Context(), a, b)
	if err != nil {
		s.pipelineError(w, err)
		return
	}
	s.metrics.comparisons.Inc()
	writeJSON(w, http.StatusOK, comp)
}

// parseForm limits the body to files uploads plus framing and parses it.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request, files int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, files*s.cfg.MaxUploadBytes+formOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return false
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// upload reads one form file into a metered pipeline source.
func (s *Server) upload(w http.ResponseWriter, r *http.Request, field string) (pipeline.Source, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		jsonError(w, field+" is required: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, false
	}

	src := pipeline.ReaderSource{Filename: filename, R: bytes.NewReader(data)}
	return meteredSource{Source: src, m: s.metrics}, true
}

func (s *Server) pipelineError(w http.ResponseWriter, err error) {
	if errors.Is(err, parser.ErrInvalidFile) {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.log.Error("request failed", "error", err)
	jsonError(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
