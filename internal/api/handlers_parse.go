package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/prdgest/internal/parser"
	"github.com/dgallion1/prdgest/internal/prd"
)

// handleParse parses a raw text body, or the multipart "file" field, and
// returns the ParsedPRD synchronously.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	format, err := prd.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	var result prd.ParsedPRD
	if isMultipart(r) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		filename := sanitizeFilename(header.Filename)
		if !parser.IsSupportedExtension(filename) {
			jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
			return
		}
		data, status, err := s.readUpload(file)
		if err != nil {
			jsonError(w, err.Error(), status)
			return
		}
		result, err = s.orchestrator.ParseFile(bytes.NewReader(data), filename)
		if err != nil {
			s.parseFailed(w, err)
			return
		}
	} else {
		data, status, err := s.readUpload(r.Body)
		if err != nil {
			jsonError(w, err.Error(), status)
			return
		}
		result, err = s.orchestrator.ParseText(string(data))
		if err != nil {
			s.parseFailed(w, err)
			return
		}
	}

	writeRecord(w, http.StatusOK, result, format)
}

// handleValidate checks a serialized ParsedPRD against the record schema.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	data, status, err := s.readUpload(r.Body)
	if err != nil {
		jsonError(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = prd.Validate(data)
	var se *prd.SchemaError
	switch {
	case err == nil:
		json.NewEncoder(w).Encode(map[string]any{"valid": true, "errors": []string{}})
	case errors.As(err, &se):
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"valid": false, "errors": se.Issues})
	default:
		jsonError(w, err.Error(), http.StatusBadRequest)
	}
}

func (s *Server) parseFailed(w http.ResponseWriter, err error) {
	var ue *parser.UnsupportedError
	var pe *prd.ParseError
	switch {
	case errors.As(err, &ue):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &pe):
		s.log.Error("parse failed", "error", pe.Cause, "input_length", pe.Length)
		jsonError(w, err.Error(), http.StatusInternalServerError)
	default:
		jsonError(w, "convert failed: "+err.Error(), http.StatusUnprocessableEntity)
	}
}

// readUpload reads at most MaxUploadBytes from r. The returned status is
// meaningful only when err is non-nil.
func (s *Server) readUpload(r io.Reader) ([]byte, int, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxUploadBytes+1))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("request exceeds max size (%d bytes)", mbe.Limit)
		}
		return nil, http.StatusBadRequest, errors.New("failed to read body")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}
	return data, http.StatusOK, nil
}

func writeRecord(w http.ResponseWriter, code int, p prd.ParsedPRD, format prd.Format) {
	var buf bytes.Buffer
	if err := prd.Encode(&buf, p, format); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mediaType, "multipart/")
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
