package server

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/tsawler/stylecheck"
	"github.com/tsawler/stylecheck/model"
	"github.com/tsawler/stylecheck/report"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type validateResponse struct {
	Success  bool           `json:"success"`
	Results  *report.Report `json:"results,omitempty"`
	Filename string         `json:"filename,omitempty"`
	Error    string         `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "OK",
		Message: "SAIACS Style Validator is running",
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With("request_id", RequestIDFrom(r.Context()))

	if r.ContentLength > s.maxUpload {
		s.tooLarge(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.tooLarge(w)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".docx") {
		writeError(w, http.StatusBadRequest, "Only .docx files are allowed!")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	digest := blake3.Sum256(data)
	dt := model.ParseDocumentType(r.FormValue("documentType"))
	logger = logger.With(
		"file", header.Filename,
		"bytes", len(data),
		"blake3", hex.EncodeToString(digest[:]),
		"document_type", string(dt),
	)

	c := stylecheck.FromBytes(header.Filename, data).
		As(dt).
		Guide(s.guide).
		Logger(logger)
	if s.recorder != nil {
		c = c.Recorder(s.recorder)
	}

	rep, err := c.Validate(r.Context())
	if err != nil {
		if errors.Is(err, stylecheck.ErrUnreadable) {
			logger.Warn("document rejected", "error", err)
			writeError(w, http.StatusUnprocessableEntity, "Error processing document: "+err.Error())
			return
		}
		logger.Error("validation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Error processing document")
		return
	}

	logger.Info("document validated", "issues", rep.Summary.TotalIssues)
	writeJSON(w, http.StatusOK, validateResponse{
		Success:  true,
		Results:  rep,
		Filename: header.Filename,
	})
}

func (s *Server) tooLarge(w http.ResponseWriter) {
	limit := fmt.Sprintf("%d KB", s.maxUpload>>10)
	if s.maxUpload >= 1<<20 {
		limit = fmt.Sprintf("%d MB", s.maxUpload>>20)
	}
	writeError(w, http.StatusRequestEntityTooLarge, "File too large (maximum "+limit+")")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, validateResponse{Error: msg})
}
