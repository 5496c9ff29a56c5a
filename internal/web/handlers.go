package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/JonMunkholm/csv2json/internal/core"
	"github.com/JonMunkholm/csv2json/internal/logging"
	"github.com/JonMunkholm/csv2json/internal/web/templates"
)

// bodyOverhead is the allowance on top of the input limit for JSON
// escaping, form encoding and multipart framing.
const bodyOverhead = 64 << 10

// convertRequest is the JSON body accepted by the convert and download routes.
type convertRequest struct {
	CSV      string `json:"csv"`
	Filename string `json:"filename,omitempty"`
}

// convertResponse is the JSON answer for convert and upload.
type convertResponse struct {
	*core.Result
	CSV      string `json:"csv,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// handleIndex renders the converter page with the sample pre-filled.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Page(core.Sample(), s.service.MaxInputSize()).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// handleConvert converts CSV text from a JSON, form or raw body.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	in, err := s.readConvertRequest(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.service.Convert(withClient(r), core.SourceAPI, in.CSV)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.OutputPartial(res).Render(r.Context(), w); err != nil {
			logging.FromContext(r.Context()).Error("render output", "error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{Result: res})
}

// handleUpload decodes an uploaded file and converts it. The decoded text
// is returned too so the client can refill the input pane.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.service.MaxInputSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+bodyOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			s.respondError(w, r, fmt.Errorf("%w: %v", core.ErrInputTooLarge, err))
			return
		}
		s.respondError(w, r, fmt.Errorf("%w: invalid form: %v", errBadRequest, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", core.ErrNoFile, err))
		return
	}
	defer file.Close()

	res, csv, err := s.service.ConvertUpload(withClient(r), core.SourceUpload, file, header.Filename, r.FormValue("encoding"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		Result:   res,
		CSV:      csv,
		Filename: header.Filename,
	})
}

// handleDownload converts the input and serves the JSON as an attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	in, err := s.readConvertRequest(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.service.Convert(withClient(r), core.SourceAPI, in.CSV)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	name := core.DownloadName(in.Filename)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	if _, err := io.WriteString(w, res.JSON); err != nil {
		logging.FromContext(r.Context()).Warn("download write failed", "error", err)
	}
}

// handleSample serves the sample CSV.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	if _, err := io.WriteString(w, core.Sample()); err != nil {
		logging.FromContext(r.Context()).Warn("sample write failed", "error", err)
	}
}

// handleHealth reports liveness and conversion slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"conversions": s.service.LimiterStatus(),
	})
}

// readConvertRequest extracts CSV text from the request body. JSON bodies
// carry {"csv": ...}; form posts use the csv field; anything else is the
// CSV itself.
func (s *Server) readConvertRequest(w http.ResponseWriter, r *http.Request) (convertRequest, error) {
	var in convertRequest
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.service.MaxInputSize()+bodyOverhead)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return in, bodyError(err)
		}
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(s.service.MaxInputSize()); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return in, bodyError(err)
		}
		in.CSV = r.FormValue("csv")
		in.Filename = r.FormValue("filename")
	default:
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return in, bodyError(err)
		}
		in.CSV = string(data)
		in.Filename = r.URL.Query().Get("filename")
	}
	return in, nil
}

// bodyError classifies a failure to read the request body.
func bodyError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return fmt.Errorf("%w: %v", core.ErrInputTooLarge, err)
	}
	return fmt.Errorf("%w: %v", errBadRequest, err)
}
