package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sells-group/sbt-cli/internal/chart"
	"github.com/sells-group/sbt-cli/internal/sbt"
)

var validate = validator.New()

// maxBodyBytes caps request bodies; generous for max_points pairs of floats.
const maxBodyBytes = 16 << 20

type classifyRequest struct {
	Qtn []float64 `json:"qtn" validate:"required"`
	Rf  []float64 `json:"rf" validate:"required"`
}

type classifyResponse struct {
	Codes   []int       `json:"codes"`
	Zones   []string    `json:"zones"`
	Summary sbt.Summary `json:"summary"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	points, ok := s.decodePoints(w, r)
	if !ok {
		return
	}

	codes, err := s.classify(r, points)
	if err != nil {
		s.classifyError(w, err)
		return
	}

	zones := make([]string, len(codes))
	for i, c := range codes {
		zones[i] = sbt.ZoneName(c)
	}
	writeJSON(w, http.StatusOK, classifyResponse{
		Codes:   codes,
		Zones:   zones,
		Summary: sbt.Summarize(codes),
	})
}

func (s *Server) handleZones(w http.ResponseWriter, _ *http.Request) {
	data, err := sbt.ZonesGeoJSON()
	if err != nil {
		zap.L().Error("api: encode zones", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "zones unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mode := s.defaultMode
	if raw := q.Get("mode"); raw != "" {
		m, err := chart.ParseMode(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, chart.InvalidModeMessage)
			return
		}
		mode = m
	}

	format := s.defaultFormat
	if raw := q.Get("format"); raw != "" {
		f, err := chart.ParseFormat(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "format must be png or svg")
			return
		}
		format = f
	}

	points, ok := s.decodePoints(w, r)
	if !ok {
		return
	}

	req := chart.Request{Mode: mode, Format: format, Points: points}
	if labels, _ := strconv.ParseBool(q.Get("labels")); labels {
		codes, err := s.classify(r, points)
		if err != nil {
			s.classifyError(w, err)
			return
		}
		req.Codes = codes
	}

	key := chart.CacheKey(req)
	if s.cache != nil {
		if cached := s.cache.Get(key); cached != nil {
			writeImage(w, format, "hit", cached)
			return
		}
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, req); err != nil {
		switch {
		case sbt.IsInvalidInput(err):
			writeError(w, http.StatusBadRequest, err.Error())
		case sbt.IsInvalidRenderMode(err):
			writeError(w, http.StatusBadRequest, chart.InvalidModeMessage)
		default:
			zap.L().Error("api: render chart", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "chart rendering failed")
		}
		return
	}

	if s.cache != nil {
		s.cache.Put(key, buf.Bytes())
	}
	writeImage(w, format, "miss", buf.Bytes())
}

func (s *Server) handleChartStats(w http.ResponseWriter, _ *http.Request) {
	if s.cache == nil {
		writeJSON(w, http.StatusOK, map[string]string{"cache": "disabled"})
		return
	}
	writeJSON(w, http.StatusOK, s.cache.Stats())
}

// decodePoints reads and validates a classify-style body. It writes the
// error response itself and reports whether the caller should continue.
func (s *Server) decodePoints(w http.ResponseWriter, r *http.Request) ([]sbt.Point, bool) {
	var req classifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "qtn and rf are required")
		return nil, false
	}
	if len(req.Qtn) > s.maxPoints {
		writeError(w, http.StatusRequestEntityTooLarge, "too many points")
		return nil, false
	}

	points, err := sbt.Pair(req.Qtn, req.Rf)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return points, true
}

func (s *Server) classify(r *http.Request, points []sbt.Point) ([]int, error) {
	var (
		codes []int
		err   error
	)
	if s.parallelThreshold > 0 && len(points) >= s.parallelThreshold {
		codes, err = s.classifier.ClassifyParallel(r.Context(), points, s.workers)
	} else {
		codes, err = s.classifier.ClassifyPoints(points)
	}
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveCodes(codes)
	return codes, nil
}

func (s *Server) classifyError(w http.ResponseWriter, err error) {
	if sbt.IsInvalidInput(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	zap.L().Error("api: classify", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "classification failed")
}

func writeImage(w http.ResponseWriter, format, cache string, data []byte) {
	w.Header().Set("Content-Type", chart.ContentType(format))
	w.Header().Set("X-Cache", cache)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
