package cmd

import (
	"bytes"
	"embed"
	"errors"
	"math"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/zalepa/plantio/chart"
	"github.com/zalepa/plantio/config"
	"github.com/zalepa/plantio/plantio"
	"github.com/zalepa/plantio/report"
)

//go:embed web.html
var htmlContent embed.FS

var contentTypes = map[string]string{
	"png":  "image/png",
	"svg":  "image/svg+xml",
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"eps":  "application/postscript",
	"tex":  "application/x-tex",
}

type viewInfo struct {
	Slug     string      `json:"slug"`
	Title    string      `json:"title"`
	Division string      `json:"division,omitempty"`
	Project  string      `json:"project,omitempty"`
	Charts   []chartInfo `json:"charts"`
}

type chartInfo struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type recordJSON struct {
	PRF                string   `json:"prf"`
	Division           string   `json:"division"`
	Project            string   `json:"project"`
	PlantedPercent     *float64 `json:"planted_percent"`
	UnplantedPercent   *float64 `json:"unplanted_percent"`
	SeedlingCount      *float64 `json:"seedling_count"`
	MortalityCount     *float64 `json:"mortality_count"`
	PlantedAreaHa      *float64 `json:"planted_area_ha"`
	RoadAreaHa         *float64 `json:"road_area_ha"`
	NativeVegetationHa *float64 `json:"native_vegetation_ha"`
	TotalAreaHa        *float64 `json:"total_area_ha"`
	Year               *int     `json:"year"`
	UtilizationClass   string   `json:"utilization_class"`
}

type divisionJSON struct {
	Division           string  `json:"division"`
	Count              int     `json:"count"`
	TotalAreaHa        float64 `json:"total_area_ha"`
	SeedlingCount      float64 `json:"seedling_count"`
	MortalityCount     float64 `json:"mortality_count"`
	RoadAreaHa         float64 `json:"road_area_ha"`
	NativeVegetationHa float64 `json:"native_vegetation_ha"`
	PlantedAreaHa      float64 `json:"planted_area_ha"`
}

type classJSON struct {
	Class string `json:"class"`
	Count int    `json:"count"`
}

type errorJSON struct {
	Error string `json:"error"`
}

// nullable maps NaN to JSON null.
func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func toJSON(r plantio.Record) recordJSON {
	return recordJSON{
		PRF:                r.PRF,
		Division:           r.Division,
		Project:            r.Project,
		PlantedPercent:     nullable(r.PlantedPercent),
		UnplantedPercent:   nullable(r.UnplantedPercent),
		SeedlingCount:      nullable(r.SeedlingCount),
		MortalityCount:     nullable(r.MortalityCount),
		PlantedAreaHa:      nullable(r.PlantedAreaHa),
		RoadAreaHa:         nullable(r.RoadAreaHa),
		NativeVegetationHa: nullable(r.NativeVegetationHa),
		TotalAreaHa:        nullable(r.TotalAreaHa),
		Year:               r.Year,
		UtilizationClass:   string(r.UtilizationClass),
	}
}

// server serves the dashboard for one loaded table.
type server struct {
	cfg     config.ServerConfig
	logger  *zap.Logger
	records []plantio.Record
	views   []report.View

	registry *prometheus.Registry
	requests *prometheus.CounterVec
	renders  *prometheus.HistogramVec
}

func newServer(cfg config.ServerConfig, records []plantio.Record, views []report.View, logger *zap.Logger) *server {
	s := &server{
		cfg:      cfg,
		logger:   logger,
		records:  records,
		views:    views,
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plantio_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		renders: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "plantio_chart_render_seconds",
			Help:    "Time spent rendering a chart.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
	}
	s.registry.MustRegister(
		s.requests,
		s.renders,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return s
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// Health checks and scrapes are never rate limited.
	r.Group(func(r chi.Router) {
		if s.cfg.RateLimit.Enabled {
			r.Use(rateLimit(rate.NewLimiter(rate.Limit(s.cfg.RateLimit.RPS), s.cfg.RateLimit.Burst), s.logger))
		}
		r.Route("/api", func(r chi.Router) {
			r.Get("/views", s.handleViews)
			r.Get("/records", s.handleRecords)
			r.Get("/divisions", s.handleDivisions)
			r.Get("/classes", s.handleClasses)
		})
		r.Get("/charts/{view}/{index}.{format}", s.handleChart)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, errors.New("not found"))
	})
	return r
}

func writeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	render.Status(r, code)
	render.JSON(w, r, errorJSON{Error: err.Error()})
}

// instrument counts requests by route pattern and logs them at debug level.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// rateLimit answers 429 once the shared token bucket is empty.
func rateLimit(limiter *rate.Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Warn("rate limit exceeded",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr))
				w.Header().Set("Retry-After", "1")
				writeError(w, r, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := htmlContent.ReadFile("web.html")
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *server) handleViews(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	out := make([]viewInfo, len(s.views))
	for i, v := range s.views {
		out[i] = viewInfo{Slug: v.Slug, Title: v.Title, Division: v.Division, Project: v.Project, Charts: []chartInfo{}}
		for j, f := range v.Figures {
			out[i].Charts = append(out[i].Charts, chartInfo{
				Title: f.Title,
				URL:   "/charts/" + v.Slug + "/" + strconv.Itoa(j+1) + "." + format,
			})
		}
	}
	render.JSON(w, r, out)
}

func (s *server) handleRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows := s.records
	if d := q.Get("division"); d != "" {
		rows = plantio.ByDivision(rows, d)
	}
	if p := q.Get("project"); p != "" {
		rows = plantio.ByProject(rows, p)
	}
	if q.Get("sort") == "planted" {
		rows = plantio.SortByPlanted(rows)
	}
	out := make([]recordJSON, len(rows))
	for i, rec := range rows {
		out[i] = toJSON(rec)
	}
	render.JSON(w, r, out)
}

func (s *server) handleDivisions(w http.ResponseWriter, r *http.Request) {
	groups := plantio.GroupByDivision(s.records)
	out := make([]divisionJSON, len(groups))
	for i, g := range groups {
		out[i] = divisionJSON(g)
	}
	render.JSON(w, r, out)
}

func (s *server) handleClasses(w http.ResponseWriter, r *http.Request) {
	counts := plantio.CountByClass(s.records)
	out := make([]classJSON, len(counts))
	for i, c := range counts {
		out[i] = classJSON{Class: string(c.Class), Count: c.Count}
	}
	render.JSON(w, r, out)
}

func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if !slices.Contains(chart.Formats, format) {
		writeError(w, r, http.StatusBadRequest, errors.New("unsupported format "+strconv.Quote(format)))
		return
	}
	view, err := report.Find(s.views, chi.URLParam(r, "view"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 1 || index > len(view.Figures) {
		writeError(w, r, http.StatusNotFound, errors.New("no such chart"))
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := chart.Render(&buf, view.Figures[index-1], chart.Size{}, format); err != nil {
		s.logger.Error("render chart", zap.String("view", view.Slug), zap.Int("index", index), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.renders.WithLabelValues(format).Observe(time.Since(start).Seconds())

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "max-age=300")
	w.Write(buf.Bytes())
}
