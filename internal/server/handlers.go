package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"gridsynth/internal/generate"
	"gridsynth/internal/model"
	"gridsynth/internal/store"
	"gridsynth/internal/ws"
)

const defaultMeter = "default_meter"

// cachedMix gives lazily generated meters an even chance of being
// residential, commercial, or industrial.
func cachedMix() *generate.PatternDistribution {
	dist, err := generate.NewPatternDistribution(map[model.PatternType]float64{
		model.PatternResidential: 1,
		model.PatternCommercial:  1,
		model.PatternIndustrial:  1,
	})
	if err != nil {
		panic(err)
	}
	return dist
}

// API serves the mock utility endpoints on top of a shared generator
// and the interval store.
type API struct {
	mu      sync.Mutex
	gen     *generate.Generator
	store   *store.Store
	bridge  *ws.Bridge
	hub     *ws.Hub
	metrics *Metrics
	log     *slog.Logger

	cacheHours   int
	cacheAnomaly float64
}

func NewAPI(gen *generate.Generator, st *store.Store, hub *ws.Hub, metrics *Metrics, log *slog.Logger, cacheHours int, cacheAnomaly float64) *API {
	return &API{
		gen:          gen,
		store:        st,
		bridge:       ws.NewBridge(hub),
		hub:          hub,
		metrics:      metrics,
		log:          log,
		cacheHours:   cacheHours,
		cacheAnomaly: cacheAnomaly,
	}
}

func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v2/intervals", a.handleIntervals).Methods(http.MethodGet)
	r.HandleFunc("/api/nodes/{id:[0-9]+}/latest", a.handleLatest).Methods(http.MethodGet)
	r.HandleFunc("/api/bulk-data", a.handleBulkData).Methods(http.MethodPost)
	r.HandleFunc("/health", a.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", a.metrics.Handler()).Methods(http.MethodGet)
	r.Handle("/ws", ws.NewHandler(a.hub))
	return r
}

// ensureMeter generates and caches a week of data for a meter on first
// access. The pattern is drawn at random per meter.
func (a *API) ensureMeter(meter string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.store.Has(meter) {
		a.metrics.CacheHits.Inc()
		return
	}
	a.metrics.CacheMisses.Inc()

	nodes := a.gen.GenerateNodes(1, model.DensityUrban, cachedMix())
	nodes[0].NodeID = meter
	// A meter being queried exists, so it is always reporting.
	nodes[0].Active = true
	pattern := nodes[0].PatternType

	start := a.gen.Now().Add(-time.Duration(a.cacheHours) * time.Hour)
	points := a.gen.GenerateTimeSeries(nodes, start, a.cacheHours, a.cacheAnomaly)

	records := make([]model.IntervalRecord, 0, len(points))
	for _, p := range points {
		records = append(records, p.Interval())
	}
	a.store.Put(meter, records)
	a.metrics.PointsGenerated.Add(float64(len(points)))

	a.log.Info("cached meter data",
		"meter", meter, "pattern", pattern, "hours", a.cacheHours, "points", len(points))
}

type intervalsResponse struct {
	Intervals []model.IntervalRecord `json:"intervals"`
	Next      *string                `json:"next"`
	Previous  *string                `json:"previous"`
}

func (a *API) handleIntervals(w http.ResponseWriter, r *http.Request) {
	meter := r.URL.Query().Get("meters")
	if meter == "" {
		meter = defaultMeter
	}

	limit := 1
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	desc := true
	switch r.URL.Query().Get("order") {
	case "", "desc":
	case "asc":
		desc = false
	default:
		writeError(w, http.StatusBadRequest, "order must be asc or desc")
		return
	}

	a.ensureMeter(meter)

	intervals := a.store.Intervals(meter, limit, desc)
	if intervals == nil {
		intervals = []model.IntervalRecord{}
	}
	writeJSON(w, http.StatusOK, intervalsResponse{Intervals: intervals})
}

func (a *API) handleLatest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "node id must be numeric")
		return
	}
	meter := fmt.Sprintf("node_%06d", id)

	a.ensureMeter(meter)

	latest, ok := a.store.Latest(meter)
	if !ok {
		writeError(w, http.StatusNotFound, "no data for node")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"nodeId":    meter,
		"kWh":       latest.KWh,
		"timestamp": latest.Start,
		"location":  model.FormatLocation(latest.Lat, latest.Lon),
		"active":    true,
	})
}

type bulkRequest struct {
	Pattern string `json:"pattern"`
	Nodes   int    `json:"nodes"`
	Hours   int    `json:"hours"`
}

type bulkPoint struct {
	DataID      string  `json:"dataId"`
	NodeID      string  `json:"nodeId"`
	KWh         float64 `json:"kWh"`
	Location    string  `json:"location"`
	Timestamp   int64   `json:"timestamp"`
	PatternType string  `json:"patternType"`
	Anomaly     bool    `json:"anomaly"`
}

type bulkMetadata struct {
	TotalPoints   int    `json:"totalPoints"`
	Nodes         int    `json:"nodes"`
	DurationHours int    `json:"durationHours"`
	GeneratedAt   string `json:"generatedAt"`
}

func (a *API) handleBulkData(w http.ResponseWriter, r *http.Request) {
	req := bulkRequest{Pattern: string(model.PatternResidential), Nodes: 10, Hours: 24}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Nodes < 1 || req.Nodes > 10000 {
		writeError(w, http.StatusBadRequest, "nodes must be between 1 and 10000")
		return
	}
	if req.Hours < 1 || req.Hours > 8760 {
		writeError(w, http.StatusBadRequest, "hours must be between 1 and 8760")
		return
	}
	dist, err := generate.SinglePattern(model.PatternType(req.Pattern))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown pattern type")
		return
	}

	began := time.Now()
	a.metrics.Generations.Inc()
	a.bridge.GenerationStarted(ws.GenerationStartedPayload{
		Pattern: req.Pattern,
		Nodes:   req.Nodes,
		Hours:   req.Hours,
	})

	a.mu.Lock()
	nodes := a.gen.GenerateNodes(req.Nodes, model.DensityUrban, dist)
	start := a.gen.Now().Add(-time.Duration(req.Hours) * time.Hour)

	var (
		points    []model.EnergyDataPoint
		totalKWh  float64
		anomalies int
	)
	for _, node := range nodes {
		series := a.gen.GenerateTimeSeries([]model.EnergyNode{node}, start, req.Hours, 0.02)
		for _, p := range series {
			totalKWh += p.KWh
			if p.Anomaly {
				anomalies++
			}
		}
		points = append(points, series...)
		a.bridge.NodeGenerated(ws.NodeGeneratedPayload{
			NodeID:      node.NodeID,
			PatternType: string(node.PatternType),
			Points:      len(series),
		})
	}
	generatedAt := a.gen.Now()
	a.mu.Unlock()

	took := time.Since(began)
	a.metrics.GenerateSeconds.Observe(took.Seconds())
	a.metrics.PointsGenerated.Add(float64(len(points)))
	a.bridge.GenerationDone(ws.GenerationDonePayload{
		TotalPoints: len(points),
		Nodes:       req.Nodes,
		Hours:       req.Hours,
		TotalKWh:    totalKWh,
		Anomalies:   anomalies,
		TookMs:      took.Milliseconds(),
	})

	data := make([]bulkPoint, 0, len(points))
	for _, p := range points {
		data = append(data, bulkPoint{
			DataID:      p.DataID,
			NodeID:      p.NodeID,
			KWh:         p.KWh,
			Location:    p.Location,
			Timestamp:   p.Timestamp,
			PatternType: string(p.PatternType),
			Anomaly:     p.Anomaly,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": data,
		"metadata": bulkMetadata{
			TotalPoints:   len(points),
			Nodes:         req.Nodes,
			DurationHours: req.Hours,
			GeneratedAt:   generatedAt.UTC().Format(time.RFC3339),
		},
	})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"meters":    len(a.store.Meters()),
		"clients":   a.hub.ClientCount(),
		"wsDropped": a.hub.DroppedCount(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
