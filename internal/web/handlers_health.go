package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/apex/log"

	"recipe-finder/internal/metrics"
)

type healthResponse struct {
	Status         string            `json:"status"`
	System         metrics.SysHealth `json:"system"`
	APICallsToday  int               `json:"api_calls_today"`
	CacheHitsToday int               `json:"cache_hits_today"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "ok",
		System: metrics.GetSysHealth(s.dataDir()),
	}

	usage, err := s.Metrics.GetDailyUsage(r.Context(), 1)
	if err != nil {
		log.WithError(err).Warn("health: failed to read api usage")
		resp.Status = "degraded"
	}
	today := time.Now().UTC().Format("2006-01-02")
	for _, u := range usage {
		if u.Date == today {
			resp.APICallsToday = u.Calls
			resp.CacheHitsToday = u.CacheHits
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if resp.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.WithError(err).Debug("failed to write health response")
	}
}
