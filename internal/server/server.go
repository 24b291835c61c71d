// Package server exposes a generated dataset over read-only HTTP for quick
// inspection, plus a websocket stream of generation progress.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jogardn/shopsim/pkg/models"
)

const defaultListLimit = 100

type Server struct {
	mu     sync.RWMutex
	ds     *models.Dataset
	hub    *Hub
	logger *logrus.Logger
}

func New(hub *Hub, logger *logrus.Logger) *Server {
	return &Server{hub: hub, logger: logger}
}

// SetDataset publishes a completed dataset to the HTTP handlers. Until it
// is called, data endpoints answer 503.
func (s *Server) SetDataset(ds *models.Dataset) {
	s.mu.Lock()
	s.ds = ds
	s.mu.Unlock()
}

func (s *Server) dataset() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", s.HealthCheck).Methods("GET")
	router.HandleFunc("/summary", s.GetSummary).Methods("GET")
	router.HandleFunc("/products", s.ListProducts).Methods("GET")
	router.HandleFunc("/marketing", s.ListMarketingSpend).Methods("GET")
	router.HandleFunc("/orders", s.ListOrders).Methods("GET")
	router.HandleFunc("/orders/{id}/items", s.GetOrderItems).Methods("GET")
	router.HandleFunc("/ws", s.hub.HandleWebSocket)
	router.Use(loggingMiddleware(s.logger))
	return router
}

func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "generating"
	if s.dataset() != nil {
		status = "ready"
	}
	s.respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"service": "shopsim",
	})
}

func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset()
	if ds == nil {
		s.respondWithError(w, http.StatusServiceUnavailable, "Dataset not generated yet")
		return
	}

	revenue := 0.0
	for _, o := range ds.Orders {
		revenue += o.TotalAmount
	}
	spend := 0.0
	for _, m := range ds.MarketingSpend {
		spend += m.SpendAmount
	}

	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":         ds.RunID,
		"seed":           ds.Seed,
		"start_date":     ds.StartDate.Format("2006-01-02"),
		"end_date":       ds.EndDate.Format("2006-01-02"),
		"products":       len(ds.Products),
		"marketing_rows": len(ds.MarketingSpend),
		"orders":         len(ds.Orders),
		"order_items":    len(ds.OrderItems),
		"total_revenue":  revenue,
		"total_spend":    spend,
	})
}

func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset()
	if ds == nil {
		s.respondWithError(w, http.StatusServiceUnavailable, "Dataset not generated yet")
		return
	}
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(ds.Products),
		"products": ds.Products,
	})
}

func (s *Server) ListMarketingSpend(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset()
	if ds == nil {
		s.respondWithError(w, http.StatusServiceUnavailable, "Dataset not generated yet")
		return
	}
	limit := queryLimit(r)
	rows := ds.MarketingSpend
	if len(rows) > limit {
		rows = rows[:limit]
	}
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(ds.MarketingSpend),
		"marketing": rows,
	})
}

func (s *Server) ListOrders(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset()
	if ds == nil {
		s.respondWithError(w, http.StatusServiceUnavailable, "Dataset not generated yet")
		return
	}
	limit := queryLimit(r)
	rows := ds.Orders
	if len(rows) > limit {
		rows = rows[:limit]
	}
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(ds.Orders),
		"orders": rows,
	})
}

func (s *Server) GetOrderItems(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset()
	if ds == nil {
		s.respondWithError(w, http.StatusServiceUnavailable, "Dataset not generated yet")
		return
	}

	vars := mux.Vars(r)
	orderID, err := strconv.Atoi(vars["id"])
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var items []models.OrderItem
	for _, it := range ds.OrderItems {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	if items == nil {
		s.respondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"order_id": orderID,
		"count":    len(items),
		"items":    items,
	})
}

func queryLimit(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultListLimit
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func loggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start).Milliseconds(),
			}).Info("Request completed")
		})
	}
}
