package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Reply is a canned response of the fake service.
type Reply struct {
	Status int
	Body   string
}

// Recorded is one request the fake service received.
type Recorded struct {
	Method    string
	Path      string
	RequestID string
	Body      map[string]any
}

// Service is an httptest-backed prediction service. Routes answer with the
// configured Reply; unknown routes return 404.
type Service struct {
	*httptest.Server

	mu       sync.Mutex
	replies  map[string]Reply
	requests []Recorded
}

// Default payloads, shaped like the real service's.
const (
	ListOptionsBody     = `{"categories":["OPEN","EWS","OBC-NCL","SC","ST"]}`
	SpecificOptionsBody = `{"institute_type":["NIT","IIT"],"quota":["OS","AI","HS"],"category":["OPEN","EWS"],"gender":["Gender-Neutral","Female-only (including Supernumerary)"],"institute_name":["Indian Institute of Technology Bombay","National Institute of Technology Calicut"],"branch":["Mechanical Engineering","Computer Science and Engineering"]}`
	ListPredictBody     = `{"predictions":[{"institute_name":"IIT X","branch":"CSE","probability":72.35,"opening_rank":100,"closing_rank":6000,"year":2023}]}`
	SpecificPredictBody = `{"status":"Low Chance","student_rank":15000,"predicted_cutoff":9000,"admission_probability":12.0,"recommendation":"Consider other options"}`
)

// NewService starts a fake service with the default payloads on every route.
func NewService(t testing.TB) *Service {
	t.Helper()
	s := &Service{replies: map[string]Reply{
		"GET /api/options":           {Status: http.StatusOK, Body: ListOptionsBody},
		"GET /api/ml-options":        {Status: http.StatusOK, Body: SpecificOptionsBody},
		"POST /api/predict":          {Status: http.StatusOK, Body: ListPredictBody},
		"POST /api/predict-specific": {Status: http.StatusOK, Body: SpecificPredictBody},
	}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Reply replaces the response of route, e.g. "POST /api/predict".
func (s *Service) Reply(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[route] = Reply{Status: status, Body: body}
}

// Requests returns what the service has received so far.
func (s *Service) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

func (s *Service) serve(w http.ResponseWriter, r *http.Request) {
	rec := Recorded{Method: r.Method, Path: r.URL.Path, RequestID: r.Header.Get("X-Request-ID")}
	if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, &rec.Body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	reply, ok := s.replies[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"not found"}`)
		return
	}
	w.WriteHeader(reply.Status)
	_, _ = io.WriteString(w, reply.Body)
}
