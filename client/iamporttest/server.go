// Package iamporttest runs an in-process fake of the vendor REST API for tests
// and local development. It keeps payments, prepared amounts and billing keys
// in memory and answers with the vendor's envelope and wording.
package iamporttest

import (
	"net/http"
	"net/http/httptest"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/iamporter/iamporter-go/client"
)

// DefaultTokenTTL matches the vendor's 30 minute token lifetime.
const DefaultTokenTTL = 30 * time.Minute

// Server is a fake vendor. Create it with NewServer and Close it when done.
type Server struct {
	*httptest.Server

	apiKey    string
	apiSecret string
	tokenTTL  time.Duration
	now       func() time.Time

	mu       sync.Mutex
	tokens   map[string]time.Time // access token -> expiry
	payments map[string]*client.Payment
	order    []string // imp_uids in creation order
	prepared map[string]client.PreparedPayment
	billing  map[string]client.BillingKey
	failures []int // statuses to answer with before routing

	tokenRequests int32
	requests      int32
}

// Option tunes a Server.
type Option func(*Server)

// WithTokenTTL changes how long issued tokens stay valid.
func WithTokenTTL(d time.Duration) Option { return func(s *Server) { s.tokenTTL = d } }

// WithClock replaces the server's clock.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// NewServer starts a fake that accepts apiKey/apiSecret. Use the sandbox
// credentials from the client package to pair it with client.NewSandbox.
func NewServer(apiKey, apiSecret string, opts ...Option) *Server {
	s := &Server{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		tokenTTL:  DefaultTokenTTL,
		now:       time.Now,
		tokens:    make(map[string]time.Time),
		payments:  make(map[string]*client.Payment),
		prepared:  make(map[string]client.PreparedPayment),
		billing:   make(map[string]client.BillingKey),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(s.Router())
	return s
}

// Router builds the route table. Exposed so the fake can be mounted elsewhere.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(recoverMiddleware, s.countMiddleware)

	r.HandleFunc("/users/getToken", s.getToken).Methods("POST")

	authed := r.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)

	authed.HandleFunc("/payments/find/{merchant_uid}", s.findByMerchantUID).Methods("GET")
	authed.HandleFunc("/payments/findAll/{merchant_uid}/{payment_status}", s.findAllByMerchantUID).Methods("GET")
	authed.HandleFunc("/payments/status/{payment_status}", s.findAllByStatus).Methods("GET")
	authed.HandleFunc("/payments/prepare", s.createPrepared).Methods("POST")
	authed.HandleFunc("/payments/prepare", s.getPrepared).Methods("GET")
	authed.HandleFunc("/payments/prepare/{merchant_uid}", s.getPrepared).Methods("GET")
	authed.HandleFunc("/payments/cancel", s.cancel).Methods("POST")
	authed.HandleFunc("/payments/{imp_uid}", s.findByImpUID).Methods("GET")

	authed.HandleFunc("/subscribe/payments/onetime", s.payOnetime).Methods("POST")
	authed.HandleFunc("/subscribe/payments/again", s.payAgain).Methods("POST")
	authed.HandleFunc("/subscribe/payments/foreign", s.payForeign).Methods("POST")

	authed.HandleFunc("/subscribe/customers/{customer_uid}", s.createBillingKey).Methods("POST")
	authed.HandleFunc("/subscribe/customers/{customer_uid}", s.getBillingKey).Methods("GET")
	authed.HandleFunc("/subscribe/customers/{customer_uid}", s.deleteBillingKey).Methods("DELETE")
	return r
}

// TokenRequests returns how many times the token endpoint was called.
func (s *Server) TokenRequests() int { return int(atomic.LoadInt32(&s.tokenRequests)) }

// Requests returns the total number of requests served, token calls included.
func (s *Server) Requests() int { return int(atomic.LoadInt32(&s.requests)) }

// ExpireTokens revokes every issued token, as if they had all timed out.
func (s *Server) ExpireTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]time.Time)
}

// FailNext makes the next len(statuses) requests fail with those HTTP
// statuses and a plain-text body, before any routing.
func (s *Server) FailNext(statuses ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, statuses...)
}

// AddPayment stores p as if a buyer had paid it. An empty ImpUID is generated.
func (s *Server) AddPayment(p client.Payment) client.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.storeLocked(p)
}

func (s *Server) storeLocked(p client.Payment) *client.Payment {
	if p.ImpUID == "" {
		p.ImpUID = newImpUID()
	}
	if p.Status == "" {
		p.Status = client.StatusPaid
	}
	if p.Currency == "" {
		p.Currency = "KRW"
	}
	if p.StartedAt == 0 {
		p.StartedAt = s.now().Unix()
	}
	if p.Status == client.StatusPaid && p.PaidAt == 0 {
		p.PaidAt = s.now().Unix()
	}
	stored := p
	if _, exists := s.payments[p.ImpUID]; !exists {
		s.order = append(s.order, p.ImpUID)
	}
	s.payments[p.ImpUID] = &stored
	return &stored
}

func newImpUID() string {
	return "imp_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func (s *Server) countMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.requests, 1)

		s.mu.Lock()
		var status int
		if len(s.failures) > 0 {
			status, s.failures = s.failures[0], s.failures[1:]
		}
		s.mu.Unlock()
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		exp, ok := s.tokens[tok]
		s.mu.Unlock()
		if !ok || !s.now().Before(exp) {
			writeEnvelope(w, http.StatusUnauthorized, -1, client.MsgAuthenticationFailed, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware turns handler panics into a plain 500.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Bytes("stack", debug.Stack()).
					Msg("iamporttest: panic recovered")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
