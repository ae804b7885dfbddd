package iamporttest

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/iamporter/iamporter-go/client"
)

func pathVar(r *http.Request, name string) string {
	v := mux.Vars(r)[name]
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func validStatus(s string) bool {
	switch client.PaymentStatus(s) {
	case client.StatusAll, client.StatusReady, client.StatusPaid, client.StatusCancelled, client.StatusFailed:
		return true
	}
	return false
}

func (s *Server) getToken(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.tokenRequests, 1)
	p, err := readParams(r)
	if err != nil || p["imp_key"] != s.apiKey || p["imp_secret"] != s.apiSecret {
		writeEnvelope(w, http.StatusUnauthorized, -1, client.MsgAuthenticationFailed, nil)
		return
	}
	now := s.now()
	tok := uuid.NewString()
	exp := now.Add(s.tokenTTL)

	s.mu.Lock()
	s.tokens[tok] = exp
	s.mu.Unlock()

	writeOK(w, client.AccessToken{AccessToken: tok, Now: now.Unix(), ExpiredAt: exp.Unix()})
}

func (s *Server) findByImpUID(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p, ok := s.payments[pathVar(r, "imp_uid")]
	var out client.Payment
	if ok {
		out = *p
	}
	s.mu.Unlock()
	if !ok {
		writeEnvelope(w, http.StatusNotFound, 1, client.MsgPaymentNotFound, nil)
		return
	}
	writeOK(w, out)
}

func (s *Server) findByMerchantUID(w http.ResponseWriter, r *http.Request) {
	list := s.filter(pathVar(r, "merchant_uid"), "")
	if len(list) == 0 {
		writeEnvelope(w, http.StatusNotFound, 1, client.MsgPaymentNotFound, nil)
		return
	}
	writeOK(w, list[len(list)-1])
}

func (s *Server) findAllByMerchantUID(w http.ResponseWriter, r *http.Request) {
	status := pathVar(r, "payment_status")
	if !validStatus(status) {
		writeEnvelope(w, http.StatusBadRequest, 1, msgUnsupported, nil)
		return
	}
	list := s.filter(pathVar(r, "merchant_uid"), client.PaymentStatus(status))
	if len(list) == 0 {
		writeEnvelope(w, http.StatusNotFound, 1, client.MsgPaymentNotFound, nil)
		return
	}
	writeOK(w, page(list, r.URL.Query()))
}

func (s *Server) findAllByStatus(w http.ResponseWriter, r *http.Request) {
	status := pathVar(r, "payment_status")
	if !validStatus(status) {
		writeEnvelope(w, http.StatusBadRequest, 1, msgUnsupported, nil)
		return
	}
	writeOK(w, page(s.filter("", client.PaymentStatus(status)), r.URL.Query()))
}

// filter returns copies of matching payments in creation order. Empty
// arguments match everything.
func (s *Server) filter(merchantUID string, status client.PaymentStatus) []client.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []client.Payment
	for _, id := range s.order {
		p := s.payments[id]
		if merchantUID != "" && p.MerchantUID != merchantUID {
			continue
		}
		if status != "" && status != client.StatusAll && p.Status != status {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// page applies the vendor's page/limit/sorting query to list.
func page(list []client.Payment, q url.Values) client.PaymentList {
	if q.Get("sorting") == "-started" || q.Get("sorting") == "" {
		sort.SliceStable(list, func(i, j int) bool { return list[i].StartedAt > list[j].StartedAt })
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	pg, _ := strconv.Atoi(q.Get("page"))
	if pg <= 0 {
		pg = 1
	}
	out := client.PaymentList{Total: len(list), List: []client.Payment{}}
	start := (pg - 1) * limit
	if start < len(list) {
		end := start + limit
		if end > len(list) {
			end = len(list)
		}
		out.List = list[start:end]
		if end < len(list) {
			out.Next = pg + 1
		}
	}
	if pg > 1 {
		out.Previous = pg - 1
	}
	return out
}

func (s *Server) createPrepared(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, -1, err.Error(), nil)
		return
	}
	pp := client.PreparedPayment{MerchantUID: p["merchant_uid"], Amount: amountOf(p)}
	s.mu.Lock()
	_, exists := s.prepared[pp.MerchantUID]
	if !exists {
		s.prepared[pp.MerchantUID] = pp
	}
	s.mu.Unlock()
	if exists {
		writeEnvelope(w, http.StatusOK, 1, "이미 등록된 merchant_uid입니다.", nil)
		return
	}
	writeOK(w, pp)
}

// preparedKey accepts both the path and the query form of get-prepared.
func preparedKey(r *http.Request) string {
	if mid := pathVar(r, "merchant_uid"); mid != "" {
		return mid
	}
	return r.URL.Query().Get("merchant_uid")
}

func (s *Server) getPrepared(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	pp, ok := s.prepared[preparedKey(r)]
	s.mu.Unlock()
	if !ok {
		writeEnvelope(w, http.StatusNotFound, 1, client.MsgPreparedNotFound, nil)
		return
	}
	writeOK(w, pp)
}

func (s *Server) cancel(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, -1, err.Error(), nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p["imp_uid"] == "" && p["merchant_uid"] == "" {
		writeEnvelope(w, http.StatusOK, 1, client.MsgIdentifierRequired, nil)
		return
	}

	var target *client.Payment
	if id := p["imp_uid"]; id != "" {
		target = s.payments[id]
	} else if mid := p["merchant_uid"]; mid != "" {
		for i := len(s.order) - 1; i >= 0; i-- {
			if c := s.payments[s.order[i]]; c.MerchantUID == mid {
				target = c
				break
			}
		}
	}
	if target == nil || target.Status != client.StatusPaid && target.Status != client.StatusCancelled {
		writeEnvelope(w, http.StatusOK, 1, client.MsgNothingToCancel, nil)
		return
	}

	remaining := target.Amount - target.CancelAmount
	if remaining <= 0 {
		writeEnvelope(w, http.StatusOK, 1, msgAlreadyCancelled, nil)
		return
	}
	amount := amountOf(p)
	if amount <= 0 || amount > remaining {
		amount = remaining
	}
	now := s.now().Unix()
	target.CancelAmount += amount
	target.CancelReason = p["reason"]
	target.CancelHistory = append(target.CancelHistory, client.CancelHistory{
		PGTID: target.PGTID, Amount: amount, CancelledAt: now, Reason: p["reason"],
	})
	if target.CancelAmount >= target.Amount {
		target.Status = client.StatusCancelled
		target.CancelledAt = now
	}
	writeOK(w, *target)
}
