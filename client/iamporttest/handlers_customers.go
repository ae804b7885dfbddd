package iamporttest

import (
	"net/http"

	"github.com/iamporter/iamporter-go/client"
)

func (s *Server) billingKeyLocked(customerUID string, p map[string]string) client.BillingKey {
	now := s.now().Unix()
	bk := client.BillingKey{
		CustomerUID:      customerUID,
		PGProvider:       "nice",
		CardName:         "테스트카드",
		CardNumber:       maskCard(p["card_number"]),
		CustomerName:     p["customer_name"],
		CustomerTel:      p["customer_tel"],
		CustomerEmail:    p["customer_email"],
		CustomerAddr:     p["customer_addr"],
		CustomerPostcode: p["customer_postcode"],
		Inserted:         now,
		Updated:          now,
	}
	if prev, ok := s.billing[customerUID]; ok {
		bk.Inserted = prev.Inserted
	}
	return bk
}

// SetBillingKey registers a card for customerUID without going through the API.
func (s *Server) SetBillingKey(customerUID, cardNumber string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.billing[customerUID] = s.billingKeyLocked(customerUID, map[string]string{"card_number": cardNumber})
}

func (s *Server) createBillingKey(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, -1, err.Error(), nil)
		return
	}
	if !luhnValid(p["card_number"]) {
		writeEnvelope(w, http.StatusOK, -1, client.MsgInvalidCardNumber, nil)
		return
	}
	cu := pathVar(r, "customer_uid")
	s.mu.Lock()
	bk := s.billingKeyLocked(cu, p)
	s.billing[cu] = bk
	s.mu.Unlock()
	writeOK(w, bk)
}

func (s *Server) getBillingKey(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	bk, ok := s.billing[pathVar(r, "customer_uid")]
	s.mu.Unlock()
	if !ok {
		writeEnvelope(w, http.StatusNotFound, 1, client.MsgUnknownCustomer, nil)
		return
	}
	writeOK(w, bk)
}

func (s *Server) deleteBillingKey(w http.ResponseWriter, r *http.Request) {
	cu := pathVar(r, "customer_uid")
	s.mu.Lock()
	bk, ok := s.billing[cu]
	delete(s.billing, cu)
	s.mu.Unlock()
	if !ok {
		writeEnvelope(w, http.StatusNotFound, 1, client.MsgUnknownCustomer, nil)
		return
	}
	writeOK(w, bk)
}
