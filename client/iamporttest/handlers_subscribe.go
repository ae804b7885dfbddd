package iamporttest

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/iamporter/iamporter-go/client"
)

// luhnValid reports whether the digits of number pass the Luhn checksum.
// Dashes and spaces are ignored.
func luhnValid(number string) bool {
	digits := strings.NewReplacer("-", "", " ", "").Replace(number)
	if len(digits) < 12 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func maskCard(number string) string {
	digits := strings.NewReplacer("-", "", " ", "").Replace(number)
	if len(digits) < 10 {
		return digits
	}
	return digits[:6] + strings.Repeat("*", len(digits)-10) + digits[len(digits)-4:]
}

// charge records a paid card payment, rejecting a merchant_uid already paid.
func (s *Server) charge(w http.ResponseWriter, p map[string]string, customerUID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		if c := s.payments[id]; c.MerchantUID == p["merchant_uid"] && c.Status == client.StatusPaid {
			writeEnvelope(w, http.StatusOK, 1, msgDuplicateOrder, nil)
			return
		}
	}
	stored := s.storeLocked(client.Payment{
		MerchantUID: p["merchant_uid"],
		Amount:      amountOf(p),
		Name:        p["name"],
		PayMethod:   "card",
		PGProvider:  "nice",
		PGTID:       uuid.NewString(),
		CardNumber:  maskCard(p["card_number"]),
		BuyerName:   p["buyer_name"],
		BuyerEmail:  p["buyer_email"],
		BuyerTel:    p["buyer_tel"],
		CustomerUID: customerUID,
		Status:      client.StatusPaid,
	})
	writeOK(w, *stored)
}

func (s *Server) payOnetime(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, -1, err.Error(), nil)
		return
	}
	if !luhnValid(p["card_number"]) {
		writeEnvelope(w, http.StatusOK, -1, client.MsgInvalidCardNumber, nil)
		return
	}
	if cu := p["customer_uid"]; cu != "" {
		s.mu.Lock()
		s.billing[cu] = s.billingKeyLocked(cu, p)
		s.mu.Unlock()
	}
	s.charge(w, p, p["customer_uid"])
}

func (s *Server) payForeign(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, -1, err.Error(), nil)
		return
	}
	if !luhnValid(p["card_number"]) {
		writeEnvelope(w, http.StatusOK, -1, client.MsgInvalidCardNumber, nil)
		return
	}
	s.charge(w, p, "")
}

func (s *Server) payAgain(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, -1, err.Error(), nil)
		return
	}
	s.mu.Lock()
	bk, ok := s.billing[p["customer_uid"]]
	s.mu.Unlock()
	if !ok {
		writeEnvelope(w, http.StatusOK, 1, client.MsgUnknownCustomer, nil)
		return
	}
	p["card_number"] = bk.CardNumber
	s.charge(w, p, bk.CustomerUID)
}
