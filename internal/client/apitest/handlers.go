package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

type ctxKey struct{}

func userFrom(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "bearer") {
			writeMessage(w, http.StatusUnauthorized, "missing token")
			return
		}
		s.mu.Lock()
		userID, known := s.tokens[token]
		s.mu.Unlock()
		if !known {
			writeMessage(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

// number renders a decimal as a bare JSON number, as the backend does.
func number(d decimal.Decimal) json.Number { return json.Number(d.StringFixed(2)) }

type photoJSON struct {
	PhotoURL string `json:"photoURL"`
	IsMain   bool   `json:"isMain"`
}

type productJSON struct {
	ProductID            string      `json:"productId"`
	ProductName          string      `json:"productName"`
	ProductPrice         json.Number `json:"productPrice"`
	ProductSpecification string      `json:"productSpcefication,omitempty"`
	ProductPhotosList    []photoJSON `json:"productPhotosList"`
}

func toProductJSON(p Product) productJSON {
	out := productJSON{
		ProductID:            p.ID,
		ProductName:          p.Name,
		ProductPrice:         number(p.Price),
		ProductSpecification: p.Specification,
		ProductPhotosList:    []photoJSON{},
	}
	for i, u := range p.PhotoURLs {
		out.ProductPhotosList = append(out.ProductPhotosList, photoJSON{PhotoURL: u, IsMain: i == 0})
	}
	return out
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RegistrationOption int    `json:"registrationOption"`
		Email              string `json:"email"`
		Password           string `json:"password"`
		RememberMe         bool   `json:"rememberMe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed body")
		return
	}
	if req.RegistrationOption != 1 {
		writeMessage(w, http.StatusBadRequest, "unsupported registration option")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, req.Email) && u.Password == req.Password {
			token := s.issueLocked(u.ID)
			resp := map[string]any{"tokenCode": token}
			if !s.OmitIdentity {
				resp["name"] = u.Name
				resp["id"] = u.ID
			}
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}
	writeMessage(w, http.StatusUnauthorized, "invalid email or password")
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]string, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, map[string]string{"id": c.ID, "name": c.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("CategoryID")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []productJSON{}
	for _, p := range s.products[categoryID] {
		out = append(out, toProductJSON(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) findProductLocked(id string) (Product, bool) {
	for _, list := range s.products {
		for _, p := range list {
			if p.ID == id {
				return p, true
			}
		}
	}
	return Product{}, false
}

func (s *Server) handleManageCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID     string   `json:"productId"`
		Quantity      int      `json:"quantity"`
		ExtrasListIDs []string `json:"extrasListIDs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed body")
		return
	}
	if req.Quantity < 0 {
		writeMessage(w, http.StatusBadRequest, "quantity must not be negative")
		return
	}

	userID := userFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findProductLocked(req.ProductID); !ok {
		writeMessage(w, http.StatusBadRequest, "unknown product")
		return
	}

	cart := s.carts[userID]
	if cart == nil {
		cart = map[string]int{}
		s.carts[userID] = cart
	}
	_, existed := cart[req.ProductID]
	if req.Quantity == 0 {
		delete(cart, req.ProductID)
		order := s.cartOrder[userID][:0:0]
		for _, id := range s.cartOrder[userID] {
			if id != req.ProductID {
				order = append(order, id)
			}
		}
		s.cartOrder[userID] = order
	} else {
		cart[req.ProductID] = req.Quantity
		if !existed {
			s.cartOrder[userID] = append(s.cartOrder[userID], req.ProductID)
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []map[string]any{}
	for _, id := range s.cartOrder[userID] {
		p, _ := s.findProductLocked(id)
		qty := s.carts[userID][id]
		line := map[string]any{
			"productId": id,
			"quantity":  qty,
			"products":  toProductJSON(p),
		}
		if !s.OmitLineTotal {
			line["lineTotal"] = number(p.Price.Mul(decimal.NewFromInt(int64(qty))))
		}
		out = append(out, line)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) subtotalLocked(userID string) decimal.Decimal {
	total := decimal.Zero
	for id, qty := range s.carts[userID] {
		p, _ := s.findProductLocked(id)
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}

func (s *Server) handleCalculation(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.carts[userID]) == 0 {
		writeMessage(w, http.StatusBadRequest, "cart is empty")
		return
	}
	sub := s.subtotalLocked(userID)
	writeJSON(w, http.StatusOK, map[string]json.Number{
		"subTotal":         number(sub),
		"discountAmount":   number(decimal.Zero),
		"totalPaidBalance": number(decimal.Zero),
		"totalDue":         number(sub),
		"grandTotal":       number(sub),
	})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AddressID    string `json:"addressId"`
		OrderNotes   string `json:"orderNotes"`
		DiscountCode string `json:"discountCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed body")
		return
	}

	userID := userFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.carts[userID]) == 0 {
		writeMessage(w, http.StatusBadRequest, "cart is empty")
		return
	}
	lines := s.carts[userID]
	s.orders = append(s.orders, Order{
		UserID:       userID,
		AddressID:    req.AddressID,
		Notes:        req.OrderNotes,
		DiscountCode: req.DiscountCode,
		Lines:        lines,
	})
	delete(s.carts, userID)
	delete(s.cartOrder, userID)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orderId": len(s.orders)})
}

func (s *Server) handleAddresses(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []map[string]string{}
	for _, a := range s.addresses[userID] {
		out = append(out, map[string]string{"id": a.ID, "title": a.Title, "details": a.Details})
	}
	writeJSON(w, http.StatusOK, out)
}
