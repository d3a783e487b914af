package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-kit/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go-commodity-market/basket"
	"go-commodity-market/domain"
	"go-commodity-market/factory"
	"go-commodity-market/payment"
)

// Server dependencies for HTTP Server functions
type Server struct {
	Service payment.Service
	Factory factory.Factory
	logger  log.Logger
	router  *http.ServeMux
}

// NewServer returns a Server routing requests to s. f resolves commodities for basket statistics.
func NewServer(s payment.Service, f factory.Factory, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	server := &Server{
		Service: s,
		Factory: f,
		logger:  logger,
		router:  http.NewServeMux(),
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	s.router.Handle("GET /{$}", s.home())
	s.router.Handle("POST /api/payment", s.payment())
	s.router.Handle("POST /api/basket/stats", s.stats())
	s.router.Handle("/", s.notFound())
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

// quantity a decimal posted either as a JSON number or a JSON string
type quantity string

func (q *quantity) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*q = quantity(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	*q = quantity(str)
	return nil
}

func (q quantity) parse(field string) (decimal.Decimal, error) {
	d, err := domain.ParseQuantity(string(q))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%v: %w", field, err)
	}
	return d, nil
}

// home reports the service is up
func (s *Server) home() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		s.respond(rw, http.StatusOK, map[string]string{"service": "market", "status": "ok"})
	}
}

// notFound answers every unrouted path
func (s *Server) notFound() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		s.respond(rw, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

// payment settles a single-commodity payment against a single-commodity loan
func (s *Server) payment() http.HandlerFunc {

	// request for unmarshalling JSON requests posted by clients
	type request struct {
		Commodity     string   `json:"commodity"`
		Quantity      quantity `json:"quantity"`
		LoanCommodity string   `json:"loanCommodity"`
		LoanQuantity  quantity `json:"loanQuantity"`
		Amount        quantity `json:"amount"`
	}

	// response for marshalling JSON responses to return to clients
	type response struct {
		ID     string        `json:"id"`
		Change domain.Stat   `json:"change"`
		Paid   []domain.Stat `json:"paid"`
		Loan   []domain.Stat `json:"loan"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respond(rw, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}

		res, err := s.settle(r.Context(), req.Commodity, req.Quantity, req.LoanCommodity, req.LoanQuantity, req.Amount)
		if err != nil {
			s.fail(rw, err)
			return
		}

		s.respond(rw, http.StatusOK, response{
			ID:     uuid.NewString(),
			Change: res.change.Stat(),
			Paid:   res.paid.DumpStats(),
			Loan:   res.loan.DumpStats(),
		})
	}
}

type settlement struct {
	change domain.CommodityStore
	paid   *basket.Basket
	loan   *basket.Basket
}

func (s *Server) settle(ctx context.Context, commodity string, qty quantity, loanCommodity string, loanQty quantity, amt quantity) (settlement, error) {
	q, err := qty.parse("quantity")
	if err != nil {
		return settlement{}, err
	}
	lq, err := loanQty.parse("loanQuantity")
	if err != nil {
		return settlement{}, err
	}
	amount, err := amt.parse("amount")
	if err != nil {
		return settlement{}, err
	}

	paid, err := s.Service.BuildPaymentBasket(ctx, commodity, q)
	if err != nil {
		return settlement{}, err
	}
	loan, err := s.Service.BuildLoanBasket(ctx, loanCommodity, lq)
	if err != nil {
		return settlement{}, err
	}

	res, err := s.Service.Settle(ctx, paid, loan, amount)
	if err != nil {
		return settlement{}, err
	}
	return settlement{change: res.Change, paid: paid, loan: res.Remaining}, nil
}

// stats values an arbitrary basket
func (s *Server) stats() http.HandlerFunc {

	type item struct {
		Commodity string   `json:"commodity"`
		Quantity  quantity `json:"quantity"`
	}

	type request struct {
		Items []item `json:"items"`
	}

	type response struct {
		Stats []domain.Stat `json:"stats"`
		Total json.Number   `json:"total"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respond(rw, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}

		b := basket.New()
		for i, it := range req.Items {
			q, err := it.Quantity.parse(fmt.Sprintf("items[%d].quantity", i))
			if err != nil {
				s.fail(rw, err)
				return
			}
			commodity, err := s.Factory.Build(r.Context(), it.Commodity)
			if err != nil {
				s.fail(rw, err)
				return
			}
			if err := b.Add(commodity, q); err != nil {
				s.fail(rw, err)
				return
			}
		}

		s.respond(rw, http.StatusOK, response{
			Stats: b.DumpStats(),
			Total: json.Number(b.TotalValuation().String()),
		})
	}
}

// statusFor maps a market error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCommodityNotFound), errors.Is(err, factory.ErrUnknownCommodity):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrEmptyBasket):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(rw http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Log("msg", "request failed", "err", err)
		msg = "internal error"
	}
	s.respond(rw, status, map[string]string{"error": msg})
}

func (s *Server) respond(rw http.ResponseWriter, status int, body interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(body); err != nil {
		s.logger.Log("msg", "failed json encoding", "err", err)
	}
}
