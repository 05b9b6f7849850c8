// Copyright 2026 The Strangemood Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/strangemood/strangemood/ledger/charter"
	"github.com/strangemood/strangemood/ledger/common"
	"github.com/strangemood/strangemood/ledger/listing"
	"github.com/strangemood/strangemood/settlement"
)

// server exposes settlement over HTTP, backed by an in-memory ledger
type server struct {
	logger   *slog.Logger
	policy   settlement.Policy
	ledger   *settlement.MemoryLedger
	executor *settlement.Executor
}

func newServer(logger *slog.Logger, policy settlement.Policy, maxAttempts int) *server {
	if logger == nil {
		logger = slog.Default()
	}
	ledger := settlement.NewMemoryLedger()
	return &server{
		logger: logger,
		policy: policy,
		ledger: ledger,
		executor: settlement.NewExecutor(
			ledger,
			settlement.WithLogger(logger),
			settlement.WithPolicy(policy),
			settlement.WithMaxAttempts(maxAttempts),
		),
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post("/settle", s.handleSettle)
	r.Get("/rates/{literal}", s.handleRate)
	r.Route("/charters", func(r chi.Router) {
		r.Post("/", s.handleCreateCharter)
		r.Get("/{id}", s.handleGetCharter)
		r.Patch("/{id}", s.handleUpdateCharter)
	})
	r.Route("/listings", func(r chi.Router) {
		r.Post("/", s.handleCreateListing)
		r.Get("/{mint}", s.handleGetListing)
		r.Post("/{mint}/purchase", s.handlePurchase)
	})
	r.Route("/accounts/{address}", func(r chi.Router) {
		r.Get("/", s.handleGetAccount)
		r.Post("/fund", s.handleFund)
	})
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug(
			"handled request",
			"component", "http",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

type settleRequest struct {
	Price                   uint64      `json:"price"`
	ExpansionRate           common.Rate `json:"expansionRate"`
	PaymentContributionRate common.Rate `json:"paymentContributionRate"`
	VoteContributionRate    common.Rate `json:"voteContributionRate"`
}

// POST /settle
func (s *server) handleSettle(w http.ResponseWriter, r *http.Request) {
	var req settleRequest
	if !s.decode(w, r, &req) {
		return
	}
	c, err := rateCharter(req.ExpansionRate, req.PaymentContributionRate, req.VoteContributionRate)
	if err != nil {
		s.writeError(w, err)
		return
	}
	d, err := s.policy.Settle(req.Price, c)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

type rateResponse struct {
	Rate      common.Rate `json:"rate"`
	Amount    uint64      `json:"amount"`
	Decimals  uint8       `json:"decimals"`
	Percent   string      `json:"percent"`
	Split     bool        `json:"split"`
	Expansion bool        `json:"expansion"`
}

// GET /rates/{literal}
func (s *server) handleRate(w http.ResponseWriter, r *http.Request) {
	rate, err := common.ParseRate(chi.URLParam(r, "literal"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	_, splitErr := rate.Split("rate")
	_, expansionErr := rate.Expansion("rate")
	s.writeJSON(w, http.StatusOK, rateResponse{
		Rate:      rate,
		Amount:    rate.Amount(),
		Decimals:  rate.Decimals(),
		Percent:   rate.Percent(),
		Split:     splitErr == nil,
		Expansion: expansionErr == nil,
	})
}

// POST /charters
func (s *server) handleCreateCharter(w http.ResponseWriter, r *http.Request) {
	var c charter.Charter
	if !s.decode(w, r, &c) {
		return
	}
	if err := s.ledger.CreateCharter(&c); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, &c)
}

// GET /charters/{id}
func (s *server) handleGetCharter(w http.ResponseWriter, r *http.Request) {
	id, err := common.NewBlake2b256FromBech32(charter.IDPrefix, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, errors.Join(common.ErrInvalidInput, err))
		return
	}
	snapshot, err := s.ledger.LoadCharter(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snapshot.Charter)
}

type charterUpdateRequest struct {
	Signer                  common.Address `json:"signer"`
	ExpansionRate           *common.Rate   `json:"expansionRate,omitempty"`
	PaymentContributionRate *common.Rate   `json:"paymentContributionRate,omitempty"`
	VoteContributionRate    *common.Rate   `json:"voteContributionRate,omitempty"`
	MetadataURI             *string        `json:"metadataURI,omitempty"`
}

// PATCH /charters/{id}
func (s *server) handleUpdateCharter(w http.ResponseWriter, r *http.Request) {
	id, err := common.NewBlake2b256FromBech32(charter.IDPrefix, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, errors.Join(common.ErrInvalidInput, err))
		return
	}
	var req charterUpdateRequest
	if !s.decode(w, r, &req) {
		return
	}
	c, err := s.ledger.UpdateCharter(
		common.Signer(req.Signer),
		id,
		charter.Update{
			ExpansionRate:           req.ExpansionRate,
			PaymentContributionRate: req.PaymentContributionRate,
			VoteContributionRate:    req.VoteContributionRate,
			MetadataURI:             req.MetadataURI,
		},
	)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

type listingJSON struct {
	Mint                 common.Address `json:"mint"`
	Seller               common.Address `json:"seller"`
	SellerPaymentDeposit common.Address `json:"sellerPaymentDeposit"`
	SellerVoteDeposit    common.Address `json:"sellerVoteDeposit"`
	Charter              string         `json:"charter"`
	Price                uint64         `json:"price"`
	URI                  string         `json:"uri"`
	Supply               uint64         `json:"supply"`
	Version              uint64         `json:"version,omitempty"`
}

func newListingJSON(l *listing.Listing, version uint64) listingJSON {
	return listingJSON{
		Mint:                 l.Mint,
		Seller:               l.Seller,
		SellerPaymentDeposit: l.SellerPaymentDeposit,
		SellerVoteDeposit:    l.SellerVoteDeposit,
		Charter:              l.Charter.Bech32(charter.IDPrefix),
		Price:                l.Price,
		URI:                  l.URI,
		Supply:               l.Supply,
		Version:              version,
	}
}

// POST /listings
func (s *server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	var req listingJSON
	if !s.decode(w, r, &req) {
		return
	}
	charterID, err := common.NewBlake2b256FromBech32(charter.IDPrefix, req.Charter)
	if err != nil {
		s.writeError(w, errors.Join(common.ErrInvalidInput, err))
		return
	}
	l, err := listing.New(listing.Params{
		Mint:                 req.Mint,
		Seller:               req.Seller,
		SellerPaymentDeposit: req.SellerPaymentDeposit,
		SellerVoteDeposit:    req.SellerVoteDeposit,
		Charter:              charterID,
		Price:                req.Price,
		URI:                  req.URI,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.ledger.CreateListing(l); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, newListingJSON(l, 1))
}

// GET /listings/{mint}
func (s *server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	mint, ok := s.addressParam(w, r, "mint")
	if !ok {
		return
	}
	snapshot, err := s.ledger.LoadListing(r.Context(), mint)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newListingJSON(snapshot.Listing, snapshot.Version))
}

type purchaseRequest struct {
	Buyer common.Address `json:"buyer"`
}

// POST /listings/{mint}/purchase
func (s *server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	mint, ok := s.addressParam(w, r, "mint")
	if !ok {
		return
	}
	var req purchaseRequest
	if !s.decode(w, r, &req) {
		return
	}
	receipt, err := s.executor.Purchase(r.Context(), mint, req.Buyer)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, receipt)
}

type accountResponse struct {
	Address common.Address `json:"address"`
	Payment uint64         `json:"payment"`
	Votes   uint64         `json:"votes"`
}

// GET /accounts/{address}
func (s *server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	addr, ok := s.addressParam(w, r, "address")
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, accountResponse{
		Address: addr,
		Payment: s.ledger.PaymentBalance(addr),
		Votes:   s.ledger.VoteBalance(addr),
	})
}

type fundRequest struct {
	Amount uint64 `json:"amount"`
}

// POST /accounts/{address}/fund
func (s *server) handleFund(w http.ResponseWriter, r *http.Request) {
	addr, ok := s.addressParam(w, r, "address")
	if !ok {
		return
	}
	var req fundRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.ledger.Fund(addr, req.Amount); err != nil {
		s.writeError(w, err)
		return
	}
	s.handleGetAccount(w, r)
}

func (s *server) addressParam(w http.ResponseWriter, r *http.Request, name string) (common.Address, bool) {
	addr, err := common.NewAddressFromString(chi.URLParam(r, name))
	if err != nil {
		s.writeError(w, errors.Join(common.ErrInvalidInput, err))
		return common.Address{}, false
	}
	return addr, true
}

func (s *server) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		s.writeError(w, errors.Join(common.ErrInvalidInput, err))
		return false
	}
	return true
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "component", "http", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, settlement.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, settlement.ErrConflict), errors.Is(err, listing.ErrSoldOut):
		return http.StatusConflict
	case errors.Is(err, settlement.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, common.ErrArithmeticOverflow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrInvalidRate), errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "component", "http", "error", err)
	}
}
