package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/daglabs/proposer/chain"
	"github.com/daglabs/proposer/domain/proposal"
	"github.com/gorilla/mux"
)

// debugServer exposes a tiny HTTP surface over the running proposer: a
// liveness check and an endpoint that triggers one proposal attempt. It
// exists to exercise the domain stack end to end, not as a product API.
type debugServer struct {
	proposer    *proposal.Proposer
	chain       *chain.Chain
	proposerKey []byte
}

func newDebugServer(p *proposal.Proposer, c *chain.Chain, proposerKey []byte) *mux.Router {
	s := &debugServer{proposer: p, chain: c, proposerKey: proposerKey}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	router.HandleFunc("/propose", s.handlePropose).Methods(http.MethodPost)
	return router
}

func (s *debugServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "ok, chain count=%d\n", s.chain.Count())
}

func (s *debugServer) handlePropose(w http.ResponseWriter, r *http.Request) {
	block, err := s.proposer.Propose(s.chain, s.proposerKey, proposal.ProposeOptions{})
	if err != nil {
		log.Errorf("propose failed: %s", err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Index int    `json:"index"`
		Hash  string `json:"hash"`
	}{
		Index: int(block.PreEvaluation.Content.Metadata.Index),
		Hash:  block.Hash.String(),
	})
}
