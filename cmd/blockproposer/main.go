package main

import (
	"encoding/binary"
	"fmt"
	"net/http"
	"os"

	"github.com/daglabs/proposer/chain"
	"github.com/daglabs/proposer/codec/simplecodec"
	"github.com/daglabs/proposer/domain/proposal"
	"github.com/daglabs/proposer/evaluator"
	"github.com/daglabs/proposer/policy"
	"github.com/daglabs/proposer/stage"
	"github.com/daglabs/proposer/store/leveldbstore"
	"github.com/daglabs/proposer/util"
	"github.com/daglabs/proposer/util/panics"
)

// main wires a single instance of every collaborator the core needs and
// serves the debug HTTP surface. It is a harness for exercising the
// domain stack, not a product CLI: no subcommands, no interactive shell.
func main() {
	defer panics.HandlePanic(log, nil)

	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}
	initLog(cfg.LogFile, cfg.ErrLogFile)

	store, err := leveldbstore.Open(cfg.StoreDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %s\n", err)
		os.Exit(1)
	}
	defer store.Close()

	seed, err := util.Uint64()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating chain id: %s\n", err)
		os.Exit(1)
	}
	var chainID [32]byte
	binary.LittleEndian.PutUint64(chainID[:8], seed)

	codec := simplecodec.New()
	pool := stage.New()
	pol := policy.Static{
		BlockBytes:            cfg.MaxBlockBytes,
		TransactionsPerBlock:  cfg.MaxTxs,
		TransactionsPerSigner: cfg.MaxTxsSigner,
		MinTransactions:       cfg.MinTxs,
		Difficulty:            cfg.Difficulty,
	}
	c := chain.New(chainID, store)
	eval := evaluator.New(codec)

	proposerConfig := proposal.Config{GatherBudget: cfg.GatherBudget, MiningWorkers: cfg.MiningWorkers}
	metadataBuilder := proposal.NewBlockMetadataBuilder(pol, store)
	sizeEstimator := proposal.NewSizeEstimator(codec)
	gatherer := proposal.NewTxGatherer(pool, store, pol, sizeEstimator)
	miningDriver := proposal.NewMiningDriver(codec, proposerConfig.MiningWorkers)
	proposer := proposal.NewProposer(proposerConfig, metadataBuilder, gatherer, miningDriver, store, eval, pol)

	proposerKey, err := util.Uint64()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating proposer key: %s\n", err)
		os.Exit(1)
	}
	proposerKeyBytes := []byte(fmt.Sprintf("%d", proposerKey))

	router := newDebugServer(proposer, c, proposerKeyBytes)

	log.Infof("listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		log.Criticalf("HTTP server failed: %s", err)
		os.Exit(1)
	}
}
