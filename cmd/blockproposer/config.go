package main

import (
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultStoreDir       = "blockproposer-data"
	defaultMinTxs         = 0
	defaultMaxTxs         = 5000
	defaultMaxTxsSigner   = 200
	defaultMaxBlockBytes  = 1 << 20 // 1 MiB
	defaultDifficulty     = 20
	defaultHTTPAddr       = "127.0.0.1:8337"
	defaultLogFilename    = "blockproposer.log"
	defaultErrLogFilename = "blockproposer_err.log"
)

var (
	defaultLogFile    = filepath.Join(defaultStoreDir, defaultLogFilename)
	defaultErrLogFile = filepath.Join(defaultStoreDir, defaultErrLogFilename)
)

type config struct {
	StoreDir       string        `long:"store-dir" description:"Directory for the reference leveldb store"`
	HTTPAddr       string        `long:"http" description:"Listen address for the debug HTTP surface"`
	MinTxs         int           `long:"min-txs" description:"Minimum admitted transactions per block"`
	MaxTxs         int           `long:"max-txs" description:"Maximum admitted transactions per block"`
	MaxTxsSigner   int           `long:"max-txs-per-signer" description:"Maximum admitted transactions per signer per block"`
	MaxBlockBytes  int64         `long:"max-block-bytes" description:"Maximum estimated encoded block size"`
	Difficulty     uint64        `long:"difficulty" description:"Fixed proof-of-work difficulty (leading zero bits)"`
	GatherBudget   time.Duration `long:"gather-budget" description:"Wall-clock budget for gathering staged transactions"`
	MiningWorkers  int           `long:"mining-workers" description:"Number of concurrent mining workers (0 = one per CPU)"`
	LogFile        string        `long:"logfile" description:"File to log output to"`
	ErrLogFile     string        `long:"errlogfile" description:"File to log error output to"`
}

func parseConfig() (*config, error) {
	cfg := &config{
		StoreDir:      defaultStoreDir,
		HTTPAddr:      defaultHTTPAddr,
		MinTxs:        defaultMinTxs,
		MaxTxs:        defaultMaxTxs,
		MaxTxsSigner:  defaultMaxTxsSigner,
		MaxBlockBytes: defaultMaxBlockBytes,
		Difficulty:    defaultDifficulty,
		LogFile:       defaultLogFile,
		ErrLogFile:    defaultErrLogFile,
	}

	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	if _, err := parser.Parse(); err != nil {
		return nil, err
	}

	if cfg.MaxTxs <= 0 {
		return nil, errors.New("--max-txs must be positive")
	}
	if cfg.MaxTxsSigner <= 0 {
		return nil, errors.New("--max-txs-per-signer must be positive")
	}
	if cfg.MaxBlockBytes <= 0 {
		return nil, errors.New("--max-block-bytes must be positive")
	}

	return cfg, nil
}
