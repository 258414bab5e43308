package proposal

import (
	"runtime"
	"sync"

	"github.com/daglabs/proposer/domain/proposal/model"
)

// MiningDriver runs the cancellable proof-of-work search over a block's
// content: it tries nonces until one produces a hash meeting the
// difficulty target embedded in the block's metadata, or until it is
// cancelled.
type MiningDriver struct {
	codec   model.BlockCodec
	workers int
}

// NewMiningDriver returns a MiningDriver backed by codec. workers is the
// number of concurrent search goroutines, each over a disjoint nonce
// partition; zero means one per available CPU.
func NewMiningDriver(codec model.BlockCodec, workers int) *MiningDriver {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &MiningDriver{codec: codec, workers: workers}
}

// miningResult is a single worker's winning nonce and hash.
type miningResult struct {
	nonce uint64
	hash  model.Hash
}

// Mine searches for a nonce such that hashing content's metadata and
// transactions together with that nonce meets content's difficulty target.
// It returns a PreEvaluationBlock on success, or a *CancelledError if
// cancel fires before any worker finds a winner.
//
// cancel is itself the logical OR of the caller's cancellation and the
// Proposer's internal tip-watcher; this driver does not know or care which
// source tripped it, only whether reason is already decided by the time
// Mine observes the close.
func (d *MiningDriver) Mine(content model.BlockContent, cancel <-chan struct{}, reason func() CancelReason) (model.PreEvaluationBlock, error) {
	stop := make(chan struct{})
	results := make(chan miningResult, d.workers)

	var wg sync.WaitGroup
	for worker := 0; worker < d.workers; worker++ {
		wg.Add(1)
		workerIndex := worker
		spawn(func() {
			defer wg.Done()
			d.search(content, uint64(workerIndex), uint64(d.workers), stop, results)
		})
	}

	var (
		winner miningResult
		won    bool
	)
	select {
	case res := <-results:
		won = true
		winner = res
	case <-cancel:
	}
	close(stop)

	if !won {
		// Drain in case a worker raced to a result concurrently with
		// cancellation; prefer a genuine find over reporting Cancelled.
		select {
		case res := <-results:
			won = true
			winner = res
		default:
		}
	}

	wg.Wait()

	if !won {
		return model.PreEvaluationBlock{}, &CancelledError{Reason: reason()}
	}

	return model.PreEvaluationBlock{
		Content:           content,
		Nonce:             winner.nonce,
		PreEvaluationHash: winner.hash,
	}, nil
}

// search is a single worker's loop: it tries every nonce congruent to
// workerIndex modulo workerCount, checking stop with bounded latency.
func (d *MiningDriver) search(content model.BlockContent, workerIndex, workerCount uint64, stop <-chan struct{}, results chan<- miningResult) {
	const checkInterval = 1 << 12

	nonce := workerIndex
	for attempt := uint64(0); ; attempt++ {
		if attempt%checkInterval == 0 {
			select {
			case <-stop:
				return
			default:
			}
		}

		data := d.codec.MarshalForPoW(content.Metadata, content.Transactions, nonce)
		hash := d.codec.Hash(data)
		if d.codec.MeetsDifficulty(hash, content.Metadata.Difficulty) {
			select {
			case results <- miningResult{nonce: nonce, hash: hash}:
			case <-stop:
			}
			return
		}

		nonce += workerCount
	}
}
