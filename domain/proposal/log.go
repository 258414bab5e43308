package proposal

import (
	"github.com/daglabs/proposer/logger"
	"github.com/daglabs/proposer/logs"
	"github.com/daglabs/proposer/util/panics"
)

// log is a logger that is initialized with no output filters. This means
// the package will not perform any logging by default until the caller
// requests it.
var log logs.Logger
var spawn func(func())

func init() {
	log, _ = logger.Get(logger.SubsystemTags.PROP)
	spawn = panics.GoroutineWrapperFunc(log)
}
