package main

import (
	"github.com/daglabs/proposer/logger"
	"github.com/daglabs/proposer/logs"
	"github.com/daglabs/proposer/util/panics"
)

var log logs.Logger
var spawn func(func())

func init() {
	log, _ = logger.Get(logger.SubsystemTags.CLI)
	spawn = panics.GoroutineWrapperFunc(log)
}

func initLog(logFile, errLogFile string) {
	logger.InitLogRotators(logFile, errLogFile)
}
