package workerpool

import (
	"github.com/domonda/golog"
	rootlog "github.com/domonda/golog/log"
)

var (
	log = rootlog.NewPackageLogger()

	// OnError will be called for every error that
	// would also be logged.
	OnError = func(error) {}
)

func OverrideLogger(logger *golog.Logger) {
	log = logger
}
