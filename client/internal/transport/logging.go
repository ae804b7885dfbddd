package transport

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamporter/iamporter-go/client/internal/types"
)

// restyLogger routes resty's own diagnostics through the global zerolog logger.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) { log.Error().Msgf(format, v...) }
func (restyLogger) Warnf(format string, v ...interface{})  { log.Warn().Msgf(format, v...) }
func (restyLogger) Debugf(format string, v ...interface{}) { log.Debug().Msgf(format, v...) }

func logRetry(op types.Operation, attempt int, wait time.Duration, err error) {
	log.Debug().
		Str("operation", op.Name).
		Int("attempt", attempt).
		Dur("backoff", wait).
		Err(err).
		Msg("retrying iamport request")
}
