package util

import (
	"context"

	"github.com/dnstrust/dnstrust/log"
)

// LogOnError logs message only if err is not nil.
func LogOnError(ctx context.Context, message string, err error) {
	if err != nil {
		log.FromCtx(ctx).Error(message, err)
	}
}

// FatalOnError logs message only if err is not nil, then exits.
func FatalOnError(message string, err error) {
	if err != nil {
		log.Log().Fatal(message, err)
	}
}
