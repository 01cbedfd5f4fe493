package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time logs the duration and outcome of a named operation. Use as:
//
//	defer obs.Time(ctx, "ors.geocode")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}

// Count logs a named counter. Used for per-batch observations such as
// geocode failure counts, which are reported here rather than returned
// up the call chain.
func Count(ctx context.Context, name string, n int) {
	if n == 0 {
		return
	}
	reqID, _ := ctx.Value(RequestIDKey).(string)
	log.Printf("req_id=%s counter=%s value=%d", reqID, name, n)
}
