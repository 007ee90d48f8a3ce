package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const SessionIDKey ctxKey = "session_id"

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	sessionID, _ := ctx.Value(SessionIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("session=%s op=%s dur=%dms err=%v", sessionID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("session=%s op=%s dur=%dms", sessionID, name, dur.Milliseconds())
	}
}
