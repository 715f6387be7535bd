package xid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// New returns a time-ordered identifier unique per call, e.g. "inv-0192...".
func New(prefix string) string {
	id, err := uuid.NewV7()
	if err == nil {
		return fmt.Sprintf("%s-%s", prefix, id.String())
	}

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixNano(), hex.EncodeToString(buf))
}
