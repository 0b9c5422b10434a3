package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateOrderID builds "<prefix>-<unix millis>-<9 base36 chars>". Not guaranteed unique;
// good enough for a single in-memory session.
func GenerateOrderID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), randomBase36(9))
}

// GenerateUserID mirrors the signup id: the creation time in unix millis.
func GenerateUserID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

func randomBase36(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// Fall back to the clock if the entropy source fails
			idx = big.NewInt(time.Now().UnixNano() % int64(len(base36Alphabet)))
		}
		out[i] = base36Alphabet[idx.Int64()]
	}
	return string(out)
}
