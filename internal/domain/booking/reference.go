package booking

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewReference builds a human-readable booking code,
// e.g. BK-MF1Q2R3S-A7XK.
func NewReference() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return "BK-" + timestamp + "-" + randomUpper(4)
}

func randomUpper(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36Upper[rand.Intn(len(base36Upper))]
	}
	return string(b)
}
