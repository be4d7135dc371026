package builder

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// newQuestionID returns q-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding); ~40 bits of space, plenty for one form.
// crypto/rand.Read never fails on supported platforms.
func newQuestionID() string {
	var b [5]byte
	_, _ = rand.Read(b[:])
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return "q-" + strings.ToLower(enc.EncodeToString(b[:]))
}
