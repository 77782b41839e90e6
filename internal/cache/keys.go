package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Namespace prefixes every key so logical caches (rank, metros) never collide
// and pattern invalidation can target the whole application.
const Namespace = "livebetter"

// Key builds "livebetter:<prefix>:<hash>" from a canonical encoding of the
// given fields. Fields are sorted by name before hashing, so two callers that
// assemble the same effective parameter set in different orders produce the
// same key.
func Key(prefix string, fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(fields[name])
	}

	sum := sha256.Sum256([]byte(b.String()))
	return Namespace + ":" + prefix + ":" + hex.EncodeToString(sum[:])[:12]
}

// Pattern returns the glob matching every key under a logical prefix.
func Pattern(prefix string) string {
	return Namespace + ":" + prefix + ":*"
}
