package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// KeyBuilder derives cache keys under a fixed namespace prefix.
//
// List and search keys embed an epoch: a per-entity-kind counter bumped on
// every write. Bumping the epoch orphans all previously cached list/search
// entries at once, without enumerating them; orphans expire on their own TTL.
type KeyBuilder struct {
	namespace string
}

// NewKeyBuilder creates a builder for the given namespace (e.g. "pls").
func NewKeyBuilder(namespace string) *KeyBuilder {
	return &KeyBuilder{namespace: namespace}
}

// Entity returns the key for a single record: {ns}:{kind}:{id}.
func (b *KeyBuilder) Entity(kind, id string) string {
	return b.namespace + ":" + kind + ":" + id
}

// Epoch returns the key of the epoch counter for an entity kind.
func (b *KeyBuilder) Epoch(kind string) string {
	return b.namespace + ":" + kind + ":epoch"
}

// List returns the epoch-stamped key for one page of an entity listing.
func (b *KeyBuilder) List(kind string, epoch int64, page, limit int) string {
	return fmt.Sprintf("%s:%s:v%d:page:%d:limit:%d", b.namespace, kind, epoch, page, limit)
}

// Search returns the epoch-stamped key for a filtered search. The canonical
// string must be a stable, fixed-order rendering of the filter so that
// semantically identical queries always collide to the same key.
func (b *KeyBuilder) Search(epoch int64, canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return fmt.Sprintf("%s:search:v%d:%s", b.namespace, epoch, hex.EncodeToString(sum[:]))
}

// UserScoped returns the key for a per-user collection: {ns}:{kind}:{userId}.
func (b *KeyBuilder) UserScoped(kind, userID string) string {
	return b.namespace + ":" + kind + ":" + userID
}
