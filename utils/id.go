package idUtils

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// NewID returns a fresh unique identifier for posts and replies.
func NewID() string {
	return uuid.NewString()
}

// ReplyAuthor returns the pseudonymous display name used for reply authors.
func ReplyAuthor() string {
	return fmt.Sprintf("neighbor_%d", rand.Intn(1000))
}
