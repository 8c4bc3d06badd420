package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Lowercase only, so ids stay distinct on case insensitive file systems
// when objects are downloaded.
const objectIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateObjectID returns a random id of n characters for storage keys.
func GenerateObjectID(n int) (string, error) {
	return gonanoid.Generate(objectIDAlphabet, n)
}
