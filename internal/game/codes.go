// internal/game/codes.go
package game

import "math/rand"

// codeCharset omits easily confused characters (0/O, 1/I/L) since players
// type codes by hand.
const codeCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// CodeLength is the length of generated room codes.
const CodeLength = 6

// NewRoomCode returns a random room code of n characters. Uniqueness is not
// guaranteed here; CreateRoom retries on collision.
func NewRoomCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}
