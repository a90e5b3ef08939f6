package checkpoint

import "time"

const tokenLayoutConstant = "20060102_150405"

// Token identifies one checkpoint run and names every artifact the run produces.
type Token string

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// NewToken derives the timestamp token for a run beginning at the supplied local time.
func NewToken(runStart time.Time) Token {
	return Token(runStart.Format(tokenLayoutConstant))
}

// String returns the token text.
func (token Token) String() string {
	return string(token)
}
