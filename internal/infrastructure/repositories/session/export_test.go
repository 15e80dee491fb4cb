package session

import "time"

// SetClock overrides the codec clock for testing.
func (c *JWTSessionCodec) SetClock(now func() time.Time) { c.now = now }
