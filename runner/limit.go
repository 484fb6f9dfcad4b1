package runner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const unlimitedText = "unlimited"

// Limit is either Unlimited or a finite limit value. The zero value is
// Unlimited. A finite limit that is not strictly positive is kept as is
// and reported by Valid, it is never treated as unlimited.
type Limit struct {
	n   int64
	set bool
}

// Unlimited is the limit without a ceiling
var Unlimited = Limit{}

// LimitOf creates a finite limit of n
func LimitOf(n int64) Limit {
	return Limit{n: n, set: true}
}

// IsUnlimited reports whether l has no ceiling
func (l Limit) IsUnlimited() bool {
	return !l.set
}

// Value returns the finite value, ok is false for Unlimited
func (l Limit) Value() (int64, bool) {
	return l.n, l.set
}

// Valid reports whether l is Unlimited or strictly positive
func (l Limit) Valid() bool {
	return !l.set || l.n > 0
}

// Exceeded reports whether v is over a finite limit
func (l Limit) Exceeded(v int64) bool {
	return l.set && v > l.n
}

// Duration interprets a finite limit as milliseconds
func (l Limit) Duration() time.Duration {
	if !l.set {
		return 0
	}
	return time.Duration(l.n) * time.Millisecond
}

func (l Limit) String() string {
	if !l.set {
		return unlimitedText
	}
	return strconv.FormatInt(l.n, 10)
}

// Set parses "unlimited" or a decimal integer
func (l *Limit) Set(str string) error {
	str = strings.TrimSpace(str)
	if strings.EqualFold(str, unlimitedText) {
		*l = Unlimited
		return nil
	}
	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return fmt.Errorf("limit: invalid value %q", str)
	}
	*l = LimitOf(n)
	return nil
}

// Type is used by pflag
func (l *Limit) Type() string {
	return "limit"
}

// MarshalText encodes the limit in the same form accepted by Set
func (l Limit) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes the limit with Set
func (l *Limit) UnmarshalText(b []byte) error {
	return l.Set(string(b))
}

// SizeLimit is a Limit in bytes. Its text form also accepts the unit
// suffixes of Size (e.g. 256m).
type SizeLimit struct {
	Limit
}

// SizeLimitOf creates a finite byte limit of n
func SizeLimitOf(n int64) SizeLimit {
	return SizeLimit{LimitOf(n)}
}

// Set parses "unlimited", a decimal integer or a byte size accepted by
// Size
func (l *SizeLimit) Set(str string) error {
	if err := l.Limit.Set(str); err == nil {
		return nil
	}
	str = strings.TrimSpace(str)
	var s Size
	if err := s.Set(str); err != nil {
		return fmt.Errorf("limit: invalid size %q", str)
	}
	if s > math.MaxInt64 {
		return fmt.Errorf("limit: size %q out of range", str)
	}
	l.Limit = LimitOf(int64(s))
	return nil
}

// Type is used by pflag
func (l *SizeLimit) Type() string {
	return "size"
}

// UnmarshalText decodes the limit with Set
func (l *SizeLimit) UnmarshalText(b []byte) error {
	return l.Set(string(b))
}
