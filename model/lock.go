package model

import "time"

type LockScope int

const (
	LockScopeExclusive LockScope = iota
	LockScopeShared
)

func (s LockScope) String() string {
	if s == LockScopeShared {
		return "shared"
	}
	return "exclusive"
}

// LockOwner is the <owner> of a lock, either free text or a URI that is
// serialized as <href>.
type LockOwner struct {
	Value  string
	IsHref bool
}

func TextOwner(v string) *LockOwner {
	return &LockOwner{Value: v}
}

func HrefOwner(v string) *LockOwner {
	return &LockOwner{Value: v, IsHref: true}
}

// LockTimeout is the lifetime asked for or granted on a lock. 0 leaves the
// choice to the server.
type LockTimeout time.Duration

const (
	InfiniteLockTimeout LockTimeout = -1
)

func LockTimeoutOf(d time.Duration) LockTimeout {
	return LockTimeout(d)
}

func (t LockTimeout) IsInfinite() bool {
	return t == InfiniteLockTimeout
}

func (t LockTimeout) IsServerDefault() bool {
	return t == 0
}

func (t LockTimeout) Duration() time.Duration {
	if t < 0 {
		return 0
	}
	return time.Duration(t)
}

func (t LockTimeout) String() string {
	switch {
	case t.IsInfinite():
		return "infinite"
	case t.IsServerDefault():
		return "default"
	}
	return time.Duration(t).String()
}

type LockInfo struct {
	Scope   LockScope
	Depth   LockApplyTo
	Owner   LockOwner
	Timeout LockTimeout
	Root    string
	Token   string
}
