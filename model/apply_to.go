package model

const (
	depthZero     = "0"
	depthOne      = "1"
	depthInfinity = "infinity"
)

// PropfindApplyTo selects how deep a PROPFIND goes. Only the three exported
// values exist; the zero value means "resource and direct children".
type PropfindApplyTo struct {
	depth string
}

var (
	PropfindApplyToResource               = PropfindApplyTo{depth: depthZero}
	PropfindApplyToResourceAndChildren    = PropfindApplyTo{depth: depthOne}
	PropfindApplyToResourceAndDescendants = PropfindApplyTo{depth: depthInfinity}
)

func (a PropfindApplyTo) Depth() string {
	if a.depth == "" {
		return depthOne
	}
	return a.depth
}

// CopyApplyTo is the Depth of a COPY or MOVE. RFC 4918 forbids depth 1 here,
// so there is no value for it. The zero value means infinity.
type CopyApplyTo struct {
	depth string
}

var (
	CopyApplyToResource               = CopyApplyTo{depth: depthZero}
	CopyApplyToResourceAndDescendants = CopyApplyTo{depth: depthInfinity}
)

func (a CopyApplyTo) Depth() string {
	if a.depth == "" {
		return depthInfinity
	}
	return a.depth
}

// LockApplyTo is the Depth of a LOCK, 0 or infinity. The zero value means
// infinity.
type LockApplyTo struct {
	depth string
}

var (
	LockApplyToResource               = LockApplyTo{depth: depthZero}
	LockApplyToResourceAndDescendants = LockApplyTo{depth: depthInfinity}
)

func (a LockApplyTo) Depth() string {
	if a.depth == "" {
		return depthInfinity
	}
	return a.depth
}

// ParseLockApplyTo maps a depth reported by a server back to a LockApplyTo.
// Anything but "0" is treated as infinity.
func ParseLockApplyTo(depth string) LockApplyTo {
	if depth == depthZero {
		return LockApplyToResource
	}
	return LockApplyToResourceAndDescendants
}
