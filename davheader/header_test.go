package davheader

import (
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xxxsen/davkit/model"
)

func TestIfToken(t *testing.T) {
	assert.Equal(t, "(<urn:uuid:X>)", IfToken("urn:uuid:X"))
	// already bracketed input is wrapped again on purpose, servers are not
	// known to tolerate a normalized form any better.
	assert.Equal(t, "(<<urn:uuid:X>>)", IfToken("<urn:uuid:X>"))
	assert.Equal(t, "<http://a/b> (<urn:uuid:X>)", TaggedIf("http://a/b", "urn:uuid:X"))
}

func TestLockTokenHeader(t *testing.T) {
	assert.Equal(t, "<urn:uuid:X>", LockToken("urn:uuid:X"))
	assert.Equal(t, "urn:uuid:X", ParseLockToken(" <urn:uuid:X> "))
	assert.Equal(t, "urn:uuid:X", ParseLockToken("urn:uuid:X"))
}

func TestOverwrite(t *testing.T) {
	assert.Equal(t, "T", Overwrite(true))
	assert.Equal(t, "F", Overwrite(false))
}

func TestTimeout(t *testing.T) {
	_, ok := Timeout(0)
	assert.False(t, ok)
	v, ok := Timeout(model.InfiniteLockTimeout)
	assert.True(t, ok)
	assert.Equal(t, "Infinite", v)
	v, ok = Timeout(model.LockTimeoutOf(3600 * time.Second))
	assert.True(t, ok)
	assert.Equal(t, "Second-3600", v)
	v, _ = Timeout(model.LockTimeoutOf(10 * time.Millisecond))
	assert.Equal(t, "Second-1", v)
}

func TestParseTimeout(t *testing.T) {
	assert.Equal(t, model.LockTimeoutOf(604800*time.Second), ParseTimeout("Second-604800"))
	assert.Equal(t, model.LockTimeoutOf(10*time.Second), ParseTimeout("second-10"))
	assert.True(t, ParseTimeout("Infinite").IsInfinite())
	assert.True(t, ParseTimeout("Infinite, Second-4100000000").IsInfinite())
	assert.Equal(t, model.LockTimeoutOf(5*time.Second), ParseTimeout("Bogus, Second-5"))
	assert.True(t, ParseTimeout("garbage").IsServerDefault())
	assert.True(t, ParseTimeout("Second--5").IsServerDefault())

	for _, v := range []string{"Second-10000000000", "Second-99999999999999999999"} {
		got := ParseTimeout(v)
		assert.False(t, got.IsInfinite(), v)
		assert.False(t, got.IsServerDefault(), v)
		assert.Equal(t, time.Duration(math.MaxInt64/int64(time.Second))*time.Second, got.Duration(), v)
	}
	zero := ParseTimeout("Second-0")
	assert.False(t, zero.IsServerDefault())
	assert.Equal(t, time.Second, zero.Duration())
}

func TestParseStatusLine(t *testing.T) {
	assert.Equal(t, 200, ParseStatusLine("HTTP/1.1 200 OK"))
	assert.Equal(t, 404, ParseStatusLine("HTTP/1.1 404 Not Found"))
	assert.Equal(t, 0, ParseStatusLine("HTTP/1.1"))
	assert.Equal(t, 0, ParseStatusLine("HTTP/1.1 abc"))
}

func TestSplitList(t *testing.T) {
	h := http.Header{}
	h.Add("DAV", "1, 2")
	h.Add("DAV", "3,,access-control")
	assert.Equal(t, []string{"1", "2", "3", "access-control"}, SplitList(h.Values("DAV")))
}
