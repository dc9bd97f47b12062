package resolve

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// fakeLookuper counts calls and serves whatever it is told to.
type fakeLookuper struct {
	calls int
	host  string
	err   error
}

func (f *fakeLookuper) LookupAddr(ip netip.Addr) (string, error) {
	f.calls++
	return f.host, f.err
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestResolve_CachingMemoizes(t *testing.T) {
	ip := netip.MustParseAddr("8.8.8.8")
	lk := &fakeLookuper{host: "dns.google"}
	r := New(testLogger(), lk, NewMapCache(), true)

	assert.Equal(t, "dns.google", r.Resolve(ip))
	// Even if the underlying record changes, the first answer sticks.
	lk.host = "changed.example.com"
	assert.Equal(t, "dns.google", r.Resolve(ip))
	assert.Equal(t, 1, lk.calls)
	assert.Equal(t, 1, r.CacheLen())
}

func TestResolve_CachingDisabled(t *testing.T) {
	ip := netip.MustParseAddr("8.8.8.8")
	lk := &fakeLookuper{host: "dns.google"}
	r := New(testLogger(), lk, NewMapCache(), false)

	assert.Equal(t, "dns.google", r.Resolve(ip))
	lk.host = "changed.example.com"
	assert.Equal(t, "changed.example.com", r.Resolve(ip))
	assert.Equal(t, 2, lk.calls)
	assert.Equal(t, 0, r.CacheLen())
}

func TestResolve_FailureIsCachedAsEmpty(t *testing.T) {
	ip := netip.MustParseAddr("192.0.2.1")
	lk := &fakeLookuper{err: errors.New("NXDOMAIN")}
	r := New(testLogger(), lk, NewMapCache(), true)

	assert.Equal(t, "", r.Resolve(ip))
	assert.Equal(t, "", r.Resolve(ip))
	assert.Equal(t, 1, lk.calls, "failed lookup should be memoized too")
}

func TestResolve_SelfAnswerMeansNoName(t *testing.T) {
	ip := netip.MustParseAddr("192.0.2.1")
	lk := &fakeLookuper{host: "192.0.2.1"}
	r := New(testLogger(), lk, NewMapCache(), true)

	assert.Equal(t, "", r.Resolve(ip))
}

func TestMapCache(t *testing.T) {
	c := NewMapCache()
	ip := netip.MustParseAddr("10.0.0.1")

	_, ok := c.Get(ip)
	assert.False(t, ok)

	c.Put(ip, "")
	host, ok := c.Get(ip)
	assert.True(t, ok, "empty string is a real cached value")
	assert.Equal(t, "", host)
	assert.Equal(t, 1, c.Len())
}
