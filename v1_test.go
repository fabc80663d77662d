package rapidid

import (
	"bytes"
	"crypto/rand"
	"errors"
	"net"
	"testing"
	"time"
)

// stepClock returns the times it holds in order, repeating the last one.
type stepClock struct {
	times []time.Time
}

func (c *stepClock) Now() time.Time {
	t := c.times[0]
	if len(c.times) > 1 {
		c.times = c.times[1:]
	}
	return t
}

func noInterfaces() ([]net.Interface, error) { return nil, nil }

func newTestV1(clock Clock) *v1State {
	s := newV1State(clock, rand.Reader)
	s.interfaces = noInterfaces
	return s
}

func TestNewV1(t *testing.T) {
	before := time.Now()
	uuid, err := NewV1()
	if err != nil {
		t.Fatalf("NewV1() error = %v", err)
	}

	if uuid.Version() != VersionTimeBased {
		t.Errorf("NewV1() version = %v, want %v", uuid.Version(), VersionTimeBased)
	}
	if uuid.Variant() != VariantRFC4122 {
		t.Errorf("NewV1() variant = %v, want %v", uuid.Variant(), VariantRFC4122)
	}
	if diff := uuid.Time().Sub(before); diff < -time.Microsecond || diff > time.Second {
		t.Errorf("NewV1() time off by %v", diff)
	}

	node, err := NodeID()
	if err != nil {
		t.Fatalf("NodeID() error = %v", err)
	}
	if !bytes.Equal(uuid.Node(), node) {
		t.Errorf("Node() = %x, want %x", uuid.Node(), node)
	}
}

func TestBuildV1_Layout(t *testing.T) {
	// 2009-02-13 23:31:30 UTC
	at := time.Unix(1234567890, 0)
	ticks := uint64(at.UnixNano()/100) + gregorianOffset
	node := [6]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}

	uuid := buildV1(ticks, 0x1234, node)

	want := "70d9b500-fa26-11dd-9234-010203040506"
	if got := uuid.String(); got != want {
		t.Errorf("buildV1() = %v, want %v", got, want)
	}
	if !uuid.Time().Equal(at) {
		t.Errorf("Time() = %v, want %v", uuid.Time(), at)
	}
	if uuid.ClockSequence() != 0x1234 {
		t.Errorf("ClockSequence() = %#x, want 0x1234", uuid.ClockSequence())
	}
}

func TestV1State_RandomNodeIsMulticast(t *testing.T) {
	s := newTestV1(SystemClock)

	a, err := s.next()
	if err != nil {
		t.Fatalf("next() error = %v", err)
	}
	b, err := s.next()
	if err != nil {
		t.Fatalf("next() error = %v", err)
	}

	if a.Node()[0]&0x01 == 0 {
		t.Errorf("random node %x must have the multicast bit set", a.Node())
	}
	if !bytes.Equal(a.Node(), b.Node()) {
		t.Errorf("node changed between calls: %x then %x", a.Node(), b.Node())
	}
}

func TestV1State_HardwareNode(t *testing.T) {
	s := newV1State(SystemClock, rand.Reader)
	hw := net.HardwareAddr{0x00, 0x1a, 0x2b, 0x3c, 0x4d, 0x5e}
	s.interfaces = func() ([]net.Interface, error) {
		return []net.Interface{
			{Name: "lo"},
			{Name: "zero", HardwareAddr: net.HardwareAddr{0, 0, 0, 0, 0, 0}},
			{Name: "eth0", HardwareAddr: hw},
		}, nil
	}

	uuid, err := s.next()
	if err != nil {
		t.Fatalf("next() error = %v", err)
	}
	if !bytes.Equal(uuid.Node(), hw) {
		t.Errorf("Node() = %x, want %x", uuid.Node(), []byte(hw))
	}
}

func TestV1State_SameTickIsUnique(t *testing.T) {
	at := time.Unix(1700000000, 0)
	s := newTestV1(ClockFunc(func() time.Time { return at }))

	seen := make(map[UUID]bool)
	var prevTicks uint64
	for i := 0; i < 1000; i++ {
		uuid, err := s.next()
		if err != nil {
			t.Fatalf("next() error = %v", err)
		}
		if seen[uuid] {
			t.Fatalf("duplicate UUID %v", uuid)
		}
		seen[uuid] = true
		if ticks := uuid.gregorianTicks(); ticks <= prevTicks {
			t.Fatalf("ticks %d not after %d", ticks, prevTicks)
		} else {
			prevTicks = ticks
		}
	}
}

func TestV1State_ClockRegressionAdvancesSequence(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	clock := &stepClock{times: []time.Time{
		t0,
		t0.Add(time.Second),
		t0, // clock set back
		t0.Add(time.Millisecond),
	}}
	s := newTestV1(clock)

	first := Must(s.next())
	second := Must(s.next())
	back := Must(s.next())
	after := Must(s.next())

	if first.ClockSequence() != second.ClockSequence() {
		t.Errorf("sequence changed without a regression: %d -> %d", first.ClockSequence(), second.ClockSequence())
	}
	if want := (second.ClockSequence() + 1) & 0x3fff; back.ClockSequence() != want {
		t.Errorf("ClockSequence() after regression = %d, want %d", back.ClockSequence(), want)
	}
	if after.ClockSequence() != back.ClockSequence() {
		t.Errorf("sequence should stay at %d once time moves forward again, got %d", back.ClockSequence(), after.ClockSequence())
	}
	if back == first {
		t.Error("UUID after regression collides with an earlier one")
	}
}

func TestSetNodeID(t *testing.T) {
	old, err := NodeID()
	if err != nil {
		t.Fatalf("NodeID() error = %v", err)
	}
	defer SetNodeID(old)

	node := []byte{0x02, 0x00, 0x5e, 0x10, 0x00, 0x01}
	if err := SetNodeID(node); err != nil {
		t.Fatalf("SetNodeID() error = %v", err)
	}
	uuid := Must(NewV1())
	if !bytes.Equal(uuid.Node(), node) {
		t.Errorf("Node() = %x, want %x", uuid.Node(), node)
	}

	if err := SetNodeID([]byte{1, 2, 3}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetNodeID(short) error = %v, want %v", err, ErrInvalidArgument)
	}
}

func TestV1State_EntropyFailure(t *testing.T) {
	s := newV1State(SystemClock, &brokenReader{})
	if _, err := s.next(); !errors.Is(err, ErrEntropy) {
		t.Errorf("next() error = %v, want %v", err, ErrEntropy)
	}
}
