package rapidid

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
)

// gregorianOffset is the number of 100ns ticks between 1582-10-15 and 1970-01-01.
const gregorianOffset = 0x01B21DD213814000

// v1State is the process-wide node and clock sequence shared by every
// version 1 UUID. It is initialised once, on first use.
type v1State struct {
	once    sync.Once
	initErr error

	mu         sync.Mutex
	node       [6]byte
	clockSeq   uint16 // 14 bits
	lastSeen   uint64 // last tick read from the clock
	lastIssued uint64 // last tick written into a UUID

	clock      Clock
	randReader io.Reader
	interfaces func() ([]net.Interface, error)
}

func newV1State(c Clock, r io.Reader) *v1State {
	return &v1State{
		clock:      c,
		randReader: r,
		interfaces: net.Interfaces,
	}
}

var timeBased = newV1State(SystemClock, entropy)

// NewV1 generates a time-based (version 1) UUID from the current time, the
// process clock sequence and the node ID.
func NewV1() (UUID, error) {
	return timeBased.next()
}

// SetNodeID fixes the node ID used by NewV1. id must hold at least 6 bytes;
// only the first 6 are used.
func SetNodeID(id []byte) error {
	if len(id) < 6 {
		return fmt.Errorf("%w: node id needs 6 bytes, got %d", ErrInvalidArgument, len(id))
	}
	return timeBased.setNode(id)
}

// NodeID returns the node ID NewV1 stamps into its UUIDs.
func NodeID() ([]byte, error) {
	if err := timeBased.init(); err != nil {
		return nil, err
	}
	timeBased.mu.Lock()
	defer timeBased.mu.Unlock()
	node := make([]byte, 6)
	copy(node, timeBased.node[:])
	return node, nil
}

func (s *v1State) init() error {
	s.once.Do(func() {
		var seq [2]byte
		if err := readRandom(s.randReader, seq[:]); err != nil {
			s.initErr = err
			return
		}
		s.clockSeq = binary.BigEndian.Uint16(seq[:]) & 0x3fff

		if s.hardwareNode() {
			return
		}
		if err := readRandom(s.randReader, s.node[:]); err != nil {
			s.initErr = err
			return
		}
		// Multicast bit marks a node ID that is not a real IEEE 802 address.
		s.node[0] |= 0x01
		logger().Debug("no hardware address found, using random node id",
			"node", fmt.Sprintf("%x", s.node[:]))
	})
	return s.initErr
}

// hardwareNode copies the first usable interface address into s.node.
func (s *v1State) hardwareNode() bool {
	if s.interfaces == nil {
		return false
	}
	ifaces, err := s.interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		addr := iface.HardwareAddr
		if len(addr) < 6 || isZero(addr[:6]) {
			continue
		}
		copy(s.node[:], addr)
		return true
	}
	return false
}

func (s *v1State) setNode(id []byte) error {
	if err := s.init(); err != nil {
		return err
	}
	s.mu.Lock()
	copy(s.node[:], id)
	s.mu.Unlock()
	return nil
}

func (s *v1State) next() (UUID, error) {
	if err := s.init(); err != nil {
		return Nil, err
	}

	ticks := uint64(s.clock.Now().UnixNano()/100) + gregorianOffset

	s.mu.Lock()
	if ticks < s.lastSeen {
		// The wall clock went backwards. A new clock sequence keeps the
		// ticks we are about to reuse from colliding with issued ones.
		s.clockSeq = (s.clockSeq + 1) & 0x3fff
		s.lastIssued = 0
		logger().Warn("clock moved backwards, clock sequence advanced",
			"last", s.lastSeen, "now", ticks, "clock_seq", s.clockSeq)
	}
	s.lastSeen = ticks
	// More than one UUID within a tick: step past the last issued tick.
	if ticks <= s.lastIssued {
		ticks = s.lastIssued + 1
	}
	s.lastIssued = ticks
	seq := s.clockSeq
	node := s.node
	s.mu.Unlock()

	return buildV1(ticks, seq, node), nil
}

// buildV1 lays out a version 1 UUID:
// time_low(4) time_mid(2) time_hi_and_version(2) clock_seq(2) node(6).
func buildV1(ticks uint64, seq uint16, node [6]byte) UUID {
	var uuid UUID
	binary.BigEndian.PutUint32(uuid[0:4], uint32(ticks))
	binary.BigEndian.PutUint16(uuid[4:6], uint16(ticks>>32))
	binary.BigEndian.PutUint16(uuid[6:8], uint16(ticks>>48)&0x0fff)
	binary.BigEndian.PutUint16(uuid[8:10], seq&0x3fff)
	copy(uuid[10:], node[:])
	uuid.setVersion(VersionTimeBased)
	return uuid
}

// gregorianTicks reassembles the 60-bit timestamp of a version 1 UUID.
func (u UUID) gregorianTicks() uint64 {
	low := uint64(binary.BigEndian.Uint32(u[0:4]))
	mid := uint64(binary.BigEndian.Uint16(u[4:6]))
	hi := uint64(binary.BigEndian.Uint16(u[6:8]) & 0x0fff)
	return hi<<48 | mid<<32 | low
}

// ClockSequence returns the 14-bit clock sequence of a version 1 UUID.
func (u UUID) ClockSequence() int {
	return int(binary.BigEndian.Uint16(u[8:10]) & 0x3fff)
}

// Node returns the 6-byte node field of a version 1 UUID.
func (u UUID) Node() []byte {
	node := make([]byte, 6)
	copy(node, u[10:])
	return node
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
