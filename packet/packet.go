// Package packet wraps structured codecs in the protocol's length-and-id
// envelope and resolves incoming envelopes back to concrete packet types.
//
// A packet id is unique only within one (state, direction) pair: the same
// small integer names unrelated shapes in different pairs. The dispatch
// table is keyed by all three, built once at init, and never written again,
// so it is safe for unsynchronized reads from every connection goroutine.
package packet

import (
	"fmt"
	"io"

	"github.com/hollowstone/mcwire/proto"
)

// Direction tells which peer sent a packet.
type Direction int

const (
	Clientbound Direction = iota
	Serverbound
)

func (d Direction) String() string {
	switch d {
	case Clientbound:
		return "clientbound"
	case Serverbound:
		return "serverbound"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// State is a connection's position in its one-way lifecycle. There is no
// transition back to an earlier state within a connection.
type State int

const (
	Handshaking State = iota
	Status
	Login
	Play
)

func (s State) String() string {
	switch s {
	case Handshaking:
		return "handshaking"
	case Status:
		return "status"
	case Login:
		return "login"
	case Play:
		return "play"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Packet is one protocol message. Length, Marshal and Unmarshal cover the
// body only; Read and Write handle the envelope. Field order in every
// implementation is wire order.
type Packet interface {
	ID() int32
	Length() int
	Marshal(w io.Writer) error
	Unmarshal(r io.Reader) error
}

// UnknownPacketError reports an id with no dispatch entry for the active
// (state, direction) pair. The connection handler decides what to do with
// it; this layer never skips bytes to resynchronize.
type UnknownPacketError struct {
	State     State
	Direction Direction
	ID        int32
}

func (e *UnknownPacketError) Error() string {
	return fmt.Sprintf("packet: unknown packet id %#02x in %s/%s", e.ID, e.State, e.Direction)
}

type dispatchKey struct {
	state State
	dir   Direction
	id    int32
}

var dispatch = make(map[dispatchKey]func() Packet)

// register adds a packet constructor to the dispatch table. Called from init
// functions only; the table is read-only afterwards.
func register(state State, dir Direction, newPacket func() Packet) {
	id := newPacket().ID()
	key := dispatchKey{state: state, dir: dir, id: id}
	if _, dup := dispatch[key]; dup {
		panic(fmt.Sprintf("packet: duplicate registration for id %#02x in %s/%s", id, state, dir))
	}
	dispatch[key] = newPacket
}

// Write frames p and writes it to w: the varint-encoded total of id and
// body, the varint id, then the body.
func Write(w io.Writer, p Packet) error {
	id := p.ID()
	total := proto.VarInt{}.Length(id) + p.Length()
	if err := (proto.VarInt{}).Encode(w, int32(total)); err != nil {
		return err
	}
	if err := (proto.VarInt{}).Encode(w, id); err != nil {
		return err
	}
	return p.Marshal(w)
}

// Read consumes one envelope from r and decodes the body with the codec
// registered for (state, dir, id). The body codec sees only the bytes the
// envelope declared, which is what lets trailing remaining-bytes fields
// find their end.
func Read(r io.Reader, state State, dir Direction) (Packet, error) {
	total, err := proto.VarInt{}.Decode(r)
	if err != nil {
		return nil, err
	}
	if total < 0 {
		return nil, fmt.Errorf("packet: invalid packet length %d", total)
	}
	body := io.LimitReader(r, int64(total))
	id, err := proto.VarInt{}.Decode(body)
	if err != nil {
		return nil, err
	}
	newPacket, ok := dispatch[dispatchKey{state: state, dir: dir, id: id}]
	if !ok {
		return nil, &UnknownPacketError{State: state, Direction: dir, ID: id}
	}
	p := newPacket()
	if err := p.Unmarshal(body); err != nil {
		return nil, err
	}
	// A body that did not consume the whole envelope means the peer's framing
	// and ours disagree; draining keeps the stream at the next envelope
	// boundary, but the mismatch is still an error here, not at some later
	// packet.
	if extra, _ := io.Copy(io.Discard, body); extra > 0 {
		return nil, fmt.Errorf("packet: %d trailing bytes after packet id %#02x in %s/%s", extra, id, state, dir)
	}
	return p, nil
}
