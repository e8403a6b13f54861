package packet

import (
	"fmt"
	"io"

	"github.com/hollowstone/mcwire/proto"
)

// NextState is the field of the handshake that picks the connection's next
// phase. Only Status and Login are reachable from handshaking.
type NextState int32

const (
	NextStatus NextState = 1
	NextLogin  NextState = 2
)

// Handshake is the single handshaking-state packet. The declared protocol
// version and address are informational; next_state drives the state
// machine.
type Handshake struct {
	ProtoVersion  int32
	ServerAddress string
	ServerPort    uint16
	NextState     NextState
}

func (*Handshake) ID() int32 { return 0x00 }

func (p *Handshake) Length() int {
	return proto.VarInt{}.Length(p.ProtoVersion) +
		proto.String{}.Length(p.ServerAddress) +
		proto.UShort{}.Length(p.ServerPort) +
		proto.VarInt{}.Length(int32(p.NextState))
}

func (p *Handshake) Marshal(w io.Writer) error {
	if err := (proto.VarInt{}).Encode(w, p.ProtoVersion); err != nil {
		return err
	}
	if err := (proto.String{}).Encode(w, p.ServerAddress); err != nil {
		return err
	}
	if err := (proto.UShort{}).Encode(w, p.ServerPort); err != nil {
		return err
	}
	return (proto.VarInt{}).Encode(w, int32(p.NextState))
}

func (p *Handshake) Unmarshal(r io.Reader) (err error) {
	if p.ProtoVersion, err = (proto.VarInt{}).Decode(r); err != nil {
		return err
	}
	if p.ServerAddress, err = (proto.String{}).Decode(r); err != nil {
		return err
	}
	if p.ServerPort, err = (proto.UShort{}).Decode(r); err != nil {
		return err
	}
	next, err := proto.VarInt{}.Decode(r)
	if err != nil {
		return err
	}
	if next != int32(NextStatus) && next != int32(NextLogin) {
		return fmt.Errorf("packet: invalid next state %d", next)
	}
	p.NextState = NextState(next)
	return nil
}

func init() {
	register(Handshaking, Serverbound, func() Packet { return &Handshake{} })
}
