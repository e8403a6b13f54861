package packet

import (
	"io"

	"github.com/google/uuid"

	"github.com/hollowstone/mcwire/proto"
)

// ClientKeepAlive is the client's echo of a KeepAlive. Same id, different
// shape: the echo carries a fixed 32-bit integer where the probe used a
// varint.
type ClientKeepAlive struct {
	KeepAliveID int32
}

func (*ClientKeepAlive) ID() int32   { return 0x00 }
func (*ClientKeepAlive) Length() int { return 4 }

func (p *ClientKeepAlive) Marshal(w io.Writer) error {
	return proto.Int{}.Encode(w, p.KeepAliveID)
}

func (p *ClientKeepAlive) Unmarshal(r io.Reader) (err error) {
	p.KeepAliveID, err = proto.Int{}.Decode(r)
	return err
}

// ChatMessage is raw chat input; formatting happens elsewhere.
type ChatMessage struct {
	Message string
}

func (*ChatMessage) ID() int32 { return 0x01 }

func (p *ChatMessage) Length() int {
	return proto.String{}.Length(p.Message)
}

func (p *ChatMessage) Marshal(w io.Writer) error {
	return proto.String{}.Encode(w, p.Message)
}

func (p *ChatMessage) Unmarshal(r io.Reader) (err error) {
	p.Message, err = proto.String{}.Decode(r)
	return err
}

// PlayerPosition reports the player's feet position.
type PlayerPosition struct {
	Position [3]float64
	OnGround bool
}

func (*PlayerPosition) ID() int32   { return 0x04 }
func (*PlayerPosition) Length() int { return 25 }

func (p *PlayerPosition) Marshal(w io.Writer) error {
	if err := doubleTri.Encode(w, p.Position); err != nil {
		return err
	}
	return proto.Bool{}.Encode(w, p.OnGround)
}

func (p *PlayerPosition) Unmarshal(r io.Reader) (err error) {
	if p.Position, err = doubleTri.Decode(r); err != nil {
		return err
	}
	p.OnGround, err = proto.Bool{}.Decode(r)
	return err
}

// PlayerLook reports the player's view angles.
type PlayerLook struct {
	Yaw      float32
	Pitch    float32
	OnGround bool
}

func (*PlayerLook) ID() int32   { return 0x05 }
func (*PlayerLook) Length() int { return 9 }

func (p *PlayerLook) Marshal(w io.Writer) error {
	if err := (proto.Float{}).Encode(w, p.Yaw); err != nil {
		return err
	}
	if err := (proto.Float{}).Encode(w, p.Pitch); err != nil {
		return err
	}
	return proto.Bool{}.Encode(w, p.OnGround)
}

func (p *PlayerLook) Unmarshal(r io.Reader) (err error) {
	if p.Yaw, err = (proto.Float{}).Decode(r); err != nil {
		return err
	}
	if p.Pitch, err = (proto.Float{}).Decode(r); err != nil {
		return err
	}
	p.OnGround, err = proto.Bool{}.Decode(r)
	return err
}

// ClientPositionAndLook combines PlayerPosition and PlayerLook.
type ClientPositionAndLook struct {
	Position [3]float64
	Yaw      float32
	Pitch    float32
	OnGround bool
}

func (*ClientPositionAndLook) ID() int32   { return 0x06 }
func (*ClientPositionAndLook) Length() int { return 33 }

func (p *ClientPositionAndLook) Marshal(w io.Writer) error {
	if err := doubleTri.Encode(w, p.Position); err != nil {
		return err
	}
	if err := (proto.Float{}).Encode(w, p.Yaw); err != nil {
		return err
	}
	if err := (proto.Float{}).Encode(w, p.Pitch); err != nil {
		return err
	}
	return proto.Bool{}.Encode(w, p.OnGround)
}

func (p *ClientPositionAndLook) Unmarshal(r io.Reader) (err error) {
	if p.Position, err = doubleTri.Decode(r); err != nil {
		return err
	}
	if p.Yaw, err = (proto.Float{}).Decode(r); err != nil {
		return err
	}
	if p.Pitch, err = (proto.Float{}).Decode(r); err != nil {
		return err
	}
	p.OnGround, err = proto.Bool{}.Decode(r)
	return err
}

// PlayerDigging reports a digging action against a block face.
type PlayerDigging struct {
	Status   int8
	Location proto.BlockPos
	Face     int8
}

func (*PlayerDigging) ID() int32   { return 0x07 }
func (*PlayerDigging) Length() int { return 10 }

func (p *PlayerDigging) Marshal(w io.Writer) error {
	if err := (proto.Byte{}).Encode(w, p.Status); err != nil {
		return err
	}
	if err := (proto.Position{}).Encode(w, p.Location); err != nil {
		return err
	}
	return proto.Byte{}.Encode(w, p.Face)
}

func (p *PlayerDigging) Unmarshal(r io.Reader) (err error) {
	if p.Status, err = (proto.Byte{}).Decode(r); err != nil {
		return err
	}
	if p.Location, err = (proto.Position{}).Decode(r); err != nil {
		return err
	}
	p.Face, err = proto.Byte{}.Decode(r)
	return err
}

// PlayerBlockPlacement places the held item against a block.
type PlayerBlockPlacement struct {
	Location  proto.BlockPos
	Direction int8
	HeldItem  *proto.Slot
	Cursor    [3]int8
}

func (*PlayerBlockPlacement) ID() int32 { return 0x08 }

func (p *PlayerBlockPlacement) Length() int {
	return 8 + 1 + proto.OptSlot{}.Length(p.HeldItem) + 3
}

func (p *PlayerBlockPlacement) Marshal(w io.Writer) error {
	if err := (proto.Position{}).Encode(w, p.Location); err != nil {
		return err
	}
	if err := (proto.Byte{}).Encode(w, p.Direction); err != nil {
		return err
	}
	if err := (proto.OptSlot{}).Encode(w, p.HeldItem); err != nil {
		return err
	}
	return byteTri.Encode(w, p.Cursor)
}

func (p *PlayerBlockPlacement) Unmarshal(r io.Reader) (err error) {
	if p.Location, err = (proto.Position{}).Decode(r); err != nil {
		return err
	}
	if p.Direction, err = (proto.Byte{}).Decode(r); err != nil {
		return err
	}
	if p.HeldItem, err = (proto.OptSlot{}).Decode(r); err != nil {
		return err
	}
	p.Cursor, err = byteTri.Decode(r)
	return err
}

// ClientHeldItemChange reports a hotbar slot selection.
type ClientHeldItemChange struct {
	Slot int16
}

func (*ClientHeldItemChange) ID() int32   { return 0x09 }
func (*ClientHeldItemChange) Length() int { return 2 }

func (p *ClientHeldItemChange) Marshal(w io.Writer) error {
	return proto.Short{}.Encode(w, p.Slot)
}

func (p *ClientHeldItemChange) Unmarshal(r io.Reader) (err error) {
	p.Slot, err = proto.Short{}.Decode(r)
	return err
}

// Animation is the arm-swing notification. Empty body.
type Animation struct{}

func (*Animation) ID() int32                 { return 0x0a }
func (*Animation) Length() int               { return 0 }
func (*Animation) Marshal(io.Writer) error   { return nil }
func (*Animation) Unmarshal(io.Reader) error { return nil }

// TabComplete asks the server to complete a command.
type TabComplete struct {
	Text      string
	LookingAt *int64
}

func (*TabComplete) ID() int32 { return 0x14 }

func (p *TabComplete) Length() int {
	return proto.String{}.Length(p.Text) + proto.Option[int64]{Elem: proto.Long{}}.Length(p.LookingAt)
}

func (p *TabComplete) Marshal(w io.Writer) error {
	if err := (proto.String{}).Encode(w, p.Text); err != nil {
		return err
	}
	return proto.Option[int64]{Elem: proto.Long{}}.Encode(w, p.LookingAt)
}

func (p *TabComplete) Unmarshal(r io.Reader) (err error) {
	if p.Text, err = (proto.String{}).Decode(r); err != nil {
		return err
	}
	p.LookingAt, err = proto.Option[int64]{Elem: proto.Long{}}.Decode(r)
	return err
}

// ClientSettings reports the client's locale and rendering options.
type ClientSettings struct {
	Locale       string
	ViewDistance int8
	ChatMode     int8
	ChatColors   bool
	SkinParts    uint8
}

func (*ClientSettings) ID() int32 { return 0x15 }

func (p *ClientSettings) Length() int {
	return proto.String{}.Length(p.Locale) + 4
}

func (p *ClientSettings) Marshal(w io.Writer) error {
	if err := (proto.String{}).Encode(w, p.Locale); err != nil {
		return err
	}
	if err := (proto.Byte{}).Encode(w, p.ViewDistance); err != nil {
		return err
	}
	if err := (proto.Byte{}).Encode(w, p.ChatMode); err != nil {
		return err
	}
	if err := (proto.Bool{}).Encode(w, p.ChatColors); err != nil {
		return err
	}
	return proto.UByte{}.Encode(w, p.SkinParts)
}

func (p *ClientSettings) Unmarshal(r io.Reader) (err error) {
	if p.Locale, err = (proto.String{}).Decode(r); err != nil {
		return err
	}
	if p.ViewDistance, err = (proto.Byte{}).Decode(r); err != nil {
		return err
	}
	if p.ChatMode, err = (proto.Byte{}).Decode(r); err != nil {
		return err
	}
	if p.ChatColors, err = (proto.Bool{}).Decode(r); err != nil {
		return err
	}
	p.SkinParts, err = proto.UByte{}.Decode(r)
	return err
}

// ClientPluginMessage is the serverbound twin of PluginMessage; the payload
// is again everything left in the envelope.
type ClientPluginMessage struct {
	Channel string
	Data    []byte
}

func (*ClientPluginMessage) ID() int32 { return 0x17 }

func (p *ClientPluginMessage) Length() int {
	return proto.String{}.Length(p.Channel) + len(p.Data)
}

func (p *ClientPluginMessage) Marshal(w io.Writer) error {
	if err := (proto.String{}).Encode(w, p.Channel); err != nil {
		return err
	}
	_, err := w.Write(p.Data)
	return err
}

func (p *ClientPluginMessage) Unmarshal(r io.Reader) (err error) {
	if p.Channel, err = (proto.String{}).Decode(r); err != nil {
		return err
	}
	p.Data, err = io.ReadAll(r)
	return err
}

// Spectate asks to teleport to another player, identified by raw UUID.
type Spectate struct {
	TargetPlayer uuid.UUID
}

func (*Spectate) ID() int32   { return 0x18 }
func (*Spectate) Length() int { return 16 }

func (p *Spectate) Marshal(w io.Writer) error {
	return proto.UUID{}.Encode(w, p.TargetPlayer)
}

func (p *Spectate) Unmarshal(r io.Reader) (err error) {
	p.TargetPlayer, err = proto.UUID{}.Decode(r)
	return err
}

// ResourcePackStatus reports the client's progress on a ResourcePackSend.
type ResourcePackStatus struct {
	Hash   string
	Result int32
}

func (*ResourcePackStatus) ID() int32 { return 0x19 }

func (p *ResourcePackStatus) Length() int {
	return proto.String{}.Length(p.Hash) + proto.VarInt{}.Length(p.Result)
}

func (p *ResourcePackStatus) Marshal(w io.Writer) error {
	if err := (proto.String{}).Encode(w, p.Hash); err != nil {
		return err
	}
	return proto.VarInt{}.Encode(w, p.Result)
}

func (p *ResourcePackStatus) Unmarshal(r io.Reader) (err error) {
	if p.Hash, err = (proto.String{}).Decode(r); err != nil {
		return err
	}
	p.Result, err = proto.VarInt{}.Decode(r)
	return err
}

func init() {
	register(Play, Serverbound, func() Packet { return &ClientKeepAlive{} })
	register(Play, Serverbound, func() Packet { return &ChatMessage{} })
	register(Play, Serverbound, func() Packet { return &PlayerPosition{} })
	register(Play, Serverbound, func() Packet { return &PlayerLook{} })
	register(Play, Serverbound, func() Packet { return &ClientPositionAndLook{} })
	register(Play, Serverbound, func() Packet { return &PlayerDigging{} })
	register(Play, Serverbound, func() Packet { return &PlayerBlockPlacement{} })
	register(Play, Serverbound, func() Packet { return &ClientHeldItemChange{} })
	register(Play, Serverbound, func() Packet { return &Animation{} })
	register(Play, Serverbound, func() Packet { return &TabComplete{} })
	register(Play, Serverbound, func() Packet { return &ClientSettings{} })
	register(Play, Serverbound, func() Packet { return &ClientPluginMessage{} })
	register(Play, Serverbound, func() Packet { return &Spectate{} })
	register(Play, Serverbound, func() Packet { return &ResourcePackStatus{} })
}
