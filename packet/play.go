package packet

import (
	"fmt"
	"io"

	"github.com/hollowstone/mcwire/nbt"
	"github.com/hollowstone/mcwire/proto"
)

// Shared composed codecs for the play packet set.
var (
	varIntArr = proto.Array[int32]{Len: proto.VarInt{}, Elem: proto.VarInt{}}
	doubleTri = proto.Triple[float64]{Elem: proto.Double{}}
	shortTri  = proto.Triple[int16]{Elem: proto.Short{}}
	byteTri   = proto.Triple[int8]{Elem: proto.Byte{}}
	slotArr   = proto.Array[*proto.Slot]{Len: proto.ShortLen{}, Elem: proto.OptSlot{}}
)

// KeepAlive is the clientbound liveness probe. The serverbound echo is a
// different shape under the same id; see ClientKeepAlive.
type KeepAlive struct {
	KeepAliveID int32
}

func (*KeepAlive) ID() int32 { return 0x00 }

func (p *KeepAlive) Length() int {
	return proto.VarInt{}.Length(p.KeepAliveID)
}

func (p *KeepAlive) Marshal(w io.Writer) error {
	return proto.VarInt{}.Encode(w, p.KeepAliveID)
}

func (p *KeepAlive) Unmarshal(r io.Reader) (err error) {
	p.KeepAliveID, err = proto.VarInt{}.Decode(r)
	return err
}

// JoinGame tells the client which world it just entered.
type JoinGame struct {
	EntityID         int32
	Gamemode         uint8
	Dimension        int8
	Difficulty       uint8
	MaxPlayers       uint8
	LevelType        string
	ReducedDebugInfo bool
}

func (*JoinGame) ID() int32 { return 0x01 }

func (p *JoinGame) Length() int {
	return 4 + 1 + 1 + 1 + 1 + proto.String{}.Length(p.LevelType) + 1
}

func (p *JoinGame) Marshal(w io.Writer) error {
	if err := (proto.Int{}).Encode(w, p.EntityID); err != nil {
		return err
	}
	if err := (proto.UByte{}).Encode(w, p.Gamemode); err != nil {
		return err
	}
	if err := (proto.Byte{}).Encode(w, p.Dimension); err != nil {
		return err
	}
	if err := (proto.UByte{}).Encode(w, p.Difficulty); err != nil {
		return err
	}
	if err := (proto.UByte{}).Encode(w, p.MaxPlayers); err != nil {
		return err
	}
	if err := (proto.String{}).Encode(w, p.LevelType); err != nil {
		return err
	}
	return (proto.Bool{}).Encode(w, p.ReducedDebugInfo)
}

func (p *JoinGame) Unmarshal(r io.Reader) (err error) {
	if p.EntityID, err = (proto.Int{}).Decode(r); err != nil {
		return err
	}
	if p.Gamemode, err = (proto.UByte{}).Decode(r); err != nil {
		return err
	}
	if p.Dimension, err = (proto.Byte{}).Decode(r); err != nil {
		return err
	}
	if p.Difficulty, err = (proto.UByte{}).Decode(r); err != nil {
		return err
	}
	if p.MaxPlayers, err = (proto.UByte{}).Decode(r); err != nil {
		return err
	}
	if p.LevelType, err = (proto.String{}).Decode(r); err != nil {
		return err
	}
	p.ReducedDebugInfo, err = proto.Bool{}.Decode(r)
	return err
}

// TimeUpdate carries the world clock.
type TimeUpdate struct {
	WorldAge  int64
	TimeOfDay int64
}

func (*TimeUpdate) ID() int32   { return 0x03 }
func (*TimeUpdate) Length() int { return 16 }

func (p *TimeUpdate) Marshal(w io.Writer) error {
	if err := (proto.Long{}).Encode(w, p.WorldAge); err != nil {
		return err
	}
	return proto.Long{}.Encode(w, p.TimeOfDay)
}

func (p *TimeUpdate) Unmarshal(r io.Reader) (err error) {
	if p.WorldAge, err = (proto.Long{}).Decode(r); err != nil {
		return err
	}
	p.TimeOfDay, err = proto.Long{}.Decode(r)
	return err
}

// WorldSpawn points the client's compass at the spawn block.
type WorldSpawn struct {
	Location proto.BlockPos
}

func (*WorldSpawn) ID() int32   { return 0x05 }
func (*WorldSpawn) Length() int { return 8 }

func (p *WorldSpawn) Marshal(w io.Writer) error {
	return proto.Position{}.Encode(w, p.Location)
}

func (p *WorldSpawn) Unmarshal(r io.Reader) (err error) {
	p.Location, err = proto.Position{}.Decode(r)
	return err
}

// UpdateHealth syncs health, food and saturation.
type UpdateHealth struct {
	Health     float32
	Food       int32
	Saturation float32
}

func (*UpdateHealth) ID() int32 { return 0x06 }

func (p *UpdateHealth) Length() int {
	return 4 + proto.VarInt{}.Length(p.Food) + 4
}

func (p *UpdateHealth) Marshal(w io.Writer) error {
	if err := (proto.Float{}).Encode(w, p.Health); err != nil {
		return err
	}
	if err := (proto.VarInt{}).Encode(w, p.Food); err != nil {
		return err
	}
	return proto.Float{}.Encode(w, p.Saturation)
}

func (p *UpdateHealth) Unmarshal(r io.Reader) (err error) {
	if p.Health, err = (proto.Float{}).Decode(r); err != nil {
		return err
	}
	if p.Food, err = (proto.VarInt{}).Decode(r); err != nil {
		return err
	}
	p.Saturation, err = proto.Float{}.Decode(r)
	return err
}

// PlayerPositionAndLook teleports the client. Flags marks which fields are
// relative.
type PlayerPositionAndLook struct {
	Position [3]float64
	Yaw      float32
	Pitch    float32
	Flags    int8
}

func (*PlayerPositionAndLook) ID() int32   { return 0x08 }
func (*PlayerPositionAndLook) Length() int { return 24 + 4 + 4 + 1 }

func (p *PlayerPositionAndLook) Marshal(w io.Writer) error {
	if err := doubleTri.Encode(w, p.Position); err != nil {
		return err
	}
	if err := (proto.Float{}).Encode(w, p.Yaw); err != nil {
		return err
	}
	if err := (proto.Float{}).Encode(w, p.Pitch); err != nil {
		return err
	}
	return proto.Byte{}.Encode(w, p.Flags)
}

func (p *PlayerPositionAndLook) Unmarshal(r io.Reader) (err error) {
	if p.Position, err = doubleTri.Decode(r); err != nil {
		return err
	}
	if p.Yaw, err = (proto.Float{}).Decode(r); err != nil {
		return err
	}
	if p.Pitch, err = (proto.Float{}).Decode(r); err != nil {
		return err
	}
	p.Flags, err = proto.Byte{}.Decode(r)
	return err
}

// HeldItemChange tells the client which hotbar slot is selected. The
// serverbound report of the same action uses a wider field; see
// ClientHeldItemChange.
type HeldItemChange struct {
	Slot int8
}

func (*HeldItemChange) ID() int32   { return 0x09 }
func (*HeldItemChange) Length() int { return 1 }

func (p *HeldItemChange) Marshal(w io.Writer) error {
	return proto.Byte{}.Encode(w, p.Slot)
}

func (p *HeldItemChange) Unmarshal(r io.Reader) (err error) {
	p.Slot, err = proto.Byte{}.Decode(r)
	return err
}

// EntityVelocity sets an entity's motion vector.
type EntityVelocity struct {
	EntityID int32
	Velocity [3]int16
}

func (*EntityVelocity) ID() int32 { return 0x12 }

func (p *EntityVelocity) Length() int {
	return proto.VarInt{}.Length(p.EntityID) + 6
}

func (p *EntityVelocity) Marshal(w io.Writer) error {
	if err := (proto.VarInt{}).Encode(w, p.EntityID); err != nil {
		return err
	}
	return shortTri.Encode(w, p.Velocity)
}

func (p *EntityVelocity) Unmarshal(r io.Reader) (err error) {
	if p.EntityID, err = (proto.VarInt{}).Decode(r); err != nil {
		return err
	}
	p.Velocity, err = shortTri.Decode(r)
	return err
}

// DestroyEntities removes a batch of entities.
type DestroyEntities struct {
	EntityIDs []int32
}

func (*DestroyEntities) ID() int32 { return 0x13 }

func (p *DestroyEntities) Length() int {
	return varIntArr.Length(p.EntityIDs)
}

func (p *DestroyEntities) Marshal(w io.Writer) error {
	return varIntArr.Encode(w, p.EntityIDs)
}

func (p *DestroyEntities) Unmarshal(r io.Reader) (err error) {
	p.EntityIDs, err = varIntArr.Decode(r)
	return err
}

// ChunkData carries one serialized chunk column. The payload is an opaque
// length-prefixed byte array at this level; proto.ChunkColumn produces and
// consumes it, using the mask and flags carried alongside.
type ChunkData struct {
	X          int32
	Z          int32
	Continuous bool
	Mask       uint16
	Data       []uint8
}

func (*ChunkData) ID() int32 { return 0x21 }

func (p *ChunkData) Length() int {
	return 4 + 4 + 1 + 2 + byteArr.Length(p.Data)
}

func (p *ChunkData) Marshal(w io.Writer) error {
	if err := (proto.Int{}).Encode(w, p.X); err != nil {
		return err
	}
	if err := (proto.Int{}).Encode(w, p.Z); err != nil {
		return err
	}
	if err := (proto.Bool{}).Encode(w, p.Continuous); err != nil {
		return err
	}
	if err := (proto.UShort{}).Encode(w, p.Mask); err != nil {
		return err
	}
	return byteArr.Encode(w, p.Data)
}

func (p *ChunkData) Unmarshal(r io.Reader) (err error) {
	if p.X, err = (proto.Int{}).Decode(r); err != nil {
		return err
	}
	if p.Z, err = (proto.Int{}).Decode(r); err != nil {
		return err
	}
	if p.Continuous, err = (proto.Bool{}).Decode(r); err != nil {
		return err
	}
	if p.Mask, err = (proto.UShort{}).Decode(r); err != nil {
		return err
	}
	p.Data, err = byteArr.Decode(r)
	return err
}

// BlockChangeRecord is one entry of a MultiBlockChange: packed relative
// coordinates plus the new block id.
type BlockChangeRecord struct {
	XZ      uint8
	Y       uint8
	BlockID int32
}

type blockChangeRecord struct{}

func (blockChangeRecord) Length(v BlockChangeRecord) int {
	return 2 + proto.VarInt{}.Length(v.BlockID)
}

func (blockChangeRecord) Encode(w io.Writer, v BlockChangeRecord) error {
	if err := (proto.UByte{}).Encode(w, v.XZ); err != nil {
		return err
	}
	if err := (proto.UByte{}).Encode(w, v.Y); err != nil {
		return err
	}
	return proto.VarInt{}.Encode(w, v.BlockID)
}

func (blockChangeRecord) Decode(r io.Reader) (v BlockChangeRecord, err error) {
	if v.XZ, err = (proto.UByte{}).Decode(r); err != nil {
		return v, err
	}
	if v.Y, err = (proto.UByte{}).Decode(r); err != nil {
		return v, err
	}
	v.BlockID, err = proto.VarInt{}.Decode(r)
	return v, err
}

var recordArr = proto.Array[BlockChangeRecord]{Len: proto.VarInt{}, Elem: blockChangeRecord{}}

// MultiBlockChange batches block updates within one chunk.
type MultiBlockChange struct {
	ChunkX  int32
	ChunkZ  int32
	Records []BlockChangeRecord
}

func (*MultiBlockChange) ID() int32 { return 0x22 }

func (p *MultiBlockChange) Length() int {
	return 8 + recordArr.Length(p.Records)
}

func (p *MultiBlockChange) Marshal(w io.Writer) error {
	if err := (proto.Int{}).Encode(w, p.ChunkX); err != nil {
		return err
	}
	if err := (proto.Int{}).Encode(w, p.ChunkZ); err != nil {
		return err
	}
	return recordArr.Encode(w, p.Records)
}

func (p *MultiBlockChange) Unmarshal(r io.Reader) (err error) {
	if p.ChunkX, err = (proto.Int{}).Decode(r); err != nil {
		return err
	}
	if p.ChunkZ, err = (proto.Int{}).Decode(r); err != nil {
		return err
	}
	p.Records, err = recordArr.Decode(r)
	return err
}

// BlockChange sets a single block.
type BlockChange struct {
	Location proto.BlockPos
	BlockID  int32
}

func (*BlockChange) ID() int32 { return 0x23 }

func (p *BlockChange) Length() int {
	return 8 + proto.VarInt{}.Length(p.BlockID)
}

func (p *BlockChange) Marshal(w io.Writer) error {
	if err := (proto.Position{}).Encode(w, p.Location); err != nil {
		return err
	}
	return proto.VarInt{}.Encode(w, p.BlockID)
}

func (p *BlockChange) Unmarshal(r io.Reader) (err error) {
	if p.Location, err = (proto.Position{}).Decode(r); err != nil {
		return err
	}
	p.BlockID, err = proto.VarInt{}.Decode(r)
	return err
}

// ChunkMeta describes one column in a ChunkDataBulk: its coordinates and the
// presence mask its chunk records were encoded against.
type ChunkMeta struct {
	X    int32
	Z    int32
	Mask uint16
}

type chunkMeta struct{}

func (chunkMeta) Length(ChunkMeta) int { return 10 }

func (chunkMeta) Encode(w io.Writer, v ChunkMeta) error {
	if err := (proto.Int{}).Encode(w, v.X); err != nil {
		return err
	}
	if err := (proto.Int{}).Encode(w, v.Z); err != nil {
		return err
	}
	return proto.UShort{}.Encode(w, v.Mask)
}

func (chunkMeta) Decode(r io.Reader) (v ChunkMeta, err error) {
	if v.X, err = (proto.Int{}).Decode(r); err != nil {
		return v, err
	}
	if v.Z, err = (proto.Int{}).Decode(r); err != nil {
		return v, err
	}
	v.Mask, err = proto.UShort{}.Decode(r)
	return v, err
}

// ChunkDataBulk ships several full columns at once. The column payloads are
// not length-prefixed: each one's size follows from its meta entry's mask,
// and the last ends where the envelope ends. The body cannot be a flat field
// sequence, so it carries its own codec.
type ChunkDataBulk struct {
	SkyLightSent bool
	Meta         []ChunkMeta
	Columns      []*proto.ChunkColumn
}

func (*ChunkDataBulk) ID() int32 { return 0x26 }

func (p *ChunkDataBulk) Length() int {
	n := 1 + proto.VarInt{}.Length(int32(len(p.Meta))) + 10*len(p.Meta)
	for _, column := range p.Columns {
		n += column.Len()
	}
	return n
}

func (p *ChunkDataBulk) Marshal(w io.Writer) error {
	if err := (proto.Bool{}).Encode(w, p.SkyLightSent); err != nil {
		return err
	}
	if err := (proto.VarInt{}).Encode(w, int32(len(p.Meta))); err != nil {
		return err
	}
	for _, meta := range p.Meta {
		if err := (chunkMeta{}).Encode(w, meta); err != nil {
			return err
		}
	}
	for _, column := range p.Columns {
		if err := column.Encode(w); err != nil {
			return err
		}
	}
	return nil
}

func (p *ChunkDataBulk) Unmarshal(r io.Reader) (err error) {
	if p.SkyLightSent, err = (proto.Bool{}).Decode(r); err != nil {
		return err
	}
	count, err := proto.VarInt{}.Decode(r)
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("packet: invalid chunk meta count %d", count)
	}
	p.Meta = make([]ChunkMeta, 0, min(int(count), 64))
	for i := int32(0); i < count; i++ {
		meta, err := (chunkMeta{}).Decode(r)
		if err != nil {
			return err
		}
		p.Meta = append(p.Meta, meta)
	}
	// Bulk columns are always continuous; sky light presence is whatever the
	// leading flag said.
	p.Columns = make([]*proto.ChunkColumn, 0, min(int(count), 64))
	for _, meta := range p.Meta {
		column, err := proto.DecodeChunkColumn(r, meta.Mask, true, p.SkyLightSent)
		if err != nil {
			return err
		}
		p.Columns = append(p.Columns, column)
	}
	return nil
}

// SetSlot updates one slot in an open window.
type SetSlot struct {
	WindowID uint8
	Slot     int16
	Data     *proto.Slot
}

func (*SetSlot) ID() int32 { return 0x2f }

func (p *SetSlot) Length() int {
	return 1 + 2 + proto.OptSlot{}.Length(p.Data)
}

func (p *SetSlot) Marshal(w io.Writer) error {
	if err := (proto.UByte{}).Encode(w, p.WindowID); err != nil {
		return err
	}
	if err := (proto.Short{}).Encode(w, p.Slot); err != nil {
		return err
	}
	return proto.OptSlot{}.Encode(w, p.Data)
}

func (p *SetSlot) Unmarshal(r io.Reader) (err error) {
	if p.WindowID, err = (proto.UByte{}).Decode(r); err != nil {
		return err
	}
	if p.Slot, err = (proto.Short{}).Decode(r); err != nil {
		return err
	}
	p.Data, err = proto.OptSlot{}.Decode(r)
	return err
}

// WindowItems replaces the whole contents of a window. The slot count rides
// in a fixed 16-bit prefix, not a varint.
type WindowItems struct {
	WindowID uint8
	Slots    []*proto.Slot
}

func (*WindowItems) ID() int32 { return 0x30 }

func (p *WindowItems) Length() int {
	return 1 + slotArr.Length(p.Slots)
}

func (p *WindowItems) Marshal(w io.Writer) error {
	if err := (proto.UByte{}).Encode(w, p.WindowID); err != nil {
		return err
	}
	return slotArr.Encode(w, p.Slots)
}

func (p *WindowItems) Unmarshal(r io.Reader) (err error) {
	if p.WindowID, err = (proto.UByte{}).Decode(r); err != nil {
		return err
	}
	p.Slots, err = slotArr.Decode(r)
	return err
}

// Stat is one name/value pair in a Statistics packet.
type Stat struct {
	Name  string
	Value int32
}

type statCodec struct{}

func (statCodec) Length(v Stat) int {
	return proto.String{}.Length(v.Name) + proto.VarInt{}.Length(v.Value)
}

func (statCodec) Encode(w io.Writer, v Stat) error {
	if err := (proto.String{}).Encode(w, v.Name); err != nil {
		return err
	}
	return proto.VarInt{}.Encode(w, v.Value)
}

func (statCodec) Decode(r io.Reader) (v Stat, err error) {
	if v.Name, err = (proto.String{}).Decode(r); err != nil {
		return v, err
	}
	v.Value, err = proto.VarInt{}.Decode(r)
	return v, err
}

var statArr = proto.Array[Stat]{Len: proto.VarInt{}, Elem: statCodec{}}

// Statistics ships the player's statistics page.
type Statistics struct {
	Stats []Stat
}

func (*Statistics) ID() int32 { return 0x37 }

func (p *Statistics) Length() int {
	return statArr.Length(p.Stats)
}

func (p *Statistics) Marshal(w io.Writer) error {
	return statArr.Encode(w, p.Stats)
}

func (p *Statistics) Unmarshal(r io.Reader) (err error) {
	p.Stats, err = statArr.Decode(r)
	return err
}

// PluginMessage is a named opaque payload. The data has no length prefix;
// it is whatever remains of the envelope, so Unmarshal must run against the
// framing-bounded reader.
type PluginMessage struct {
	Channel string
	Data    []byte
}

func (*PluginMessage) ID() int32 { return 0x3f }

func (p *PluginMessage) Length() int {
	return proto.String{}.Length(p.Channel) + len(p.Data)
}

func (p *PluginMessage) Marshal(w io.Writer) error {
	if err := (proto.String{}).Encode(w, p.Channel); err != nil {
		return err
	}
	_, err := w.Write(p.Data)
	return err
}

func (p *PluginMessage) Unmarshal(r io.Reader) (err error) {
	if p.Channel, err = (proto.String{}).Decode(r); err != nil {
		return err
	}
	p.Data, err = io.ReadAll(r)
	return err
}

// SetCompression announces the compression threshold mid-play.
type SetCompression struct {
	Threshold int32
}

func (*SetCompression) ID() int32 { return 0x46 }

func (p *SetCompression) Length() int {
	return proto.VarInt{}.Length(p.Threshold)
}

func (p *SetCompression) Marshal(w io.Writer) error {
	return proto.VarInt{}.Encode(w, p.Threshold)
}

func (p *SetCompression) Unmarshal(r io.Reader) (err error) {
	p.Threshold, err = proto.VarInt{}.Decode(r)
	return err
}

// ResourcePackSend asks the client to fetch a resource pack.
type ResourcePackSend struct {
	URL  string
	Hash string
}

func (*ResourcePackSend) ID() int32 { return 0x48 }

func (p *ResourcePackSend) Length() int {
	return proto.String{}.Length(p.URL) + proto.String{}.Length(p.Hash)
}

func (p *ResourcePackSend) Marshal(w io.Writer) error {
	if err := (proto.String{}).Encode(w, p.URL); err != nil {
		return err
	}
	return proto.String{}.Encode(w, p.Hash)
}

func (p *ResourcePackSend) Unmarshal(r io.Reader) (err error) {
	if p.URL, err = (proto.String{}).Decode(r); err != nil {
		return err
	}
	p.Hash, err = proto.String{}.Decode(r)
	return err
}

// UpdateEntityNbt replaces an entity's NBT tree wholesale.
type UpdateEntityNbt struct {
	EntityID int32
	Tag      *nbt.Blob
}

func (*UpdateEntityNbt) ID() int32 { return 0x49 }

func (p *UpdateEntityNbt) Length() int {
	return proto.VarInt{}.Length(p.EntityID) + p.Tag.Len()
}

func (p *UpdateEntityNbt) Marshal(w io.Writer) error {
	if err := (proto.VarInt{}).Encode(w, p.EntityID); err != nil {
		return err
	}
	return proto.Nbt{}.Encode(w, p.Tag)
}

func (p *UpdateEntityNbt) Unmarshal(r io.Reader) (err error) {
	if p.EntityID, err = (proto.VarInt{}).Decode(r); err != nil {
		return err
	}
	p.Tag, err = proto.Nbt{}.Decode(r)
	return err
}

func init() {
	register(Play, Clientbound, func() Packet { return &KeepAlive{} })
	register(Play, Clientbound, func() Packet { return &JoinGame{} })
	register(Play, Clientbound, func() Packet { return &TimeUpdate{} })
	register(Play, Clientbound, func() Packet { return &WorldSpawn{} })
	register(Play, Clientbound, func() Packet { return &UpdateHealth{} })
	register(Play, Clientbound, func() Packet { return &PlayerPositionAndLook{} })
	register(Play, Clientbound, func() Packet { return &HeldItemChange{} })
	register(Play, Clientbound, func() Packet { return &EntityVelocity{} })
	register(Play, Clientbound, func() Packet { return &DestroyEntities{} })
	register(Play, Clientbound, func() Packet { return &ChunkData{} })
	register(Play, Clientbound, func() Packet { return &MultiBlockChange{} })
	register(Play, Clientbound, func() Packet { return &BlockChange{} })
	register(Play, Clientbound, func() Packet { return &ChunkDataBulk{} })
	register(Play, Clientbound, func() Packet { return &SetSlot{} })
	register(Play, Clientbound, func() Packet { return &WindowItems{} })
	register(Play, Clientbound, func() Packet { return &Statistics{} })
	register(Play, Clientbound, func() Packet { return &PluginMessage{} })
	register(Play, Clientbound, func() Packet { return &SetCompression{} })
	register(Play, Clientbound, func() Packet { return &ResourcePackSend{} })
	register(Play, Clientbound, func() Packet { return &UpdateEntityNbt{} })
}
