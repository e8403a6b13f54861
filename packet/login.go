package packet

import (
	"io"

	"github.com/google/uuid"

	"github.com/hollowstone/mcwire/proto"
)

var byteArr = proto.Array[uint8]{Len: proto.VarInt{}, Elem: proto.UByte{}}

// LoginStart opens the login exchange with the requested username.
type LoginStart struct {
	Name string
}

func (*LoginStart) ID() int32 { return 0x00 }

func (p *LoginStart) Length() int {
	return proto.String{}.Length(p.Name)
}

func (p *LoginStart) Marshal(w io.Writer) error {
	return proto.String{}.Encode(w, p.Name)
}

func (p *LoginStart) Unmarshal(r io.Reader) (err error) {
	p.Name, err = proto.String{}.Decode(r)
	return err
}

// EncryptionRequest carries the server's public key and verify token. The
// key exchange itself happens elsewhere; this packet only moves the bytes.
type EncryptionRequest struct {
	ServerID    string
	PublicKey   []uint8
	VerifyToken []uint8
}

func (*EncryptionRequest) ID() int32 { return 0x01 }

func (p *EncryptionRequest) Length() int {
	return proto.String{}.Length(p.ServerID) +
		byteArr.Length(p.PublicKey) +
		byteArr.Length(p.VerifyToken)
}

func (p *EncryptionRequest) Marshal(w io.Writer) error {
	if err := (proto.String{}).Encode(w, p.ServerID); err != nil {
		return err
	}
	if err := byteArr.Encode(w, p.PublicKey); err != nil {
		return err
	}
	return byteArr.Encode(w, p.VerifyToken)
}

func (p *EncryptionRequest) Unmarshal(r io.Reader) (err error) {
	if p.ServerID, err = (proto.String{}).Decode(r); err != nil {
		return err
	}
	if p.PublicKey, err = byteArr.Decode(r); err != nil {
		return err
	}
	p.VerifyToken, err = byteArr.Decode(r)
	return err
}

// EncryptionResponse returns the shared secret and token, encrypted with the
// server's key.
type EncryptionResponse struct {
	SharedSecret []uint8
	VerifyToken  []uint8
}

func (*EncryptionResponse) ID() int32 { return 0x01 }

func (p *EncryptionResponse) Length() int {
	return byteArr.Length(p.SharedSecret) + byteArr.Length(p.VerifyToken)
}

func (p *EncryptionResponse) Marshal(w io.Writer) error {
	if err := byteArr.Encode(w, p.SharedSecret); err != nil {
		return err
	}
	return byteArr.Encode(w, p.VerifyToken)
}

func (p *EncryptionResponse) Unmarshal(r io.Reader) (err error) {
	if p.SharedSecret, err = byteArr.Decode(r); err != nil {
		return err
	}
	p.VerifyToken, err = byteArr.Decode(r)
	return err
}

// LoginSuccess completes login; the connection moves to the play state after
// it is sent. The UUID travels in its hyphenated string form here.
type LoginSuccess struct {
	UUID     uuid.UUID
	Username string
}

func (*LoginSuccess) ID() int32 { return 0x02 }

func (p *LoginSuccess) Length() int {
	return proto.UUIDString{}.Length(p.UUID) + proto.String{}.Length(p.Username)
}

func (p *LoginSuccess) Marshal(w io.Writer) error {
	if err := (proto.UUIDString{}).Encode(w, p.UUID); err != nil {
		return err
	}
	return proto.String{}.Encode(w, p.Username)
}

func (p *LoginSuccess) Unmarshal(r io.Reader) (err error) {
	if p.UUID, err = (proto.UUIDString{}).Decode(r); err != nil {
		return err
	}
	p.Username, err = proto.String{}.Decode(r)
	return err
}

// LoginSetCompression announces the compression threshold during login.
type LoginSetCompression struct {
	Threshold int32
}

func (*LoginSetCompression) ID() int32 { return 0x03 }

func (p *LoginSetCompression) Length() int {
	return proto.VarInt{}.Length(p.Threshold)
}

func (p *LoginSetCompression) Marshal(w io.Writer) error {
	return proto.VarInt{}.Encode(w, p.Threshold)
}

func (p *LoginSetCompression) Unmarshal(r io.Reader) (err error) {
	p.Threshold, err = proto.VarInt{}.Decode(r)
	return err
}

func init() {
	register(Login, Serverbound, func() Packet { return &LoginStart{} })
	register(Login, Serverbound, func() Packet { return &EncryptionResponse{} })
	register(Login, Clientbound, func() Packet { return &EncryptionRequest{} })
	register(Login, Clientbound, func() Packet { return &LoginSuccess{} })
	register(Login, Clientbound, func() Packet { return &LoginSetCompression{} })
}
