package packet

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/hollowstone/mcwire/proto"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Response is the server-list-ping document, carried as JSON inside a
// protocol string.
type Response struct {
	Version     Version `json:"version"`
	Players     Players `json:"players"`
	Description string  `json:"description"`
	Favicon     string  `json:"favicon,omitempty"`
}

type Version struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type Players struct {
	Max    int32    `json:"max"`
	Online int32    `json:"online"`
	Sample []Sample `json:"sample,omitempty"`
}

type Sample struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

func (v *Response) encodeJSON() string {
	out, err := json.MarshalToString(v)
	if err != nil {
		// The document is plain data; marshaling it cannot fail.
		panic(err)
	}
	return out
}

// StatusRequest asks the server for its status document. Empty body.
type StatusRequest struct{}

func (*StatusRequest) ID() int32                 { return 0x00 }
func (*StatusRequest) Length() int               { return 0 }
func (*StatusRequest) Marshal(io.Writer) error   { return nil }
func (*StatusRequest) Unmarshal(io.Reader) error { return nil }

// StatusResponse carries the status document back to the client.
type StatusResponse struct {
	Response Response
}

func (*StatusResponse) ID() int32 { return 0x00 }

func (p *StatusResponse) Length() int {
	return proto.String{}.Length(p.Response.encodeJSON())
}

func (p *StatusResponse) Marshal(w io.Writer) error {
	return proto.String{}.Encode(w, p.Response.encodeJSON())
}

func (p *StatusResponse) Unmarshal(r io.Reader) error {
	s, err := proto.String{}.Decode(r)
	if err != nil {
		return err
	}
	return json.UnmarshalFromString(s, &p.Response)
}

// Ping carries an arbitrary client timestamp the server must echo.
type Ping struct {
	Time int64
}

func (*Ping) ID() int32   { return 0x01 }
func (*Ping) Length() int { return 8 }

func (p *Ping) Marshal(w io.Writer) error {
	return proto.Long{}.Encode(w, p.Time)
}

func (p *Ping) Unmarshal(r io.Reader) (err error) {
	p.Time, err = proto.Long{}.Decode(r)
	return err
}

// Pong echoes the Ping timestamp.
type Pong struct {
	Time int64
}

func (*Pong) ID() int32   { return 0x01 }
func (*Pong) Length() int { return 8 }

func (p *Pong) Marshal(w io.Writer) error {
	return proto.Long{}.Encode(w, p.Time)
}

func (p *Pong) Unmarshal(r io.Reader) (err error) {
	p.Time, err = proto.Long{}.Decode(r)
	return err
}

func init() {
	register(Status, Serverbound, func() Packet { return &StatusRequest{} })
	register(Status, Serverbound, func() Packet { return &Ping{} })
	register(Status, Clientbound, func() Packet { return &StatusResponse{} })
	register(Status, Clientbound, func() Packet { return &Pong{} })
}
