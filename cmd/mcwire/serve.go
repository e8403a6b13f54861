package main

import (
	"net"
	"os"

	kitlog "github.com/go-kit/kit/log"
	"github.com/urfave/cli/v2"

	"github.com/hollowstone/mcwire/packet"
)

// serveAction runs a status-only server: each connection gets its own
// goroutine, and any codec error terminates that connection. Codec calls
// block on the socket; closing it is the only cancellation.
func serveAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("need an address to listen on", 1)
	}
	logger := kitlog.With(
		kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout)),
		"ts", kitlog.DefaultTimestampUTC,
	)

	listener, err := net.Listen("tcp", c.Args().Get(0))
	if err != nil {
		return err
	}
	defer listener.Close()
	_ = logger.Log("event", "listening", "addr", listener.Addr())

	status := packet.Response{
		Version:     packet.Version{Name: "1.8.9", Protocol: protoVersion},
		Players:     packet.Players{Max: int32(c.Int("max-players"))},
		Description: c.String("motd"),
	}

	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}
		go serveConn(conn, status, kitlog.With(logger, "remote", conn.RemoteAddr()))
	}
}

func serveConn(conn net.Conn, status packet.Response, logger kitlog.Logger) {
	defer conn.Close()

	p, err := packet.Read(conn, packet.Handshaking, packet.Serverbound)
	if err != nil {
		_ = logger.Log("event", "handshake failed", "err", err)
		return
	}
	handshake := p.(*packet.Handshake)
	if handshake.NextState != packet.NextStatus {
		// Login is not implemented here; dropping the connection is the
		// policy for any error during pre-play states.
		_ = logger.Log("event", "login refused")
		return
	}

	for {
		p, err := packet.Read(conn, packet.Status, packet.Serverbound)
		if err != nil {
			_ = logger.Log("event", "disconnect", "err", err)
			return
		}
		switch req := p.(type) {
		case *packet.StatusRequest:
			if err := packet.Write(conn, &packet.StatusResponse{Response: status}); err != nil {
				_ = logger.Log("event", "write failed", "err", err)
				return
			}
		case *packet.Ping:
			if err := packet.Write(conn, &packet.Pong{Time: req.Time}); err != nil {
				_ = logger.Log("event", "write failed", "err", err)
				return
			}
			_ = logger.Log("event", "pinged")
			return
		}
	}
}
