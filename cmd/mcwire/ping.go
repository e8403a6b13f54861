package main

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hollowstone/mcwire/packet"
)

const protoVersion = 47

// pingAction performs the full status exchange: handshake, status request,
// response, then a ping/pong pair for latency.
func pingAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("need a server address to ping", 1)
	}
	addr := c.Args().Get(0)
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return err
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	err = packet.Write(conn, &packet.Handshake{
		ProtoVersion:  protoVersion,
		ServerAddress: host,
		ServerPort:    uint16(port),
		NextState:     packet.NextStatus,
	})
	if err != nil {
		return err
	}
	if err = packet.Write(conn, &packet.StatusRequest{}); err != nil {
		return err
	}

	p, err := packet.Read(conn, packet.Status, packet.Clientbound)
	if err != nil {
		return err
	}
	status, ok := p.(*packet.StatusResponse)
	if !ok {
		return fmt.Errorf("expected a status response, got %T", p)
	}

	start := time.Now()
	if err = packet.Write(conn, &packet.Ping{Time: start.UnixMilli()}); err != nil {
		return err
	}
	if _, err = packet.Read(conn, packet.Status, packet.Clientbound); err != nil {
		return err
	}
	latency := time.Since(start)

	resp := status.Response
	fmt.Printf("%s (protocol %d)\n", resp.Version.Name, resp.Version.Protocol)
	fmt.Printf("%s\n", resp.Description)
	fmt.Printf("players: %d/%d, latency %s\n", resp.Players.Online, resp.Players.Max, latency)
	return nil
}
