package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/hollowstone/mcwire/nbt"
	"github.com/hollowstone/mcwire/region"
)

func main() {
	app := &cli.App{
		Name:  "mcwire",
		Usage: "wire-format tools for the voxel protocol",
		Commands: []*cli.Command{
			{
				Name:      "ping",
				Usage:     "query a server's status over a live connection",
				ArgsUsage: "<host:port>",
				Action:    pingAction,
			},
			{
				Name:      "serve",
				Usage:     "run a minimal status-only server",
				ArgsUsage: "<listen-addr>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "motd", Value: "mcwire status server", Usage: "status description line"},
					&cli.IntFlag{Name: "max-players", Value: 20},
				},
				Action: serveAction,
			},
			{
				Name:      "nbt",
				Usage:     "decode an NBT file and print its tree",
				ArgsUsage: "<file>",
				Action:    nbtAction,
			},
			{
				Name:      "region",
				Usage:     "dump one chunk's NBT from a region file",
				ArgsUsage: "<file.mca> <x> <z>",
				Action:    regionAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func nbtAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("need an NBT file to read", 1)
	}
	file, err := os.Open(c.Args().Get(0))
	if err != nil {
		return err
	}
	defer file.Close()

	blob, err := readAnyCompression(bufio.NewReader(file))
	if err != nil {
		return err
	}
	dumpBlob(blob)
	return nil
}

// readAnyCompression sniffs the leading magic bytes to pick between gzip,
// zlib and the raw form; the format itself does not say which wrapper is in
// use.
func readAnyCompression(r *bufio.Reader) (*nbt.Blob, error) {
	magic, err := r.Peek(2)
	if err != nil {
		return nil, err
	}
	switch {
	case magic[0] == 0x1f && magic[1] == 0x8b:
		return nbt.ReadGzip(r)
	case magic[0] == 0x78:
		return nbt.ReadZlib(r)
	default:
		return nbt.Read(r)
	}
}

func regionAction(c *cli.Context) error {
	if c.NArg() != 3 {
		return cli.Exit("need a region file and chunk coordinates", 1)
	}
	x, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return err
	}
	z, err := strconv.Atoi(c.Args().Get(2))
	if err != nil {
		return err
	}

	file, err := os.Open(c.Args().Get(0))
	if err != nil {
		return err
	}
	reader, err := region.NewReader(file)
	if err != nil {
		return err
	}
	defer reader.Close()

	blob, err := reader.ReadChunk(x, z)
	if err != nil {
		return err
	}
	dumpBlob(blob)
	return nil
}

func dumpBlob(blob *nbt.Blob) {
	fmt.Printf("Compound(%q): %d entries\n", blob.Title, len(blob.Root()))
	dumpCompound(blob.Root(), 1)
}

func dumpCompound(compound nbt.Compound, depth int) {
	names := make([]string, 0, len(compound))
	for name := range compound {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		dumpValue(name, compound[name], depth)
	}
}

func dumpValue(name string, value nbt.Value, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	switch v := value.(type) {
	case nbt.Compound:
		fmt.Printf("%s%s: Compound, %d entries\n", indent, name, len(v))
		dumpCompound(v, depth+1)
	case nbt.List:
		fmt.Printf("%s%s: List, %d entries\n", indent, name, len(v))
		for i, elt := range v {
			dumpValue(strconv.Itoa(i), elt, depth+1)
		}
	case nbt.ByteArray:
		fmt.Printf("%s%s: ByteArray, %d bytes\n", indent, name, len(v))
	case nbt.IntArray:
		fmt.Printf("%s%s: IntArray, %d ints\n", indent, name, len(v))
	default:
		fmt.Printf("%s%s: %v\n", indent, name, v)
	}
}
