package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/blockberries/aelf"
	"github.com/blockberries/aelf/types"
)

var Address = cli.Command{
	Name:  "address",
	Usage: "converts between base58check addresses and raw bytes",
	Subcommands: []*cli.Command{
		{
			Action:    addressDecode,
			Name:      "decode",
			Usage:     "prints the hex bytes of a base58check address",
			ArgsUsage: "<base58>",
		},
		{
			Action:    addressEncode,
			Name:      "encode",
			Usage:     "prints the base58check form of hex bytes",
			ArgsUsage: "<hex>",
		},
	},
}

var Hash = cli.Command{
	Name:  "hash",
	Usage: "validates and normalises hex hashes",
	Subcommands: []*cli.Command{
		{
			Action:    hashDecode,
			Name:      "decode",
			Usage:     "checks that the input is a 32-byte hex hash and prints it in lowercase",
			ArgsUsage: "<hex>",
		},
		{
			Action:    hashEncode,
			Name:      "encode",
			Usage:     "prints hex bytes in lowercase without a length check",
			ArgsUsage: "<hex>",
		},
	},
}

// singleArg returns the only positional argument of the command.
func singleArg(c *cli.Context, what string) (string, error) {
	if c.Args().Len() != 1 {
		return "", fmt.Errorf("expected exactly one %s argument", what)
	}
	return c.Args().Get(0), nil
}

// describe prefixes decode failures with their kind so that scripts
// can tell a typo from the wrong kind of identifier.
func describe(err error) error {
	if d, ok := aelf.IsDecodeError(err); ok {
		return fmt.Errorf("%s: %w", d.Kind, err)
	}
	return err
}

func addressDecode(c *cli.Context) error {
	text, err := singleArg(c, "address")
	if err != nil {
		return err
	}
	addr, err := types.AddressFromBase58(text)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(addr.Value))
	return nil
}

func addressEncode(c *cli.Context) error {
	text, err := singleArg(c, "hex")
	if err != nil {
		return err
	}
	raw, err := hex.DecodeString(text)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	fmt.Fprintln(c.App.Writer, types.Address{Value: raw}.Base58())
	return nil
}

func hashDecode(c *cli.Context) error {
	text, err := singleArg(c, "hash")
	if err != nil {
		return err
	}
	h, err := types.HashFromHex(text)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintln(c.App.Writer, h.Hex())
	return nil
}

func hashEncode(c *cli.Context) error {
	text, err := singleArg(c, "hex")
	if err != nil {
		return err
	}
	raw, err := hex.DecodeString(text)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	fmt.Fprintln(c.App.Writer, types.Hash{Value: raw}.Hex())
	return nil
}
