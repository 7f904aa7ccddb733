package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/0xsoniclabs/contractsim/codec"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
)

var Decode = cli.Command{
	Action:    decode,
	Name:      "decode",
	Usage:     "prints the item tree of an encoded value",
	ArgsUsage: "<hex>",
	Flags:     []cli.Flag{&codecFlag},
}

func decode(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("missing hex encoded input")
	}
	variant, err := codec.ParseVariant(context.String(codecFlag.Name))
	if err != nil {
		return err
	}
	data, err := hexutil.Decode(context.Args().Get(0))
	if err != nil {
		return err
	}
	r := codec.NewReader(variant, data)
	if err := printItems(context.App.Writer, r, 0); err != nil {
		return err
	}
	return r.Close()
}

func printItems(out io.Writer, r *codec.Reader, depth int) error {
	indent := strings.Repeat("  ", depth)
	for r.HasNext() {
		kind, err := r.Peek()
		if err != nil {
			return err
		}
		switch kind {
		case codec.ItemNull:
			if err := r.ReadNull(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%snull\n", indent)
		case codec.ItemList:
			if err := r.BeginList(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%slist\n", indent)
			if err := printItems(out, r, depth+1); err != nil {
				return err
			}
			if err := r.End(); err != nil {
				return err
			}
		default:
			data, err := r.ReadBytes()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s%s\n", indent, describe(data))
		}
	}
	return nil
}

// describe renders a string item with its integer and, if printable, its
// text interpretation.
func describe(data []byte) string {
	res := fmt.Sprintf("%s int=%v", hexutil.Encode(data), codec.FromSignedBytes(data))
	if len(data) > 0 && utf8.Valid(data) && isPrintable(string(data)) {
		res += fmt.Sprintf(" str=%q", string(data))
	}
	return res
}

func isPrintable(s string) bool {
	for _, c := range s {
		if c < 0x20 || c == 0x7f {
			return false
		}
	}
	return true
}
