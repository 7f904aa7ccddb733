package main

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/0xsoniclabs/contractsim/codec"
	"github.com/0xsoniclabs/contractsim/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var listFlag = cli.BoolFlag{
	Name:  "list",
	Usage: "wrap the values into a list",
}

var Encode = cli.Command{
	Action:    encode,
	Name:      "encode",
	Usage:     "encodes typed values, e.g. int:5 str:abc bytes:0x0102 addr:hx.. bool:true null",
	ArgsUsage: "<type:value>...",
	Flags:     []cli.Flag{&codecFlag, &listFlag},
}

func encode(context *cli.Context) error {
	variant, err := codec.ParseVariant(context.String(codecFlag.Name))
	if err != nil {
		return err
	}
	values := make([]any, 0, context.Args().Len())
	for _, arg := range context.Args().Slice() {
		v, err := parseValue(arg)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	log.Debug("Encoding", "codec", variant, "values", len(values))

	w := codec.NewWriter(variant)
	if context.Bool(listFlag.Name) {
		if err := w.WriteValue(values); err != nil {
			return err
		}
	} else {
		for _, v := range values {
			if err := w.WriteValue(v); err != nil {
				return err
			}
		}
	}
	data, err := w.Bytes()
	if err != nil {
		return err
	}
	fmt.Fprintln(context.App.Writer, hexutil.Encode(data))
	return nil
}

// parseValue converts a command line argument of the form <type>:<value>
// into a canonical value.
func parseValue(arg string) (any, error) {
	if arg == "null" {
		return nil, nil
	}
	typ, raw, found := strings.Cut(arg, ":")
	if !found {
		return nil, fmt.Errorf("invalid argument %q, expected <type>:<value>", arg)
	}
	switch typ {
	case "int":
		n, ok := new(big.Int).SetString(raw, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		return n, nil
	case "str":
		return raw, nil
	case "bytes":
		return hexutil.Decode(raw)
	case "addr":
		return common.ParseAddress(raw)
	case "bool":
		return strconv.ParseBool(raw)
	}
	return nil, fmt.Errorf("unknown type %q", typ)
}
