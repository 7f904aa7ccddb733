package main

import (
	"fmt"

	"github.com/0xsoniclabs/contractsim/crypto"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
)

var AddressCmd = cli.Command{
	Action:    address,
	Name:      "address",
	Usage:     "derives the account address of a secp256k1 public key",
	ArgsUsage: "<hex public key>",
}

func address(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("missing public key")
	}
	key, err := hexutil.Decode(context.Args().Get(0))
	if err != nil {
		return err
	}
	addr, err := crypto.New().AddressFromKey(key)
	if err != nil {
		return err
	}
	fmt.Fprintln(context.App.Writer, addr)
	return nil
}
