// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./codec/tool <command> <flags>

var (
	codecFlag = cli.StringFlag{
		Name:  "codec",
		Usage: "the codec variant, RLP or RLPn",
		Value: "RLPn",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "log level: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "codectool",
		HelpName:  "codectool",
		Usage:     "encodes and decodes values of the contract simulator",
		Copyright: "(c) 2025 Sonic Operations Ltd",
		Flags:     []cli.Flag{&verbosityFlag},
		Before: func(context *cli.Context) error {
			level := log.FromLegacyLevel(context.Int(verbosityFlag.Name))
			log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, true)))
			return nil
		},
		Commands: []*cli.Command{
			&Encode,
			&Decode,
			&AddressCmd,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
