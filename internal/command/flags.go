// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewStreamFlags builds the flags shared by the commands that consume a
// send stream. ns is the command namespace and cfgFile the resolved config
// file path ("" when no config file exists).
func NewStreamFlags(ns string, cfgFile string) []cli.Flag {
	output := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Value:   "text",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SNAPDIFF_OUTPUT"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	if cfgFile != "" {
		output = NameSpacedValueChainFlagFromConfigFile(ns, cfgFile, output)
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "stream file created with btrfs send -f",
		},
		&cli.BoolFlag{
			Name:  "delete",
			Usage: "delete the stream file after reading it",
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "color",
			Usage: "enable colored text output",
			Value: false,
		},
		output,
	}
}

// NewSnapshotFlags builds the flags naming the snapshot pair handed to
// btrfs send when no stream file is given.
func NewSnapshotFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "parent",
			Aliases: []string{"p"},
			Usage:   "parent snapshot (must exist and be readonly)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SNAPDIFF_PARENT"),
			),
		},
		&cli.StringFlag{
			Name:    "child",
			Aliases: []string{"c"},
			Usage:   "child snapshot to diff against the parent",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SNAPDIFF_CHILD"),
			),
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config
// file sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
