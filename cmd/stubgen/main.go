// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command stubgen generates and checks .pyi type stubs for an installed
// Python library.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/stubgen/internal/config"
)

const version = "0.1.0"

// errReported marks a failure whose message was already printed.
var errReported = errors.New("reported")

func main() {
	cmd := newRootCmd(config.New("."), os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Flags are bound to v, which also
// carries STUBGEN_* environment variables and .stubgen.yaml.
func newRootCmd(v *viper.Viper, stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stubgen",
		Short:         "Generate .pyi type stubs by runtime introspection",
		Long:          "stubgen imports an installed Python library, introspects its public classes, functions, and constants, and writes .pyi stub files describing them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyPackage, config.DefaultPackage, "Root package to introspect")
	flags.StringP(config.KeyOutput, "o", "", "Stub tree directory (default src/<package>-stubs)")
	flags.BoolP(config.KeyVerbose, "v", false, "Verbose output")
	flags.String(config.KeyPython, config.DefaultPython, "Python interpreter used for introspection")
	flags.StringSlice(config.KeyPythonPath, nil, "Extra PYTHONPATH entries")
	flags.Duration(config.KeyTimeout, config.DefaultTimeout, "Timeout for each introspection call")

	bindFlags(v, rootCmd.PersistentFlags(),
		config.KeyPackage, config.KeyOutput, config.KeyVerbose,
		config.KeyPython, config.KeyPythonPath, config.KeyTimeout)

	rootCmd.AddCommand(newGenerateCmd(v))
	rootCmd.AddCommand(newCheckCmd(v))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print stubgen version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stubgen %s\n", version)
		},
	}
}
