/*
Copyright (C) 2019-2020 Andreas T Jonsson

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tmartin/floppybios/bios"
	"github.com/tmartin/floppybios/debugui"
	"github.com/tmartin/floppybios/fat"
	"github.com/tmartin/floppybios/version"
)

func main() {
	var (
		memKiB int
		tui    bool
		quiet  bool
	)

	root := &cobra.Command{
		Use:     "floppybios <image>",
		Short:   "Boot a floppy image under a virtualised real-mode CPU",
		Version: version.Current.String(),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMachine(args[0], memKiB, tui, quiet)
		},
	}
	root.Flags().IntVar(&memKiB, "mem", 1024, "guest memory size in KiB")
	root.Flags().BoolVar(&tui, "tui", false, "show a full-screen register/history view after halting")
	root.Flags().BoolVar(&quiet, "quiet", false, "suppress the per-interrupt debug log")

	runCmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Boot <image> under the emulator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMachine(args[0], memKiB, tui, quiet)
		},
	}
	runCmd.Flags().IntVar(&memKiB, "mem", 1024, "guest memory size in KiB")
	runCmd.Flags().BoolVar(&tui, "tui", false, "show a full-screen register/history view after halting")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress the per-interrupt debug log")

	infoCmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Parse and print the MBR/BPB of <image> without booting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printInfo(args[0])
		},
	}

	root.AddCommand(runCmd, infoCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openImage(path string) (fat.Image, error) {
	return fat.Open(afero.NewOsFs(), path)
}

func runMachine(path string, memKiB int, tui, quiet bool) error {
	image, err := openImage(path)
	if err != nil {
		return fmt.Errorf("floppybios: %w", err)
	}
	defer image.Close()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if quiet {
		logger = log.New(io.Discard, "", 0)
	}

	m, err := bios.NewMachine(image, memKiB*1024, logger)
	if err != nil {
		return fmt.Errorf("floppybios: %w", err)
	}

	halted := m.Start()
	logger.Printf("machine halted, clean=%t, instructions=%d, interrupts=%d",
		halted, m.Stats().NumInstructions, m.Stats().NumInterrupts)

	if tui {
		return debugui.Show(m)
	}
	return nil
}

func printInfo(path string) error {
	image, err := openImage(path)
	if err != nil {
		return fmt.Errorf("floppybios: %w", err)
	}
	defer image.Close()

	mbr := image.MBR()
	fmt.Printf("valid BPB:        %t\n", mbr.IsValid())
	fmt.Printf("bytes/sector:     %d\n", mbr.EffectiveBytesPerSector())
	return nil
}
