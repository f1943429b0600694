package main

import (
	"fmt"
	"os"

	"github.com/dmg-emu/dmg-core/pkg/cpu"
	"github.com/dmg-emu/dmg-core/pkg/inst"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dmgcore",
		Short: "DMG instruction-interpreter core — run, disassemble, and dump",
	}

	var maxSteps int

	runCmd := &cobra.Command{
		Use:   "run [boot.bin] [game.bin]",
		Short: "Boot a ROM pair and run until an error or step limit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			boot, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading boot image: %w", err)
			}
			game, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading game image: %w", err)
			}

			c := cpu.New()
			c.Boot(boot, game)

			fmt.Printf("Booted: %d boot bytes, %d game bytes\n", len(boot), len(game))

			steps := 0
			for maxSteps == 0 || steps < maxSteps {
				if err := c.Step(); err != nil {
					fmt.Printf("halted after %d steps: %v\n", steps, err)
					return nil
				}
				steps++
			}
			fmt.Printf("stopped after %d steps (--max-steps reached)\n", steps)
			fmt.Printf("PC=0x%04X SP=0x%04X A=0x%02X IME=%v\n", c.PC, c.Regs.SP, c.Regs.A, c.IME)
			return nil
		},
	}
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Stop after this many steps (0 = run until error)")

	var disasmCount int
	var disasmOffset int

	disasmCmd := &cobra.Command{
		Use:   "disasm [image.bin]",
		Short: "Disassemble a flat binary image starting at a given offset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}

			var mem cpu.Memory
			mem.WriteRange(uint16(disasmOffset), image)

			pc := uint16(disasmOffset)
			for i := 0; i < disasmCount; i++ {
				line, next := disasmOne(&mem, pc)
				fmt.Printf("%04X  %s\n", pc, line)
				if next <= pc {
					break
				}
				pc = next
			}
			return nil
		},
	}
	disasmCmd.Flags().IntVar(&disasmCount, "count", 16, "Number of instructions to disassemble")
	disasmCmd.Flags().IntVar(&disasmOffset, "offset", 0, "Starting address in the 64 KiB space")

	dumpCmd := &cobra.Command{
		Use:   "dump [boot.bin] [game.bin]",
		Short: "Boot a ROM pair, run a fixed number of steps, and dump the address space",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			boot, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading boot image: %w", err)
			}
			game, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading game image: %w", err)
			}

			c := cpu.New()
			c.Boot(boot, game)
			for i := 0; i < maxSteps; i++ {
				if err := c.Step(); err != nil {
					break
				}
			}

			dump := c.DumpMemory()
			for addr := 0; addr < len(dump); addr += 16 {
				fmt.Printf("%04X  ", addr)
				for b := 0; b < 16; b++ {
					fmt.Printf("%02X ", dump[addr+b])
				}
				fmt.Println()
			}
			return nil
		},
	}
	dumpCmd.Flags().IntVar(&maxSteps, "steps", 0, "Number of steps to run before dumping")

	rootCmd.AddCommand(runCmd, disasmCmd, dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// disasmOne decodes a single instruction at pc and renders it with its
// immediate operand filled in, returning the address of the next
// instruction.
func disasmOne(mem *cpu.Memory, pc uint16) (line string, next uint16) {
	opcode := mem.Read(pc)
	prefixed := opcode == 0xCB
	opByte := opcode
	if prefixed {
		opByte = mem.Read(pc + 1)
	}

	decoded, ok := inst.Decode(opByte, prefixed)
	if !ok {
		return fmt.Sprintf("??? (0x%02X)", opcode), pc + 1
	}

	var imm uint16
	switch decoded.Length {
	case 2:
		imm = uint16(mem.Read(pc + 1))
	case 3:
		imm = mem.ReadWord(pc + 1)
	}

	return inst.Disassemble(decoded, imm), pc + uint16(decoded.Length)
}
