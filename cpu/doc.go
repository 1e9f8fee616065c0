// Package cpu implements the execution engine of the 8086 emulator.
//
// The Cpu holds the eight general registers, the four segment registers, the
// instruction pointer and the flag word. Memory and port accesses go through
// an io.MemMap and an io.IoMap. Each Tick fetches one instruction through the
// memory map, byte by byte, decodes it with the isa package, and executes it.
//
// Arithmetic flag computation is partial: dyadic operations update only the
// carry and zero flags (and sign, for cmp), and each comparison outcome
// touches a single flag. Operands in memory are decoded as errors and are
// never executed.
package cpu
