/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package opcodes

import "testing"

func TestMnemonicKnownOpcode(t *testing.T) {
	if got := Mnemonic(Iadd); got != "iadd" {
		t.Errorf("Mnemonic(Iadd) = %q, want %q", got, "iadd")
	}
}

func TestMnemonicUnknownOpcodeReturnsPlaceholder(t *testing.T) {
	got := Mnemonic(0xff)
	if got == "" {
		t.Errorf("expected a non-empty placeholder mnemonic for an unmapped opcode")
	}
}

func TestOpcodeValuesAreDistinct(t *testing.T) {
	seen := map[byte]string{
		Nop: "nop", Iadd: "iadd", Goto: "goto", New: "new",
		Newarray: "newarray", Anewarray: "anewarray", Checkcast: "checkcast",
		Invokedynamic: "invokedynamic", Return: "return",
	}
	if len(seen) != 9 {
		t.Fatalf("test setup bug: expected 9 distinct constants")
	}
}
