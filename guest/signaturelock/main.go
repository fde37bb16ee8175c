// Command signaturelock is the "preimage lock" / "pubkey lock" guest script
// (§8 scenarios 4-5), mirroring
// original_source/examples/signature_lock/src/lib.rs. Tries the legacy
// check_signature form against two candidate pubkey slots before falling
// back to a preimage check.
package main

import "github.com/cryptidtech/wacc/guest/wacc"

//export move_zig
func moveZig() bool {
	return wacc.CheckSignatureLegacy("/tpubkey") ||
		wacc.CheckSignatureLegacy("/pubkey") ||
		wacc.CheckPreimage("/hash")
}

func main() {}
