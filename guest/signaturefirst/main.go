// Command signaturefirst mirrors
// original_source/examples/signature_first/src/lib.rs: requires a version
// check to pass before attempting a signature check.
package main

import "github.com/cryptidtech/wacc/guest/wacc"

//export move_zig
func moveZig() bool {
	return wacc.CheckVersion(0) && wacc.CheckSignatureLegacy("ephemeral")
}

func main() {}
