// Command log is the "log hello" guest script (§8 scenario 1): built with
// TinyGo against guest/wacc, mirroring
// original_source/examples/log/src/lib.rs.
package main

import "github.com/cryptidtech/wacc/guest/wacc"

//export move_zig
func moveZig() bool {
	return wacc.Log("Hello World!")
}

func main() {}
