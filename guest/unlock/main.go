// Command unlock is the "unlock push-push" guest script (§8 scenario 3),
// mirroring original_source/examples/unlock/src/lib.rs.
package main

import "github.com/cryptidtech/wacc/guest/wacc"

//export for_great_justice
func forGreatJustice() bool {
	wacc.Push("/entry/")
	wacc.Push("/entry/proof")
	return true
}

func main() {}
