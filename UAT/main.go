// Package main demonstrates impshape usage with an example interface.
package main

import (
	"fmt"

	"github.com/toejough/impshape"
	"github.com/toejough/impshape/UAT/run"
)

func main() {
	const (
		inputA = 1
		inputB = 2
	)

	mock := impshape.NewMock("IntOps").Apply(
		impshape.SetupFunction("Add", func(a, b int) int { return a + b }),
		impshape.SetupFunction("Format", func(i int) string { return fmt.Sprintf("Number: %d", i) }),
		impshape.SetupFunction("Print", func(s string) { fmt.Println("print called with:", s) }),
	)

	run.PrintSum(inputA, inputB, run.NewIntOpsShape(mock))

	for _, name := range []string{"Add", "Format", "Print"} {
		records, _ := mock.Calls(impshape.KindFunction, name)
		fmt.Printf("%s: %v\n", name, records)
	}
}
