// Package run provides an example interface and function for demonstrating impshape usage.
package run

//go:generate impgen IntOps

// IntOps is an interface for demonstration.
type IntOps interface {
	Add(a, b int) int
	Format(i int) string
	Print(s string)
}

// PrintSum calculates the sum of two integers using the provided IntOps dependency,
// formats the result, and prints it using the dependency's methods.
func PrintSum(a, b int, deps IntOps) (int, int, string) {
	sum := deps.Add(a, b)
	formatted := deps.Format(sum)
	deps.Print(formatted)

	return a, b, formatted
}
