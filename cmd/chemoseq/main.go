// Command chemoseq is the CLI front-end for the scheduler: it reads or
// synthesizes an instance, runs the Branch-and-Bound engine, and prints
// the resulting schedule. It is an external collaborator — spec.md's
// core excludes the CLI surface, but SPEC_FULL.md §6.3/§7 still names a
// concrete one driving instance, generator, bnb, and report together.
package main

import "os"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
