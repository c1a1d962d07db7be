// Command mapisse maintains and serves a local snapshot of paintings,
// painters, and the museums that hold them, sourced from Wikidata.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
