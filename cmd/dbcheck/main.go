// Command dbcheck lints a signature database: it re-serializes records
// for inspection and reports records that can never win the first-match
// scan because an earlier pattern shadows them.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/packetsight/helloprint/db"
	fp "github.com/packetsight/helloprint/fputil"
)

func main() {
	signatureFile := flag.String("signatures", "ssl.sigs", "file containing client signatures")
	dump := flag.Bool("dump", false, "re-serialize the database to stdout")
	flag.Parse()

	file, err := os.Open(*signatureFile)
	if err != nil {
		log.Fatal(err)
	}
	database, err := db.NewDatabase(file)
	file.Close()
	if err != nil {
		log.Fatal(err)
	}

	if *dump {
		if err := database.Dump(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	shadowed := 0
	for i, later := range database.Records {
		// Only wildcard-free records can be checked as if observed.
		if hasPatternTokens(later.Signature.Ciphers) || hasPatternTokens(later.Signature.Extensions) {
			continue
		}
		for _, earlier := range database.Records[:i] {
			if earlier.Signature.Version != later.Signature.Version ||
				earlier.Signature.Flags != later.Signature.Flags {
				continue
			}
			if !earlier.Signature.Extensions.Match(later.Signature.Extensions) ||
				!earlier.Signature.Ciphers.Match(later.Signature.Ciphers) {
				continue
			}
			overlap := earlier.Signature.Ciphers.Values().Set().
				Inter(later.Signature.Ciphers.Values().Set()).Len()
			fmt.Printf("line %d: %s can never match, shadowed by line %d: %s (%d shared ciphers)\n",
				later.LineNo, later.Label, earlier.LineNo, earlier.Label, overlap)
			shadowed++
			break
		}
	}
	fmt.Printf("%d records, %d shadowed\n", database.Len(), shadowed)
	if shadowed > 0 {
		os.Exit(1)
	}
}

func hasPatternTokens(list fp.TokenList) bool {
	for _, t := range list {
		if t == fp.TokenAny || t&fp.TokenOptional != 0 {
			return true
		}
	}
	return false
}
