// catalog-validator checks a catalog JSON file before it is deployed:
// schema validation first, then referential integrity via a full snapshot
// build. Exits non-zero when the file cannot produce a usable snapshot.
package main

import (
	"flag"
	"fmt"
	"os"

	"gastro-triage/internal/catalog"
	"gastro-triage/internal/common/logger"
)

func main() {
	path := flag.String("file", "configs/catalog.json", "path to the catalog JSON file")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", *path, err)
		os.Exit(1)
	}

	if err := catalog.ValidateDocument(raw); err != nil {
		fmt.Fprintf(os.Stderr, "schema validation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("schema: OK")

	log := logger.NewStructured("info", "console")
	snap, err := catalog.Parse(raw, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog build failed: %v\n", err)
		os.Exit(1)
	}

	symptoms, diseases, relations := snap.Counts()
	fmt.Printf("snapshot: OK (%d symptoms, %d diseases, %d relations)\n", symptoms, diseases, relations)

	if diseases == 0 || symptoms == 0 {
		fmt.Fprintln(os.Stderr, "warning: catalog has no matchable content")
		os.Exit(2)
	}
}
