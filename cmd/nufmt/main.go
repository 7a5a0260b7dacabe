// Command nufmt parses EML, ICS, INI and VCF files and prints them as a
// tree, a table or JSON.
//
// Usage:
//
//	nufmt [global flags] <eml|ics|ini|vcf|auto> [files...]
//
// Standard input is read when no file is given.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
