// Command slownie spells out numbers and amounts in Polish.
//
//	slownie 35302
//	slownie -unit metr 1 2 5
//	slownie -amount 123,45
//	slownie -amount -digits 123.45
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/remiges-tech/slownie/numwords"
	"github.com/remiges-tech/slownie/units"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("slownie", flag.ContinueOnError)
	fs.SetOutput(stderr)
	unitKey := fs.String("unit", "", "Unit catalogue key to count in, e.g. metr")
	amount := fs.Bool("amount", false, "Treat arguments as amounts in złoty")
	digits := fs.Bool("digits", false, "With -amount, keep grosze as digits (45/100)")
	unitsFile := fs.String("units-file", "", "YAML file with extra units")
	listUnits := fs.Bool("units", false, "List the known unit keys and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	catalogue, err := loadCatalogue(*unitsFile)
	if err != nil {
		fmt.Fprintf(stderr, "slownie: %v\n", err)
		return 1
	}

	if *listUnits {
		for _, key := range catalogue.Keys() {
			f, _ := catalogue.Lookup(key)
			fmt.Fprintf(stdout, "%s\t%s, %s, %s\n", key, f.NominativeSingular, f.NominativePlural, f.GenitivePlural)
		}
		return 0
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	var unit *numwords.GrammaticalForm
	if *unitKey != "" {
		if *amount {
			fmt.Fprintln(stderr, "slownie: -unit cannot be used with -amount")
			return 2
		}
		var ok bool
		if unit, ok = catalogue.Lookup(*unitKey); !ok {
			fmt.Fprintf(stderr, "slownie: unknown unit %q\n", *unitKey)
			return 1
		}
	}

	status := 0
	for _, arg := range fs.Args() {
		var text string
		switch {
		case *amount && *digits:
			text, err = numwords.ConvertAmountDigits(arg, numwords.Zloty)
		case *amount:
			text, err = numwords.ConvertAmount(arg, numwords.Zloty, numwords.Grosz)
		default:
			text, err = numwords.ConvertString(arg, unit)
		}
		if err != nil {
			fmt.Fprintf(stderr, "slownie: %s\n", describe(err))
			status = 1
			continue
		}
		fmt.Fprintln(stdout, text)
	}
	return status
}

func loadCatalogue(path string) (*units.Catalogue, error) {
	catalogue := units.Default()
	if path == "" {
		return catalogue, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	extra, err := units.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalogue.Merge(extra), nil
}

func describe(err error) string {
	if errors.Is(err, numwords.ErrOverflow) {
		return fmt.Sprintf("%v (largest supported number has %d digits)", err, len(numwords.MaxSupported().String()))
	}
	return err.Error()
}
