// Command csm assembles and runs a CSM assembly program.
//
// Usage:
//
//	csm [options] <file>.csm [!OPTION=VALUE ...]
//
// Configuration directives given on the command line are applied before
// any directive in the source file. After the run, successful or faulted,
// the final machine state is dumped to standard error.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/csm-lang/csm/asm"
	"github.com/csm-lang/csm/vm"
)

var (
	verbose = flag.Bool("v", false, "trace every compilation stage and executed instruction")
	limit   = flag.Int("limit", 0, "instruction ceiling, overriding any !LIMIT directive")
	quiet   = flag.Bool("q", false, "suppress the final machine state dump")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	args := flag.Args()
	if len(args) < 1 {
		log.Fatalf("usage: %v [options] <file>.csm [!OPTION=VALUE ...]", os.Args[0])
	}

	path := args[0]
	if !strings.HasSuffix(path, ".csm") {
		log.Printf("warning: '%v' does not end in .csm", path)
	}

	assembler := asm.NewAssembler()
	assembler.Verbose = *verbose

	for _, arg := range args[1:] {
		err := assembler.Directive(arg)
		if err != nil {
			log.Fatalf("'%v': %v", arg, err)
		}
	}

	input, err := os.Open(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer input.Close()

	prog, err := assembler.Assemble(input)
	if err != nil {
		log.Fatalf("%v:%v", path, err)
	}

	machine := vm.New(prog)
	machine.Verbose = *verbose
	if *limit > 0 {
		machine.Limit = *limit
	}

	err = machine.Run()
	if err != nil {
		log.Printf("%v:%v", path, err)
	}

	if !*quiet {
		fmt.Fprint(os.Stderr, machine)
	}
	if err != nil {
		os.Exit(1)
	}
}
