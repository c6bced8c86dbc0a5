// Command gbtree trains and applies a single gradient boosting regression
// tree on .npy data.
//
// Usage:
//
//	gbtree train   -x X.npy -y y.npy [-pred pred.npy] [-config cfg.json] [-graph tree.svg] -model tree.json
//	gbtree predict -x X.npy -model tree.json -out pred.npy
//	gbtree score   -x X.npy -y y.npy -model tree.json
//	gbtree plot    -x X.npy -y y.npy -model tree.json -out plot.png
//
// Without -y, train expects the last two columns of X to be the gradient and
// hessian of each row.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"github.com/YuminosukeSato/gbtree/pkg/log"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: gbtree <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "run 'gbtree <command> -h' for the flags of a command")
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		err := c.run(args[1:], stdout)
		switch {
		case err == nil:
			return 0
		case errors.Is(err, flag.ErrHelp):
			return 0
		default:
			log.GetLoggerWithName("cli").Error("Command failed", err, "command", c.name)
			fmt.Fprintf(stderr, "gbtree %s: %v\n", c.name, err)
			return 1
		}
	}
	usage(stderr)
	return 2
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
