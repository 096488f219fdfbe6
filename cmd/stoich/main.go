package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/big"
	"os"
	"strings"

	"github.com/zephyrtronium/stoich"
)

func main() {
	log.SetFlags(0)
	var (
		inname, cfgname string
		prec            uint
		digits          int
		verbose         bool
	)
	flag.StringVar(&inname, "in", "", "input file, one input per line (default stdin if no args given)")
	flag.StringVar(&cfgname, "config", "", "YAML config file")
	flag.UintVar(&prec, "p", 64, "precision of mass calculations in bits")
	flag.IntVar(&digits, "digits", 2, "decimal places in percent compositions (-1 for all)")
	flag.BoolVar(&verbose, "v", false, "log debugging information")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] mass|percent|balance [input ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(cfgname, func(cfg *config) {
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "p":
				cfg.Prec = prec
			case "digits":
				cfg.Digits = digits
			case "v":
				if verbose {
					cfg.LogLevel = "debug"
				}
			}
		})
	})
	if err != nil {
		log.Fatal(err)
	}
	lg := newLogger(os.Stderr, cfg.LogLevel)

	tab, err := stoich.NewTable(stoich.StandardWeights(),
		stoich.SetWeights(cfg.overrides()),
		stoich.Prec(cfg.Prec),
		stoich.Digits(cfg.Digits),
	)
	if err != nil {
		log.Fatal(err)
	}
	lg.Debug("weight table ready", "prec", cfg.Prec, "digits", cfg.Digits, "overrides", len(cfg.Weights))

	ins := flag.Args()[1:]
	if len(ins) == 0 || inname != "" {
		lines, err := readLines(inname, len(ins) == 0)
		if err != nil {
			log.Fatal(err)
		}
		ins = append(lines, ins...)
	}
	os.Exit(run(os.Stdout, lg, tab, flag.Arg(0), ins))
}

// run executes one command on every input, writing results to w. It returns
// the process exit code: 0 if every input succeeded, 1 if any failed, and 2
// for an unknown command.
func run(w io.Writer, lg *slog.Logger, tab *stoich.Table, cmd string, ins []string) int {
	var do func(string) error
	switch cmd {
	case "mass":
		do = func(s string) error {
			m, err := tab.MolarMass(s)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s: %.4f g/mol\n", s, m)
			return nil
		}
	case "percent":
		do = func(s string) error {
			pc, err := tab.PercentComposition(s)
			if err != nil {
				return err
			}
			// Only presence matters for Hill order.
			c := make(stoich.Composition, len(pc))
			for sym := range pc {
				c[sym] = 1
			}
			fmt.Fprintf(w, "%s:\n", s)
			for _, sym := range c.Elements() {
				fmt.Fprintf(w, "  %s: %s%%\n", sym, fmtpct(pc[sym]))
			}
			return nil
		}
	case "balance":
		do = func(s string) error {
			eq, err := stoich.ParseEquation(s)
			if err != nil {
				return err
			}
			b, err := eq.Balance()
			if err != nil {
				return err
			}
			lg.Debug("balanced", "equation", s, "reactants", b.ReactantCoeffs, "products", b.ProductCoeffs)
			fmt.Fprintln(w, "Balanced:", b)
			return nil
		}
	default:
		lg.Error("unknown command", "command", cmd)
		return 2
	}
	code := 0
	for _, s := range ins {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if err := do(s); err != nil {
			lg.Warn("input failed", "command", cmd, "input", s, "err", err)
			fmt.Fprintf(w, "%s: error: %v\n", s, err)
			code = 1
		}
	}
	return code
}

// fmtpct formats a percentage with the shortest decimal that identifies it at
// its precision.
func fmtpct(x *big.Float) string {
	return x.Text('f', -1)
}

func readLines(inname string, std bool) ([]string, error) {
	var f io.Reader
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
