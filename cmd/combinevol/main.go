// combinevol reconstructs a single volume from a set of sub-volume
// parts previously produced by splitvol, either driven by a JSON
// descriptor or by auto-discovering a numbered series.
//
// Usage:
//
//	combinevol -f inbase [options]
//
// Options:
//
//	-f, --filename <base>     input base; parts expected at <base>1.mhd,
//	                          <base>2.mhd, ... or as listed in a descriptor (required)
//	-o, --out <prefix>        output prefix (default: <base>_combined)
//	-d, --descriptor <path>   path to a .gift sidecar; if absent, auto-discover
//	-v                        verbose output
//	-version                  show version information
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gift-surg/splitvol/gift"
)

const version = "1.0.0"

func main() {
	filename := flag.String("f", "", "input base (required)")
	flag.StringVar(filename, "filename", "", "input base (required)")
	out := flag.String("o", "", "output prefix (default: <base>_combined)")
	flag.StringVar(out, "out", "", "output prefix (default: <base>_combined)")
	descriptor := flag.String("d", "", "path to a .gift sidecar; if absent, auto-discover")
	flag.StringVar(descriptor, "descriptor", "", "path to a .gift sidecar; if absent, auto-discover")
	verbose := flag.Bool("v", false, "verbose output")
	showVersion := flag.Bool("version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: combinevol -f inbase [options]\n\n")
		fmt.Fprintf(os.Stderr, "Reconstruct a single volume from split sub-volume parts.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("combinevol version %s\n", version)
		os.Exit(0)
	}

	if *filename == "" {
		fmt.Fprintln(os.Stderr, "Error: -f/--filename is required")
		flag.Usage()
		os.Exit(1)
	}

	outBase := *out
	if outBase == "" {
		outBase = *filename + "_combined"
	}

	if err := run(*filename, *descriptor, outBase, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inputBase, descriptorPath, outBase string, verbose bool) error {
	start := time.Now()
	factory := gift.OSFileHandleFactory{}

	if verbose {
		if descriptorPath != "" {
			fmt.Printf("Combining from descriptor %s\n", descriptorPath)
		} else {
			fmt.Printf("Auto-discovering parts for base %s\n", inputBase)
		}
	}

	if err := gift.Combine(gift.CombineOptions{
		InputBase:      inputBase,
		DescriptorPath: descriptorPath,
		OutBase:        outBase,
		Factory:        factory,
	}); err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Wrote %s.mhd / %s.raw\n", outBase, outBase)
		fmt.Printf("Done in %s\n", time.Since(start).Round(time.Millisecond))
	}
	return nil
}
