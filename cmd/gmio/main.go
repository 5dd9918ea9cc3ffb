// Command gmio is a thin CLI harness over the gmio library: it is not a
// product in its own right, just a convenient way to probe or compare STL
// files from a shell.
package main

import (
	"fmt"
	"os"

	"github.com/fougue-go/gmio"
	"github.com/fougue-go/gmio/stlmodel"
	gmiostream "github.com/fougue-go/gmio/stream"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "probe":
		err = runProbe(os.Args[2:])
	case "dedup":
		err = runDedup(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "gmio: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage:\n  gmio probe <file.stl>\n  gmio dedup <a.stl> <b.stl>\n")
}

func runProbe(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("probe: expected exactly one file argument")
	}

	result, err := probeFile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("format: %v\n", result.Format)
	fmt.Printf("triangles: %d\n", result.TriangleCount)
	if result.Format == stlmodel.Ascii {
		fmt.Printf("solid name: %q\n", result.SolidName)
	}

	return nil
}

func probeFile(path string) (stlmodel.ProbeResult, error) {
	s, err := gmiostream.OpenFileStream(path)
	if err != nil {
		return stlmodel.ProbeResult{}, err
	}
	defer s.Close()

	return gmio.Probe(s)
}

func runDedup(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("dedup: expected exactly two file arguments")
	}

	hashA, err := hashFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	hashB, err := hashFile(args[1])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[1], err)
	}

	if hashA == hashB {
		fmt.Printf("identical: %s and %s encode the same triangle stream\n", args[0], args[1])
	} else {
		fmt.Printf("different: %s and %s encode different triangle streams\n", args[0], args[1])
	}

	return nil
}

func hashFile(path string) (uint64, error) {
	var creator stlmodel.SliceMeshCreator
	if err := gmio.ReadFile(path, &creator); err != nil {
		return 0, err
	}

	return stlmodel.ContentHash(stlmodel.SliceMesh(creator.Triangles))
}
