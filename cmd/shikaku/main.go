// Command shikaku solves a Shikaku puzzle read from a file or stdin and
// prints the solutions as colored text or writes them as PNG images.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"puzzlekit.dev/shikaku"
	"puzzlekit.dev/shikaku/internal/render"
)

func main() {
	file := flag.String("file", "", "read the puzzle from this file instead of stdin")
	firstOnly := flag.Bool("first", false, "stop after the first solution found")
	doAll := flag.Bool("all", false, "show every solution instead of the minimum one")
	colorize := flag.Bool("color", false, "apply ANSI colors to text output")
	keepNum := flag.Bool("keepnum", false, "keep the clue numbers in the output")
	output := flag.String("output", "text", "how to display solutions: text or image")
	imageFile := flag.String("image-file", "shikaku-solution", "base name for -output image files")

	timeout := flag.Duration("timeout", 1*time.Minute, "abort the solve after this long")

	profile := flag.Bool("profile", false, "profile the solver")
	profileFile := flag.String("profile-file", "cpu.pprof", "the file to write the CPU profile to")
	memoryProfileFile := flag.String("memory-profile-file", "mem.pprof", "the file to write the memory profile to")

	flag.Parse()

	if *firstOnly && *doAll {
		fmt.Println("Cannot use both -first and -all")
		os.Exit(1)
	}
	if *output != "text" && *output != "image" {
		fmt.Println("Unknown -output:", *output)
		os.Exit(1)
	}

	board, err := readBoard(*file)
	if err != nil {
		fmt.Println("Error reading puzzle:", err)
		os.Exit(1)
	}

	var mf *os.File
	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			fmt.Println("Error creating profile file:", err)
			os.Exit(1)
		}
		defer f.Close()

		mf, err = os.Create(*memoryProfileFile)
		if err != nil {
			fmt.Println("Error creating memory profile file:", err)
			os.Exit(1)
		}
		defer mf.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Println("Error starting CPU profile:", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	solutions, err := collect(ctx, board, *firstOnly)
	if err != nil {
		fmt.Println("Error solving:", err)
		os.Exit(1)
	}

	if len(solutions) == 0 {
		fmt.Println("0 Unsolvable grid")
		return
	}
	fmt.Println(len(solutions), "Solutions")

	show := solutions[:1] // sorted: the first is the minimum solution
	if *doAll {
		show = solutions
	}
	for i, sol := range show {
		if *output == "image" {
			name := fmt.Sprintf("%s-%d.png", *imageFile, i+1)
			if err := writePNG(name, board, sol, *keepNum); err != nil {
				fmt.Println("Error writing image:", err)
				os.Exit(1)
			}
			fmt.Println("Saved figure to", name)
			continue
		}
		fmt.Println()
		opts := render.TextOptions{Color: *colorize, KeepNumbers: *keepNum}
		if err := render.Text(os.Stdout, board, sol, opts); err != nil {
			fmt.Println("Error rendering:", err)
			os.Exit(1)
		}
	}

	if mf != nil {
		pprof.WriteHeapProfile(mf)
	}
}

func readBoard(path string) (*shikaku.Board, error) {
	if path == "" {
		return shikaku.Parse(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return shikaku.Parse(f)
}

func collect(ctx context.Context, board *shikaku.Board, firstOnly bool) ([]string, error) {
	if !firstOnly {
		return shikaku.Solve(ctx, board)
	}
	s := shikaku.New(board)
	for sol := range s.Solutions(ctx) {
		return []string{sol}, nil
	}
	return nil, s.Err()
}

func writePNG(name string, board *shikaku.Board, sol string, keepNum bool) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return render.PNG(f, board, sol, render.PNGOptions{KeepNumbers: keepNum})
}
