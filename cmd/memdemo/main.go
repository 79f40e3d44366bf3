// Command memdemo drives the heaplab allocators from the command line:
// a bulk allocation stress run, a small allocate/calloc smoke test, and
// an owned-cell matrix lifecycle under the leak harness.
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/katalvlaran/heaplab/arena"
	"github.com/katalvlaran/heaplab/matrix"
	"github.com/katalvlaran/heaplab/mem"
)

func main() {
	app := cli.NewApp()
	app.Name = "memdemo"
	app.Usage = "exercise the heaplab arena, matrix, and leak harness"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "trace every allocator event to stderr",
		},
	}
	app.Commands = []cli.Command{
		stressCommand(),
		smokeCommand(),
		gridCommand(),
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "memdemo:", err)
		os.Exit(1)
	}
}

// logger returns a development logger when --verbose is set, a silent one
// otherwise.
func logger(c *cli.Context) (*zap.Logger, error) {
	if !c.GlobalBool("verbose") {
		return zap.NewNop(), nil
	}

	return zap.NewDevelopment()
}

func stressCommand() cli.Command {
	return cli.Command{
		Name:    "stress",
		Aliases: []string{"st"},
		Usage:   "allocate a burst of blocks, free them all, report stats",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "count, n", Value: 1024, Usage: "blocks to allocate"},
			cli.IntFlag{Name: "size, s", Value: 512, Usage: "bytes per block (upper bound with --random)"},
			cli.BoolFlag{Name: "random, r", Usage: "randomize block sizes up to --size"},
			cli.Int64Flag{Name: "seed", Value: 1, Usage: "seed for --random"},
		},
		Action: runStress,
	}
}

func runStress(c *cli.Context) error {
	lg, err := logger(c)
	if err != nil {
		return err
	}
	count, size := c.Int("count"), c.Int("size")
	if count <= 0 || size <= 0 {
		return errors.New("count and size must be positive")
	}

	a := arena.New(arena.WithLogger(lg))
	defer a.Release()
	rng := rand.New(rand.NewSource(c.Int64("seed")))

	bufs := make([][]byte, 0, count)
	total := 0
	for i := 0; i < count; i++ {
		n := size
		if c.Bool("random") {
			n = 1 + rng.Intn(size)
		}
		buf, aerr := a.Allocate(n)
		if aerr != nil {
			return fmt.Errorf("allocate block %d: %w", i, aerr)
		}
		total += len(buf)
		bufs = append(bufs, buf)
	}
	fmt.Printf("allocated %d blocks, %d KiB\n", count, total/1024)

	for _, buf := range bufs {
		if ferr := a.Free(buf); ferr != nil {
			return ferr
		}
	}

	st := a.Stats()
	fmt.Printf("segments=%d capacity=%d KiB free=%d KiB peak=%d KiB\n",
		st.Segments, st.CapacityBytes/1024, st.FreeBytes/1024, st.PeakLiveBytes/1024)
	fmt.Printf("allocs=%d frees=%d splits=%d merges=%d grows=%d\n",
		st.Allocs, st.Frees, st.Splits, st.Merges, st.Grows)
	if st.LiveBlocks != 0 {
		return fmt.Errorf("arena not drained: %d blocks live", st.LiveBlocks)
	}
	fmt.Println("arena drained")

	return nil
}

func smokeCommand() cli.Command {
	return cli.Command{
		Name:    "smoke",
		Aliases: []string{"sm"},
		Usage:   "allocate, fill, and release a pair of small buffers",
		Action:  runSmoke,
	}
}

func runSmoke(c *cli.Context) error {
	lg, err := logger(c)
	if err != nil {
		return err
	}
	a := arena.New(arena.WithLogger(lg))
	defer a.Release()

	buf, err := a.Allocate(64)
	if err != nil {
		return fmt.Errorf("allocate: %w", err)
	}
	for i := range buf {
		buf[i] = 0x01
	}
	if err = a.Free(buf); err != nil {
		return fmt.Errorf("free: %w", err)
	}
	fmt.Println("allocate/fill/free 64 bytes: ok")

	buf, err = a.Calloc(8, 8)
	if err != nil {
		return fmt.Errorf("calloc: %w", err)
	}
	for i, b := range buf {
		if b != 0 {
			return fmt.Errorf("calloc byte %d not zero", i)
		}
	}
	for i := range buf {
		buf[i] = 0x02
	}
	if err = a.Free(buf); err != nil {
		return fmt.Errorf("free: %w", err)
	}
	fmt.Println("calloc/verify/fill/free 8x8 bytes: ok")

	if st := a.Stats(); st.LiveBlocks != 0 {
		return fmt.Errorf("arena not drained: %d blocks live", st.LiveBlocks)
	}
	fmt.Println("arena drained")

	return nil
}

func gridCommand() cli.Command {
	return cli.Command{
		Name:    "grid",
		Aliases: []string{"g"},
		Usage:   "build an owned-cell matrix over the arena and tear it down",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "rows", Value: 4, Usage: "matrix rows"},
			cli.IntFlag{Name: "cols", Value: 4, Usage: "matrix columns"},
			cli.IntFlag{Name: "cell", Value: 16, Usage: "bytes per occupied cell"},
		},
		Action: runGrid,
	}
}

func runGrid(c *cli.Context) error {
	lg, err := logger(c)
	if err != nil {
		return err
	}
	a := arena.New(arena.WithLogger(lg))
	defer a.Release()
	checked := mem.NewChecked(a)

	rows, cols, cell := c.Int("rows"), c.Int("cols"), c.Int("cell")
	m, err := matrix.New(rows, cols, matrix.WithAllocator(checked))
	if err != nil {
		return fmt.Errorf("construct %dx%d: %w", rows, cols, err)
	}

	filled := 0
	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			if r == col || (r+col)%3 == 0 {
				if _, aerr := m.Allocate(r, col, cell); aerr != nil {
					return aerr
				}
				filled++
			}
		}
	}
	fmt.Printf("matrix %dx%d: %d cells of %d bytes live (%d bytes total)\n",
		rows, cols, filled, cell, checked.LiveBytes())

	if err = m.Destroy(); err != nil {
		return fmt.Errorf("destroy: %w", err)
	}
	if err = checked.CheckLeaks(); err != nil {
		return err
	}
	fmt.Println("destroy released every cell: no leaks")

	return nil
}
