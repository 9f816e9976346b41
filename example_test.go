package soundtracker_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aretw0/soundtracker"
	"github.com/aretw0/soundtracker/pkg/core"
	"github.com/aretw0/soundtracker/pkg/transfer"
)

// Example_basic demonstrates how to open a project, add a sound and read the totals.
func Example_basic() {
	// Create a temporary directory for the example
	tmpDir, err := os.MkdirTemp("", "soundtracker-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := soundtracker.New(tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 1. Add a built-in sound
	if _, ok := svc.Add(ctx, "bass"); !ok {
		log.Fatal("bass is not in the catalog")
	}

	// 2. Read the totals
	for _, c := range svc.Totals().Ordered(core.AxisFrequency) {
		fmt.Printf("%s=%d\n", c.Value, c.Count)
	}
	// Output:
	// low=1
	// low-mid=1
	// mid=0
	// high=0
}

// Example_toggle shows that toggling the same value twice restores the row.
func Example_toggle() {
	svc, err := soundtracker.New("", soundtracker.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	row, _ := svc.Add(ctx, "pad")
	svc.Toggle(ctx, row.RowID, core.AxisDepth, "front")
	fmt.Println(svc.Totals().Depth["front"])
	svc.Toggle(ctx, row.RowID, core.AxisDepth, "front")
	fmt.Println(svc.Totals().Depth["front"])
	// Output:
	// 1
	// 0
}

// Example_export demonstrates a round trip through the portable document.
func Example_export() {
	ctx := context.Background()
	src, _ := soundtracker.New("", soundtracker.WithAdapter("memory"))
	src.Add(ctx, "strings")
	src.Add(ctx, "lead")

	data, err := transfer.Marshal(transfer.Export(src.Snapshot(), time.Now()))
	if err != nil {
		log.Fatal(err)
	}

	dst, _ := soundtracker.New("", soundtracker.WithAdapter("memory"))
	imp, err := transfer.Run(ctx, dst, data, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(imp.Phase(), len(dst.Rows()))
	// Output:
	// applied 2
}
