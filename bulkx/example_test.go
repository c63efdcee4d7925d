package bulkx_test

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/stashkit/x/bulkx"
	"github.com/stashkit/x/utilx"
)

func ExampleExecute() {
	ctx := context.Background()

	type asset struct {
		ID     string
		Status string
	}

	items := []asset{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}}
	result := utilx.Must(bulkx.Execute(ctx, items, func(ctx context.Context, item asset) (asset, error) {
		if item.ID == "a2" {
			return asset{}, errors.New("asset is checked out")
		}
		item.Status = "archived"
		return item, nil
	}, bulkx.WithConcurrency(2)))

	ids := make([]string, 0, len(result.SuccessfulItems))
	for _, item := range result.SuccessfulItems {
		ids = append(ids, item.ID)
	}

	fmt.Println("success:", result.Success)
	fmt.Println("archived:", ids)
	fmt.Println("failed:", result.FailedItems[0].Item.ID, "-", result.FailedItems[0].Error)
	// Output:
	// success: false
	// archived: [a1 a3]
	// failed: a2 - asset is checked out
}

func ExampleExecuteBatched() {
	ctx := context.Background()

	items := []string{"a1", "a2", "a3", "a4", "a5"}
	result := utilx.Must(bulkx.ExecuteBatched(ctx, items, func(ctx context.Context, batch []string) error {
		fmt.Println("batch:", batch)
		return nil
	}, 2, bulkx.WithDelay(0)))

	fmt.Println("succeeded:", result.SuccessCount)
	// Output:
	// batch: [a1 a2]
	// batch: [a3 a4]
	// batch: [a5]
	// succeeded: 5
}
