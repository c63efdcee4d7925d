package persistencex

import (
	"context"

	"github.com/stashkit/x/errorx"
)

// Browse fetches every page of a listing and returns the combined data. The
// extension uses it to collect all matching assets before running a bulk
// mutation on them.
func Browse[T any](req func(context.Context, ListRequest) (*ListResponse[T], error), ctx context.Context, opts ListRequest) ([]T, error) {
	data := []T{}

	res, err := req(ctx, opts)
	if err != nil {
		return nil, err
	}

	data = append(data, res.Data...)

	for res.Meta.Total != int64(len(data)) {
		// A listing that shrinks while we page through it would otherwise
		// keep us fetching empty pages forever.
		if len(res.Data) == 0 {
			return nil, errorx.FailedPreconditionErrorf("listing reported %d items but page %d came back empty after %d items", res.Meta.Total, opts.Page, len(data))
		}

		opts.Page++

		res, err = req(ctx, opts)
		if err != nil {
			return nil, err
		}

		data = append(data, res.Data...)
	}

	return data, nil
}
