package persistencex

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/stashkit/x/errorx"
)

type mockFetcher struct {
	mock.Mock
}

func (mf *mockFetcher) Fetch(ctx context.Context, req ListRequest) (*ListResponse[string], error) {
	args := mf.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ListResponse[string]), args.Error(1)
}

type browseTestSuite struct {
	suite.Suite
	mf mockFetcher
}

// BeforeTest implements suite.BeforeTest.
func (ts *browseTestSuite) BeforeTest(suiteName string, testName string) {
	ts.mf = mockFetcher{}
}

// TearDownSubTest implements suite.TearDownSubTest.
func (ts *browseTestSuite) TearDownSubTest() {
	ts.mf.AssertExpectations(ts.T())
}

var (
	_ suite.BeforeTest      = (*browseTestSuite)(nil)
	_ suite.TearDownSubTest = (*browseTestSuite)(nil)
)

func TestBrowse(t *testing.T) {
	suite.Run(t, new(browseTestSuite))
}

func (ts *browseTestSuite) TestBrowseSuccesses() {
	data := make([]string, 100)
	for i := 0; i < 100; i++ {
		data[i] = ksuid.New().String()
	}

	ts.Run("should make a single call when all the data fits in a single request", func() {
		ctx := context.Background()
		ts.mf.On("Fetch", ctx, mock.MatchedBy(func(req ListRequest) bool {
			return req.Page == 0 && req.Limit == 100
		})).Return(&ListResponse[string]{
			Data: data,
			Meta: NewPageMeta(0, 100, 100),
		}, nil).Once()

		r, err := Browse(ts.mf.Fetch, ctx, ListRequest{
			Page:  0,
			Limit: 100,
		})
		ts.NoError(err)
		ts.Equal(data, r)
	})

	ts.Run("should make multiple calls when the data doesn't fit in a single request", func() {
		ctx := context.Background()
		ts.mf.On("Fetch", ctx, mock.MatchedBy(func(req ListRequest) bool {
			return req.Page == 0 && req.Limit == 50
		})).Return(&ListResponse[string]{
			Data: data[0:50],
			Meta: NewPageMeta(0, 50, 100),
		}, nil).Once()
		ts.mf.On("Fetch", ctx, mock.MatchedBy(func(req ListRequest) bool {
			return req.Page == 1 && req.Limit == 50
		})).Return(&ListResponse[string]{
			Data: data[50:],
			Meta: NewPageMeta(1, 50, 100),
		}, nil).Once()

		r, err := Browse(ts.mf.Fetch, ctx, ListRequest{
			Page:  0,
			Limit: 50,
		})

		ts.NoError(err)
		ts.Equal(data, r)
	})

	ts.Run("should return an empty slice when the listing is empty", func() {
		ctx := context.Background()
		ts.mf.On("Fetch", ctx, mock.Anything).Return(&ListResponse[string]{
			Data: []string{},
			Meta: NewPageMeta(0, 50, 0),
		}, nil).Once()

		r, err := Browse(ts.mf.Fetch, ctx, ListRequest{Limit: 50})
		ts.NoError(err)
		ts.Empty(r)
	})
}

func (ts *browseTestSuite) TestBrowseFailures() {
	ts.Run("should propagate fetch errors", func() {
		ctx := context.Background()
		ts.mf.On("Fetch", ctx, mock.Anything).Return(nil, errors.New("listing unavailable")).Once()

		_, err := Browse(ts.mf.Fetch, ctx, ListRequest{Limit: 50})
		ts.ErrorContains(err, "listing unavailable")
	})

	ts.Run("should stop when the listing shrinks mid browse", func() {
		ctx := context.Background()
		ts.mf.On("Fetch", ctx, mock.MatchedBy(func(req ListRequest) bool {
			return req.Page == 0
		})).Return(&ListResponse[string]{
			Data: []string{"a", "b"},
			Meta: NewPageMeta(0, 2, 10),
		}, nil).Once()
		ts.mf.On("Fetch", ctx, mock.MatchedBy(func(req ListRequest) bool {
			return req.Page == 1
		})).Return(&ListResponse[string]{
			Data: []string{},
			Meta: NewPageMeta(1, 2, 10),
		}, nil).Once()

		_, err := Browse(ts.mf.Fetch, ctx, ListRequest{Limit: 2})
		ts.Error(err)
		ts.True(errorx.IsFailedPreconditionError(err))
	})
}
