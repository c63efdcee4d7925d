package persistencex

const (
	// DefaultLimit is the page size used when the caller does not pick one.
	DefaultLimit = 20

	// MaxLimit is the largest page size a listing accepts.
	MaxLimit = 100
)

type ListRequestBuilder struct {
	page  *int
	limit *int
}

func NewListRequestBuilder() *ListRequestBuilder {
	return &ListRequestBuilder{}
}

func (b *ListRequestBuilder) WithPage(page *int) *ListRequestBuilder {
	b.page = page
	return b
}

func (b *ListRequestBuilder) WithLimit(limit *int) *ListRequestBuilder {
	b.limit = limit
	return b
}

func (b *ListRequestBuilder) Build() ListRequest {
	rq := ListRequest{
		Page:  0,
		Limit: DefaultLimit,
	}

	if b.page != nil {
		rq.Page = *b.page
	}

	// Limit must be between 0 and MaxLimit.
	// If it's not, we'll fall back to the default.
	if b.limit != nil && *b.limit >= 0 && *b.limit <= MaxLimit {
		rq.Limit = *b.limit
	}

	return rq
}
