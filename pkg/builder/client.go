package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapsoql/pkg/format"
)

// Record is one result row keyed by field name.
type Record map[string]any

// Get returns the value of field, matched case-insensitively. Fields that
// were not selected fail with ErrMissingField.
func (r Record) Get(field string) (any, error) {
	if v, ok := r[field]; ok {
		return v, nil
	}
	for k, v := range r {
		if strings.EqualFold(k, field) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingField, field)
}

// Client executes rendered queries.
type Client interface {
	Query(ctx context.Context, soql string) ([]Record, error)
}

// Fetch renders the query and runs it with the configured client.
func (b *QueryBuilder) Fetch(ctx context.Context) ([]Record, error) {
	if b.client == nil {
		return nil, ErrNoClient
	}
	soql, err := b.SOQL()
	if err != nil {
		return nil, err
	}
	b.logger.Debug("fetching", "soql", soql)
	records, err := b.client.Query(ctx, soql)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return records, nil
}

// FetchOne runs the query with LIMIT 1 and returns the only record. The
// builder's own LIMIT is left unchanged.
func (b *QueryBuilder) FetchOne(ctx context.Context) (Record, error) {
	if b.client == nil {
		return nil, ErrNoClient
	}
	q, err := b.Bound()
	if err != nil {
		return nil, err
	}
	one := 1
	q.Limit = &one
	soql := format.Render(q)

	b.logger.Debug("fetching one", "soql", soql)
	records, err := b.client.Query(ctx, soql)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoRows
	}
	return records[0], nil
}
