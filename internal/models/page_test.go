package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage_TotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 5, 5},
	}

	for _, tt := range tests {
		p := NewPage([]int{}, PageRequest{Page: 1, Limit: tt.limit}, tt.total)
		assert.Equal(t, tt.want, p.TotalPages, "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestNewPage_EmptyItemsSerializeAsArray(t *testing.T) {
	p := NewPage[CommentView](nil, PageRequest{Page: 1, Limit: 10}, 0)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"page":1,"limit":10,"totalItems":0,"totalPages":0}`, string(b))
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, PageRequest{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: 92233720368547760, Limit: 100}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: math.MaxInt, Limit: 2}.Offset())
}
