package domain

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Limit(t *testing.T) {
	assert.Equal(t, DefaultPageSize, PageRequest{}.Limit())
	assert.Equal(t, DefaultPageSize, PageRequest{PageSize: -5}.Limit())
	assert.Equal(t, 10, PageRequest{PageSize: 10}.Limit())
	assert.Equal(t, MaxPageSize, PageRequest{PageSize: 9999}.Limit())
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{}.Offset())
	assert.Equal(t, 0, PageRequest{PageToken: "!!not-base64!!"}.Offset())
	assert.Equal(t, 0, PageRequest{PageToken: base64.StdEncoding.EncodeToString([]byte("abc"))}.Offset())
	assert.Equal(t, 0, PageRequest{PageToken: base64.StdEncoding.EncodeToString([]byte("-7"))}.Offset())
	assert.Equal(t, 100, PageRequest{PageToken: base64.StdEncoding.EncodeToString([]byte("100"))}.Offset())
}

func TestNextPageToken(t *testing.T) {
	// Mid-result: a token pointing at the next offset.
	token := NextPageToken(0, 50, 120)
	assert.Equal(t, 50, PageRequest{PageToken: token}.Offset())

	// Last page: no token.
	assert.Empty(t, NextPageToken(100, 50, 120))
	assert.Empty(t, NextPageToken(0, 50, 50))
	assert.Empty(t, NextPageToken(0, 50, 0))
}
