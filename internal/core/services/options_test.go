package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

func TestOptionsService(t *testing.T) {
	ctx := context.Background()
	next := "https://paperless.local/api/tags/?page=2"
	req := newMockRequester().
		on(domain.PathTags, page(&next, map[string]any{"id": 1, "name": "Inbox"})).
		on(next, page(nil, map[string]any{"id": 2, "name": "Tax"})).
		on(domain.PathCorrespondents, page(nil, map[string]any{"id": 3, "name": "ACME"})).
		on(domain.PathDocumentTypes, `{"detail":"Invalid token."}`)
	svc := NewOptionsService(req)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Option{{Name: "Inbox", Value: 1}, {Name: "Tax", Value: 2}}, tags)

	correspondents, err := svc.Correspondents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Option{{Name: "ACME", Value: 3}}, correspondents)

	_, err = svc.DocumentTypes(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnexpectedResponse))
	assert.Contains(t, err.Error(), "document types")
}

func TestOptionsService_RequestError(t *testing.T) {
	req := newMockRequester().fail(domain.PathTags, errors.New("connection refused"))
	svc := NewOptionsService(req)

	_, err := svc.Tags(context.Background())

	require.Error(t, err)
	assert.Equal(t, "load tags: connection refused", err.Error())
}
