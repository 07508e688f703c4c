package sticker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mau.fi/whatsmeow"
)

type fakeDownloader struct {
	data []byte
	err  error
}

func (f *fakeDownloader) Download(ctx context.Context, msg whatsmeow.DownloadableMessage) ([]byte, error) {
	return f.data, f.err
}

func TestFetchSuccess(t *testing.T) {
	f := NewFetcher(&fakeDownloader{data: []byte("media")})

	data, err := f.Fetch(context.Background(), &MediaRef{Kind: KindImage})
	require.NoError(t, err)
	assert.Equal(t, []byte("media"), data)
}

func TestFetchStreamError(t *testing.T) {
	f := NewFetcher(&fakeDownloader{err: errors.New("connection reset")})

	_, err := f.Fetch(context.Background(), &MediaRef{Kind: KindImage})
	require.Error(t, err)
	assert.True(t, IsFetchError(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestFetchEmptyStream(t *testing.T) {
	f := NewFetcher(&fakeDownloader{})

	_, err := f.Fetch(context.Background(), &MediaRef{Kind: KindImage})
	require.Error(t, err)
	assert.True(t, IsFetchError(err))
}
