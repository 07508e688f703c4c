package sticker

import (
	"context"
	"errors"

	"go.mau.fi/whatsmeow"
)

// Downloader is the slice of the transport client the fetcher needs.
// *whatsmeow.Client satisfies it directly.
type Downloader interface {
	Download(ctx context.Context, msg whatsmeow.DownloadableMessage) ([]byte, error)
}

// Fetcher drains an attachment fully into memory. The codec step needs a
// complete file, so there is no windowed or streaming mode.
type Fetcher struct {
	dl Downloader
}

func NewFetcher(dl Downloader) *Fetcher {
	return &Fetcher{dl: dl}
}

func (f *Fetcher) Fetch(ctx context.Context, ref *MediaRef) ([]byte, error) {
	data, err := f.dl.Download(ctx, ref.Downloadable())
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	if len(data) == 0 {
		return nil, &FetchError{Err: errors.New("empty media stream")}
	}
	return data, nil
}
