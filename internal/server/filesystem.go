package server

import (
	"net/url"
	"path"
	"strings"

	"github.com/dustin/go-humanize"

	"webstore/internal/storage"
)

func buildEntryViews(dirRelative string, entries []storage.Entry) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, entry := range entries {
		relative := path.Join(dirRelative, entry.Name)
		view := entryView{
			Name:  entry.Name,
			Type:  string(entry.Type),
			IsDir: entry.Type == storage.EntryDirectory,
			Href:  buildHref("/", relative),
		}

		if !view.IsDir {
			view.DownloadHref = buildHref("/download/", relative)
			view.Size = humanize.Bytes(uint64(entry.Size))
		}

		views = append(views, view)
	}

	return views
}

func buildHref(prefix, relative string) string {
	clean := strings.TrimPrefix(relative, "/")
	if clean == "" {
		return prefix
	}

	parts := strings.Split(clean, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}

	return prefix + strings.Join(parts, "/")
}
