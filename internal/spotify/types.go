package spotify

import "github.com/agentstation/setlist/pkg/tracks"

// playlistPage is one page of GET /playlists/{id}/tracks.
type playlistPage struct {
	Items []playlistEntry `json:"items"`
	Next  *string         `json:"next"`
	Total int             `json:"total"`
}

type playlistEntry struct {
	Track *track `json:"track"`
}

type track struct {
	Name         string       `json:"name"`
	Artists      []artist     `json:"artists"`
	ExternalURLs externalURLs `json:"external_urls"`
}

type artist struct {
	Name string `json:"name"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// searchResult is the response of GET /search?type=track.
type searchResult struct {
	Tracks struct {
		Items []track `json:"items"`
	} `json:"tracks"`
}

func (t *track) item() tracks.Item {
	contributors := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		contributors = append(contributors, a.Name)
	}
	return tracks.Item{
		Title:        t.Name,
		Contributors: contributors,
		Link:         t.ExternalURLs.Spotify,
	}
}
