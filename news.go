package coinfolio

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Article is one crypto news item.
type Article struct {
	Title     string
	Source    string
	URL       string
	Published time.Time
}

// FetchNews returns the latest crypto news articles from the CryptoCompare
// public feed, optionally filtered by categories (coin symbols work, e.g.
// "BTC"). A fetch failure is returned as is; callers keep their previous
// articles.
func FetchNews(categories ...string) ([]Article, error) {
	addr := "https://min-api.cryptocompare.com/data/v2/news/?lang=EN"
	if len(categories) > 0 {
		addr += "&categories=" + url.QueryEscape(strings.Join(categories, ","))
	}

	var response struct {
		Data []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			PublishedOn int64  `json:"published_on"`
			SourceInfo  struct {
				Name string `json:"name"`
			} `json:"source_info"`
		} `json:"Data"`
	}
	// the daily cache is fine here, the feed moves slower than quotes
	if err := jwget(daily(), addr, &response); err != nil {
		return nil, fmt.Errorf("could not fetch news: %w", err)
	}

	articles := make([]Article, 0, len(response.Data))
	for _, d := range response.Data {
		articles = append(articles, Article{
			Title:     d.Title,
			Source:    d.SourceInfo.Name,
			URL:       d.URL,
			Published: time.Unix(d.PublishedOn, 0),
		})
	}
	return articles, nil
}
