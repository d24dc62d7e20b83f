// Package spamfilter judges confirmed intake drafts by a keyword list.
package spamfilter

import (
	"context"
	"log/slog"
	"strings"

	"workshop/internal/core/domain/model/order"
)

// DefaultKeywords are used when no list is configured.
var DefaultKeywords = []string{"http://", "https://", "t.me/", "casino", "crypto", "earn money"}

// KeywordClassifier flags a draft whose description or client name contains
// any configured keyword, case-insensitively.
type KeywordClassifier struct {
	keywords []string
	logger   *slog.Logger
}

func NewKeywordClassifier(keywords []string, logger *slog.Logger) *KeywordClassifier {
	normalized := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			normalized = append(normalized, k)
		}
	}
	if len(normalized) == 0 {
		normalized = DefaultKeywords
	}
	return &KeywordClassifier{
		keywords: normalized,
		logger:   logger.With("component", "spam_filter"),
	}
}

func (c *KeywordClassifier) IsSpam(ctx context.Context, userID int64, details order.Details) bool {
	text := strings.ToLower(details.Description + "\n" + details.ClientName)
	for _, k := range c.keywords {
		if strings.Contains(text, k) {
			c.logger.InfoContext(ctx, "draft flagged as spam", "user_id", userID, "keyword", k)
			return true
		}
	}
	return false
}
