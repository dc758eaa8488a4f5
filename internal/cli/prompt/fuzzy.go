package prompt

import (
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/ellemenno/loomtasks/internal/errors"
)

// FuzzyFind runs the full-screen fuzzy finder over items.
func FuzzyFind(items []string, preview func(item string) string) (int, error) {
	opts := []fuzzyfinder.Option{fuzzyfinder.WithPromptString("sdk> ")}
	if preview != nil {
		opts = append(opts, fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return preview(items[i])
		}))
	}

	idx, err := fuzzyfinder.Find(items, func(i int) string { return items[i] }, opts...)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return -1, ErrSelectionCancelled
		}
		return -1, errors.Wrap(err, "fuzzy finder failed")
	}
	return idx, nil
}
