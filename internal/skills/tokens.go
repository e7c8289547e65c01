package skills

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"openskills/internal/logger"
)

const tokenEncoding = "cl100k_base"

// loadEncoding fetches the BPE ranks on first use; tiktoken-go caches them
// under TIKTOKEN_CACHE_DIR.
var loadEncoding = func() (*tiktoken.Tiktoken, error) {
	return tiktoken.GetEncoding(tokenEncoding)
}

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
)

func encoding() *tiktoken.Tiktoken {
	encOnce.Do(func() {
		e, err := loadEncoding()
		if err != nil {
			logger.L.WithError(err).Debug("token encoding unavailable, estimating by length")
			return
		}
		enc = e
	})
	return enc
}

// EstimateTokens counts the cl100k_base tokens in text, or approximates
// them as one per four bytes when the encoding cannot be loaded.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	if e := encoding(); e != nil {
		return len(e.EncodeOrdinary(text))
	}
	return approxTokens(text)
}

func approxTokens(text string) int {
	return (len(text) + 3) / 4
}
