package markup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/noted/internal/cache"
)

const (
	defaultWrapWidth = 80
	minWrapWidth     = 20
	previewCacheSize = 64
)

// Renderer draws note content for the preview pane. Results are cached per
// content and width.
type Renderer struct {
	style   string
	profile termenv.Profile
	cache   *cache.LRU[string, string]
}

func NewRenderer(style string) *Renderer {
	if style == "" {
		style = "dracula"
	}
	return &Renderer{
		style:   style,
		profile: termenv.ANSI256,
		cache:   cache.New[string, string](previewCacheSize),
	}
}

func (r *Renderer) Render(content string, width int) string {
	if width < minWrapWidth {
		width = defaultWrapWidth
	}

	sum := sha256.Sum256([]byte(content))
	key := fmt.Sprintf("%d:%s", width, hex.EncodeToString(sum[:]))
	if out, ok := r.cache.Get(key); ok {
		return out
	}

	text := PlainText(content)
	if text == "" {
		return ""
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(r.profile),
	)
	if err != nil {
		return text
	}

	out, err := tr.Render(text)
	if err != nil {
		return text
	}

	r.cache.Put(key, out)
	return out
}
