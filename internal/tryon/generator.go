package tryon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/storage"
)

const maxSourceImageBytes = 10 << 20

// StyleBlendGenerator is a placeholder engine. It fetches the source photo,
// re-encodes it as webp and stores it as the result, so the full pipeline
// runs without the hosted style-transfer model.
type StyleBlendGenerator struct {
	store  *storage.Client
	client *http.Client
}

func NewStyleBlendGenerator(store *storage.Client) *StyleBlendGenerator {
	return &StyleBlendGenerator{
		store:  store,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *StyleBlendGenerator) Generate(
	ctx context.Context,
	session *models.TryOnSession,
	hairstyle *models.Hairstyle,
) (string, map[string]any, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, session.OriginalImageURL, nil)
	if err != nil {
		return "", nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("source image fetch returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceImageBytes))
	if err != nil {
		return "", nil, err
	}

	rendered, err := storage.Thumbnail(data)
	if err != nil {
		return "", nil, fmt.Errorf("decode source image: %w", err)
	}

	key := storage.NewObjectKey("tryon-results", "result.webp")
	url, err := g.store.Upload(ctx, key, rendered, "image/webp")
	if err != nil {
		return "", nil, err
	}

	metadata := map[string]any{
		"engine":       "styleblend-v1",
		"hairstyle_id": hairstyle.ID,
		"style_pack":   hairstyle.StylePack,
	}
	return url, metadata, nil
}

// Compile-time check
var _ Generator = (*StyleBlendGenerator)(nil)
