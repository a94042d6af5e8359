package specialist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// maxCardSize bounds a descriptor read; a well-formed card is tiny.
const maxCardSize = 256 * 1024

// Discover fetches the descriptor from every base address and registers the
// reachable ones. An unreachable address or malformed descriptor is skipped
// with a logged error: one bad specialist must not block registration of the
// others, and startup continues even if every address fails.
func Discover(ctx context.Context, client *http.Client, registry *Registry, addresses []string, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, address := range addresses {
		card, err := fetchCard(ctx, client, address)
		if err != nil {
			logger.Error("failed to load agent card",
				zap.String("address", address),
				zap.Error(err))
			continue
		}

		registry.Register(card, address)
		logger.Info("registered specialist",
			zap.String("name", card.Name),
			zap.String("address", address),
			zap.String("version", card.Version))
	}
}

// fetchCard retrieves and decodes one descriptor from the well-known path.
func fetchCard(ctx context.Context, client *http.Client, address string) (AgentCard, error) {
	url := strings.TrimRight(address, "/") + WellKnownPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return AgentCard{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return AgentCard{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AgentCard{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCardSize))
	if err != nil {
		return AgentCard{}, fmt.Errorf("failed to read descriptor: %w", err)
	}

	var card AgentCard
	if err := json.Unmarshal(body, &card); err != nil {
		return AgentCard{}, fmt.Errorf("malformed descriptor: %w", err)
	}
	if card.Name == "" {
		return AgentCard{}, fmt.Errorf("descriptor missing name")
	}

	return card, nil
}
