package statusrule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/statusrule"
)

type cacheEntry struct {
	rules    statusrule.Rules
	loadedAt time.Time
}

// RuleCache keeps company status rules in memory. Entries older than ttl are
// reloaded on access; Refresh reloads every cached company.
type RuleCache struct {
	repo statusrule.StatusRuleRepository
	ttl  time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewRuleCache(repo statusrule.StatusRuleRepository, ttl time.Duration) *RuleCache {
	return &RuleCache{
		repo:    repo,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Rules implements statusrule.Provider.
func (c *RuleCache) Rules(ctx context.Context, companyID string) (statusrule.Rules, error) {
	c.mu.RLock()
	entry, ok := c.entries[companyID]
	c.mu.RUnlock()

	if ok && c.now().Sub(entry.loadedAt) < c.ttl {
		return entry.rules, nil
	}

	return c.load(ctx, companyID)
}

func (c *RuleCache) load(ctx context.Context, companyID string) (statusrule.Rules, error) {
	rules, err := c.repo.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load status rules: %w", err)
	}

	c.mu.Lock()
	c.entries[companyID] = cacheEntry{rules: rules, loadedAt: c.now()}
	c.mu.Unlock()

	return rules, nil
}

// Refresh reloads every cached company. Companies that fail to load keep their
// previous rules until the next run.
func (c *RuleCache) Refresh(ctx context.Context) error {
	c.mu.RLock()
	companyIDs := make([]string, 0, len(c.entries))
	for id := range c.entries {
		companyIDs = append(companyIDs, id)
	}
	c.mu.RUnlock()

	failed := 0
	for _, companyID := range companyIDs {
		if _, err := c.load(ctx, companyID); err != nil {
			slog.Error("Failed to refresh status rules", "company_id", companyID, "error", err)
			failed++
		}
	}

	slog.Debug("Status rules refreshed", "companies", len(companyIDs), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("failed to refresh status rules for %d of %d companies", failed, len(companyIDs))
	}
	return nil
}
