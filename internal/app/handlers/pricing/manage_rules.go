package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"staybook/internal/app/commands"
	domainpricing "staybook/internal/domain/pricing"
)

const (
	upsertRuleKey     = "pricing.upsert_rule"
	deactivateRuleKey = "pricing.deactivate_rule"
)

// UpsertRuleCommand creates or replaces a host pricing rule.
type UpsertRuleCommand struct {
	Rule domainpricing.PricingRule
}

func (c UpsertRuleCommand) Key() string { return upsertRuleKey }

type UpsertRuleHandler struct {
	Rules domainpricing.RuleRepository
	Now   func() time.Time
}

func (h *UpsertRuleHandler) Handle(ctx context.Context, cmd UpsertRuleCommand) (domainpricing.RuleID, error) {
	rule := cmd.Rule
	if err := rule.Validate(); err != nil {
		return "", err
	}
	if rule.ID == "" {
		rule.ID = domainpricing.RuleID(uuid.NewString())
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = h.now()
	}
	if err := h.Rules.Save(ctx, rule); err != nil {
		return "", err
	}
	return rule.ID, nil
}

func (h *UpsertRuleHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// DeactivateRuleCommand switches a rule off without deleting its history.
type DeactivateRuleCommand struct {
	ListingID string
	RuleID    domainpricing.RuleID
}

func (c DeactivateRuleCommand) Key() string { return deactivateRuleKey }

type DeactivateRuleHandler struct {
	Rules domainpricing.RuleRepository
}

func (h *DeactivateRuleHandler) Handle(ctx context.Context, cmd DeactivateRuleCommand) (struct{}, error) {
	return struct{}{}, h.Rules.Deactivate(ctx, cmd.ListingID, cmd.RuleID)
}

var (
	_ commands.Handler[UpsertRuleCommand, domainpricing.RuleID] = (*UpsertRuleHandler)(nil)
	_ commands.Handler[DeactivateRuleCommand, struct{}]         = (*DeactivateRuleHandler)(nil)
)
