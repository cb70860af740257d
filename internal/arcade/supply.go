package arcade

import (
	"time"

	"go.uber.org/zap"

	"github.com/linguoquest/linguoquest/internal/content"
	"github.com/linguoquest/linguoquest/internal/llm"
)

// SupplyConfig tunes the content chain.
type SupplyConfig struct {
	Cooldown time.Duration
	BankTTL  time.Duration
	LLM      content.LLMConfig
}

// NewSupplier assembles fallback → bank → cooldown → LLM. A nil provider
// serves only the built-in content. A nil bank skips banking.
func NewSupplier(provider llm.Provider, bank content.Bank, cfg SupplyConfig, log *zap.Logger, opts ...content.FallbackOption) content.Supplier {
	if provider == nil {
		return content.WithFallback(nil, log, opts...)
	}
	var live content.Supplier = content.NewLLMSupplier(provider, cfg.LLM, log)
	live = content.WithCooldown(live, cfg.Cooldown)
	if bank != nil {
		live = content.WithBank(live, bank, cfg.BankTTL, log)
	}
	return content.WithFallback(live, log, opts...)
}
