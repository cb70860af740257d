package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/linguoquest/linguoquest/internal/arcade"
	"github.com/linguoquest/linguoquest/internal/config"
	"github.com/linguoquest/linguoquest/internal/content"
	"github.com/linguoquest/linguoquest/internal/llm"
	"github.com/linguoquest/linguoquest/internal/store"
)

// openStore opens the ledger at cfg.DBPath or the default location.
func openStore(cfg *config.Config) (*store.Store, error) {
	path := cfg.DBPath
	if path == "" {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	} else if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// logFilePath is where the terminal UI writes its log.
func logFilePath() (string, error) {
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "linguoquest.log")
	return p, store.EnsureDir(p)
}

// errNoProvider means no LLM is configured; rounds use built-in content.
var errNoProvider = errors.New("no LLM provider configured")

// newProvider builds the LLM provider from LINGUOQUEST_LLM_* or the
// standard API key variables. Requests are recorded in rec when non-nil.
func newProvider(ctx context.Context, rec llm.Recorder, log *zap.Logger) (llm.Provider, error) {
	llmCfg, ok, err := llm.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errNoProvider
	}
	return llm.NewProvider(ctx, llmCfg, rec, log)
}

// newSupplier wires the content chain. offline reports that only the
// built-in content is available.
func newSupplier(ctx context.Context, cfg *config.Config, rec llm.Recorder, bank content.Bank, log *zap.Logger) (sup content.Supplier, offline bool) {
	provider, err := newProvider(ctx, rec, log)
	if err != nil {
		log.Warn("LLM unavailable, using built-in content", zap.Error(err))
		provider = nil
	}
	if provider != nil {
		provider = llm.WithTimeout(provider, cfg.Content.FetchTimeout)
	}

	sup = arcade.NewSupplier(provider, bank, arcade.SupplyConfig{
		Cooldown: cfg.Content.Cooldown,
		BankTTL:  cfg.Content.BankTTL,
		LLM:      content.DefaultLLMConfig(),
	}, log)
	return sup, provider == nil
}
