package repository

import (
	"sync"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain/marketplace"
)

type configRepoImpl struct {
	sync.RWMutex

	cfg marketplace.Config
}

// NewConfigRepo returns the config store seeded with the boot configuration
func NewConfigRepo(seed marketplace.Config) marketplace.ConfigRepo {
	seed.Admin = seed.Admin.ToLower()
	seed.FeeRecipient = seed.FeeRecipient.ToLower()
	seed.PayToken = seed.PayToken.ToLower()
	return &configRepoImpl{cfg: seed}
}

func (im *configRepoImpl) Get(c ctx.Ctx) (*marketplace.Config, error) {
	im.RLock()
	defer im.RUnlock()
	cp := im.cfg
	return &cp, nil
}

func (im *configRepoImpl) Patch(c ctx.Ctx, value marketplace.ConfigPatchable) error {
	im.Lock()
	defer im.Unlock()
	if value.FeeBps != nil {
		im.cfg.FeeBps = *value.FeeBps
	}
	if value.FeeRecipient != nil {
		im.cfg.FeeRecipient = value.FeeRecipient.ToLower()
	}
	if value.PayToken != nil {
		im.cfg.PayToken = value.PayToken.ToLower()
	}
	if value.Paused != nil {
		im.cfg.Paused = *value.Paused
	}
	return nil
}
