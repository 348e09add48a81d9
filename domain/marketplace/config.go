package marketplace

import (
	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
)

// MaxFeeBps is the ceiling for the marketplace fee rate
const MaxFeeBps = int64(1000)

// Config is the mutable marketplace configuration. It is owned by the
// administrator and only changes through the audited admin setters.
type Config struct {
	Admin        domain.Address `json:"admin"`
	FeeBps       int64          `json:"feeBps"`
	FeeRecipient domain.Address `json:"feeRecipient"`
	PayToken     domain.Address `json:"payToken"`
	Paused       bool           `json:"paused"`
}

// AcceptsCurrency reports whether payToken is the native currency or the
// configured alternate payment token.
func (cfg *Config) AcceptsCurrency(payToken domain.Address) bool {
	if payToken.IsEmpty() {
		return true
	}
	return !cfg.PayToken.IsEmpty() && cfg.PayToken.Equals(payToken)
}

type ConfigPatchable struct {
	FeeBps       *int64
	FeeRecipient *domain.Address
	PayToken     *domain.Address
	Paused       *bool
}

type ConfigRepo interface {
	Get(c ctx.Ctx) (*Config, error)
	Patch(c ctx.Ctx, value ConfigPatchable) error
}

type AdminUseCase interface {
	GetConfig(c ctx.Ctx) (*Config, error)
	SetFeeRate(c ctx.Ctx, caller domain.Address, bps int64) error
	SetFeeRecipient(c ctx.Ctx, caller domain.Address, recipient domain.Address) error
	SetPayToken(c ctx.Ctx, caller domain.Address, payToken domain.Address) error
	SetApproval(c ctx.Ctx, caller domain.Address, id domain.ItemId, approved bool) error
	BatchSetApproval(c ctx.Ctx, caller domain.Address, ids []domain.ItemId, approved bool) error
	Pause(c ctx.Ctx, caller domain.Address) error
	Unpause(c ctx.Ctx, caller domain.Address) error
	EmergencyDrain(c ctx.Ctx, caller domain.Address) error
}
