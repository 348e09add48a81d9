package marketplace

import (
	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
)

// ApprovalRepo stores the per item moderation gate. An item must be
// approved by the administrator before it can be listed or auctioned.
type ApprovalRepo interface {
	IsApproved(c ctx.Ctx, id domain.ItemId) (bool, error)
	Set(c ctx.Ctx, id domain.ItemId, approved bool) error
}
