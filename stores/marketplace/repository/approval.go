package repository

import (
	"sync"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/marketplace"
)

type approvalRepoImpl struct {
	sync.RWMutex

	approved map[domain.ItemId]bool
}

// NewApprovalRepo returns the in-memory moderation gate store
func NewApprovalRepo() marketplace.ApprovalRepo {
	return &approvalRepoImpl{approved: map[domain.ItemId]bool{}}
}

func (im *approvalRepoImpl) IsApproved(c ctx.Ctx, id domain.ItemId) (bool, error) {
	im.RLock()
	defer im.RUnlock()
	return im.approved[id], nil
}

func (im *approvalRepoImpl) Set(c ctx.Ctx, id domain.ItemId, approved bool) error {
	im.Lock()
	defer im.Unlock()
	if approved {
		im.approved[id] = true
	} else {
		delete(im.approved, id)
	}
	return nil
}
