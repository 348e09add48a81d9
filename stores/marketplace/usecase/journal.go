package usecase

import (
	"github.com/x-xyz/goledger/base/ctx"
)

// journal collects undo steps while an operation mutates ledger state so
// a later external transfer failure can roll the whole operation back.
// Undo steps run in reverse order.
type journal struct {
	undos []func(ctx.Ctx) error
}

func (j *journal) record(undo func(ctx.Ctx) error) {
	j.undos = append(j.undos, undo)
}

func (j *journal) rollback(c ctx.Ctx) {
	for i := len(j.undos) - 1; i >= 0; i-- {
		if err := j.undos[i](c); err != nil {
			// an undo failure leaves the ledger inconsistent and needs
			// manual reconciliation
			c.WithField("err", err).Error("journal rollback step failed")
		}
	}
	j.undos = nil
}
