package marketplace

import (
	"time"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
)

type EventType string

const (
	// registry
	EventTypeMint       EventType = "mint"
	EventTypeRoyaltySet EventType = "royaltySet"

	// marketplace
	EventTypeList          EventType = "list"
	EventTypeUpdateListing EventType = "updateListing"
	EventTypeCancelListing EventType = "cancelListing"
	EventTypeSold          EventType = "sold"

	// auction
	EventTypeCreateAuction EventType = "createAuction"
	EventTypePlaceBid      EventType = "placeBid"
	EventTypeResultAuction EventType = "resultAuction"

	// withdrawal
	EventTypeWithdraw EventType = "withdraw"

	// admin
	EventTypeUpdateFee          EventType = "updateFee"
	EventTypeUpdateFeeRecipient EventType = "updateFeeRecipient"
	EventTypeUpdatePayToken     EventType = "updatePayToken"
	EventTypeApproveItem        EventType = "approveItem"
	EventTypePause              EventType = "pause"
	EventTypeUnpause            EventType = "unpause"
	EventTypeEmergencyDrain     EventType = "emergencyDrain"
)

// Event is one observable ledger action, archived for audit and indexing
// consumers. The archive is write behind; the ledger state, not the
// archive, is authoritative.
type Event struct {
	Id           string         `json:"id" bson:"id"`
	Type         EventType      `json:"type" bson:"type"`
	ItemId       *domain.ItemId `json:"itemId" bson:"itemId,omitempty"`
	Account      domain.Address `json:"account" bson:"account"`
	To           domain.Address `json:"to" bson:"to"`
	Price        string         `json:"price" bson:"price"`
	DisplayPrice string         `json:"displayPrice" bson:"displayPrice"`
	PayToken     domain.Address `json:"payToken" bson:"payToken"`
	Note         string         `json:"note,omitempty" bson:"note,omitempty"`
	Time         time.Time      `json:"time" bson:"time"`
}

type EventFindAllOptions struct {
	Type    *EventType
	ItemId  *domain.ItemId
	Account *domain.Address
	Offset  *int32
	Limit   *int32
}

type EventFindAllOptionsFunc func(*EventFindAllOptions) error

func GetEventFindAllOptions(opts ...EventFindAllOptionsFunc) (EventFindAllOptions, error) {
	res := EventFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func EventWithType(t EventType) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.Type = &t
		return nil
	}
}

func EventWithItemId(id domain.ItemId) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.ItemId = &id
		return nil
	}
}

func EventWithAccount(account domain.Address) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.Account = account.ToLowerPtr()
		return nil
	}
}

func EventWithPagination(offset, limit int32) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type EventRepo interface {
	Insert(c ctx.Ctx, value *Event) error
	FindAll(c ctx.Ctx, opts ...EventFindAllOptionsFunc) ([]*Event, error)
}

// EventUseCase records ledger events and serves the audit feed
type EventUseCase interface {
	Record(c ctx.Ctx, value Event)
	FindAll(c ctx.Ctx, opts ...EventFindAllOptionsFunc) ([]*Event, error)
}
