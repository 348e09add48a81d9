package http

import (
	"math/big"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/delivery"
	"github.com/x-xyz/goledger/base/metrics"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/marketplace"
	"github.com/x-xyz/goledger/middleware"
)

var met metrics.Service

type handler struct {
	listing    marketplace.ListingUseCase
	auction    marketplace.AuctionUseCase
	withdrawal marketplace.WithdrawalUseCase
	admin      marketplace.AdminUseCase
	event      marketplace.EventUseCase
}

func New(
	e *echo.Echo,
	listing marketplace.ListingUseCase,
	auction marketplace.AuctionUseCase,
	withdrawal marketplace.WithdrawalUseCase,
	admin marketplace.AdminUseCase,
	event marketplace.EventUseCase) {
	met = metrics.New("marketplace")

	h := &handler{listing, auction, withdrawal, admin, event}

	gl := e.Group("/listings")
	gl.GET("", h.getListings)
	gl.POST("", h.list)
	gl.GET("/:itemId", h.getListing)
	gl.PUT("/:itemId", h.updateListing)
	gl.DELETE("/:itemId", h.cancelListing)
	gl.POST("/:itemId/buy", h.buy)

	ga := e.Group("/auctions")
	ga.GET("", h.getAuctions)
	ga.POST("", h.createAuction)
	ga.GET("/:itemId", h.getAuction)
	ga.POST("/:itemId/bids", h.placeBid)
	ga.POST("/:itemId/end", h.endAuction)

	gw := e.Group("/accounts/:address", middleware.IsValidAddress("address"))
	gw.GET("/pending", h.getPendingBalance)
	gw.POST("/withdraw", h.withdraw)

	e.GET("/events", h.getEvents)

	gm := e.Group("/admin")
	gm.GET("/config", h.getConfig)
	gm.POST("/fee", h.setFeeRate)
	gm.POST("/fee-recipient", h.setFeeRecipient)
	gm.POST("/pay-token", h.setPayToken)
	gm.POST("/approvals", h.setApprovals)
	gm.POST("/pause", h.pause)
	gm.POST("/unpause", h.unpause)
	gm.POST("/drain", h.drain)
}

// parseAmount parses a base-10 smallest unit amount
func parseAmount(value string) (*big.Int, bool) {
	if value == "" {
		return big.NewInt(0), true
	}
	return new(big.Int).SetString(value, 10)
}

func (h *handler) getListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Seller *domain.Address `query:"seller"`
		Offset int32           `query:"offset"`
		Limit  int32           `query:"limit"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []marketplace.ListingFindAllOptionsFunc{}
	if p.Seller != nil {
		opts = append(opts, marketplace.ListingWithSeller(*p.Seller))
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, marketplace.ListingWithPagination(p.Offset, p.Limit))
	}

	res, err := h.listing.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ItemId domain.ItemId `param:"itemId" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.FindOne(ctx, p.ItemId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	defer met.BumpTime("list.time").End()

	p := struct {
		ItemId   domain.ItemId  `json:"itemId" validate:"required"`
		Price    string         `json:"price" validate:"required"`
		PayToken domain.Address `json:"payToken"`
		Seller   domain.Address `json:"seller" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	price, ok := parseAmount(p.Price)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid price")
	}

	if err := h.listing.List(ctx, p.ItemId, price, p.PayToken.ToLower(), p.Seller.ToLower()); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	met.BumpCount("list", 1, "payToken", p.PayToken.ToLowerStr())

	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) updateListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ItemId domain.ItemId  `param:"itemId" validate:"required"`
		Price  string         `json:"price" validate:"required"`
		Seller domain.Address `json:"seller" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	price, ok := parseAmount(p.Price)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid price")
	}

	if err := h.listing.UpdateListing(ctx, p.ItemId, price, p.Seller.ToLower()); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) cancelListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ItemId domain.ItemId  `param:"itemId" validate:"required"`
		Caller domain.Address `json:"caller" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.listing.Cancel(ctx, p.ItemId, p.Caller.ToLower()); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	defer met.BumpTime("buy.time").End()

	p := struct {
		ItemId   domain.ItemId  `param:"itemId" validate:"required"`
		Buyer    domain.Address `json:"buyer" validate:"required"`
		Tendered string         `json:"tendered"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	tendered, ok := parseAmount(p.Tendered)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid tendered amount")
	}

	if err := h.listing.Buy(ctx, p.ItemId, p.Buyer.ToLower(), tendered); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	met.BumpCount("buy", 1)

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getAuctions(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Seller *domain.Address `query:"seller"`
		Offset int32           `query:"offset"`
		Limit  int32           `query:"limit"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []marketplace.AuctionFindAllOptionsFunc{}
	if p.Seller != nil {
		opts = append(opts, marketplace.AuctionWithSeller(*p.Seller))
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, marketplace.AuctionWithPagination(p.Offset, p.Limit))
	}

	res, err := h.auction.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ItemId domain.ItemId `param:"itemId" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.FindOne(ctx, p.ItemId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) createAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	defer met.BumpTime("createAuction.time").End()

	p := struct {
		ItemId          domain.ItemId  `json:"itemId" validate:"required"`
		ReservePrice    string         `json:"reservePrice" validate:"required"`
		DurationSeconds int64          `json:"durationSeconds" validate:"required"`
		PayToken        domain.Address `json:"payToken"`
		Seller          domain.Address `json:"seller" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	reserve, ok := parseAmount(p.ReservePrice)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid reserve price")
	}

	duration := time.Duration(p.DurationSeconds) * time.Second
	if err := h.auction.Create(ctx, p.ItemId, reserve, duration, p.PayToken.ToLower(), p.Seller.ToLower()); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	met.BumpCount("createAuction", 1)

	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	defer met.BumpTime("placeBid.time").End()

	p := struct {
		ItemId domain.ItemId  `param:"itemId" validate:"required"`
		Bidder domain.Address `json:"bidder" validate:"required"`
		Amount string         `json:"amount" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, ok := parseAmount(p.Amount)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid bid amount")
	}

	if err := h.auction.PlaceBid(ctx, p.ItemId, p.Bidder.ToLower(), amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	met.BumpCount("placeBid", 1)

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) endAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	defer met.BumpTime("endAuction.time").End()

	p := struct {
		ItemId domain.ItemId  `param:"itemId" validate:"required"`
		Caller domain.Address `json:"caller" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.auction.End(ctx, p.ItemId, p.Caller.ToLower()); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getPendingBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	account := domain.Address(c.Param("address")).ToLower()
	balance, err := h.withdrawal.BalanceOf(ctx, account)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"balance": balance.String()})
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	defer met.BumpTime("withdraw.time").End()

	account := domain.Address(c.Param("address")).ToLower()
	amount, err := h.withdrawal.Withdraw(ctx, account)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"amount": amount.String()})
}

func (h *handler) getEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Type    *marketplace.EventType `query:"type"`
		ItemId  *domain.ItemId         `query:"itemId"`
		Account *domain.Address        `query:"account"`
		Offset  int32                  `query:"offset"`
		Limit   int32                  `query:"limit"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []marketplace.EventFindAllOptionsFunc{}
	if p.Type != nil {
		opts = append(opts, marketplace.EventWithType(*p.Type))
	}
	if p.ItemId != nil {
		opts = append(opts, marketplace.EventWithItemId(*p.ItemId))
	}
	if p.Account != nil {
		opts = append(opts, marketplace.EventWithAccount(*p.Account))
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, marketplace.EventWithPagination(p.Offset, p.Limit))
	}

	res, err := h.event.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getConfig(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	cfg, err := h.admin.GetConfig(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, cfg)
}

func (h *handler) setFeeRate(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Caller domain.Address `json:"caller" validate:"required"`
		Bps    int64          `json:"bps"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.admin.SetFeeRate(ctx, p.Caller.ToLower(), p.Bps); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) setFeeRecipient(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Caller    domain.Address `json:"caller" validate:"required"`
		Recipient domain.Address `json:"recipient" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.admin.SetFeeRecipient(ctx, p.Caller.ToLower(), p.Recipient.ToLower()); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) setPayToken(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Caller   domain.Address `json:"caller" validate:"required"`
		PayToken domain.Address `json:"payToken" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.admin.SetPayToken(ctx, p.Caller.ToLower(), p.PayToken.ToLower()); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) setApprovals(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Caller   domain.Address  `json:"caller" validate:"required"`
		ItemIds  []domain.ItemId `json:"itemIds" validate:"required,min=1"`
		Approved bool            `json:"approved"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.admin.BatchSetApproval(ctx, p.Caller.ToLower(), p.ItemIds, p.Approved); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) pause(c echo.Context) error {
	return h.setPaused(c, true)
}

func (h *handler) unpause(c echo.Context) error {
	return h.setPaused(c, false)
}

func (h *handler) setPaused(c echo.Context, paused bool) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Caller domain.Address `json:"caller" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	var err error
	if paused {
		err = h.admin.Pause(ctx, p.Caller.ToLower())
	} else {
		err = h.admin.Unpause(ctx, p.Caller.ToLower())
	}
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) drain(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Caller domain.Address `json:"caller" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.admin.EmergencyDrain(ctx, p.Caller.ToLower()); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
