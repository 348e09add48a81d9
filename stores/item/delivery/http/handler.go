package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/delivery"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/item"
)

type handler struct {
	item item.UseCase
}

func New(e *echo.Echo, itemUseCase item.UseCase) {
	h := &handler{
		item: itemUseCase,
	}

	e.POST("/items", h.mint)
	e.GET("/items/:id", h.get)
}

func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		To               domain.Address `json:"to" validate:"required"`
		RoyaltyRecipient domain.Address `json:"royaltyRecipient"`
		RoyaltyBps       int64          `json:"royaltyBps"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	minted, err := h.item.Mint(ctx, p.To.ToLower(), p.RoyaltyRecipient.ToLower(), p.RoyaltyBps)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, minted)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Id domain.ItemId `param:"id" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	got, err := h.item.FindOne(ctx, p.Id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, got)
}
