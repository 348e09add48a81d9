package main

import (
	"fmt"
	"sync"

	"github.com/labstack/echo/v4"
	emiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/go-playground/validator/v10"
	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/database/mongoclient"
	"github.com/x-xyz/goledger/base/log"
	"github.com/x-xyz/goledger/base/priceformat"
	bValidator "github.com/x-xyz/goledger/base/validator"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/marketplace"
	mmiddleware "github.com/x-xyz/goledger/middleware"
	"github.com/x-xyz/goledger/service/bank"
	"github.com/x-xyz/goledger/service/clock"
	"github.com/x-xyz/goledger/service/query"
	item_delivery "github.com/x-xyz/goledger/stores/item/delivery/http"
	item_repository "github.com/x-xyz/goledger/stores/item/repository"
	item_usecase "github.com/x-xyz/goledger/stores/item/usecase"
	marketplace_delivery "github.com/x-xyz/goledger/stores/marketplace/delivery/http"
	marketplace_repository "github.com/x-xyz/goledger/stores/marketplace/repository"
	marketplace_usecase "github.com/x-xyz/goledger/stores/marketplace/usecase"
)

func init() {
	pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		panic(err)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(viper.GetString("config"))
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(emiddleware.Recover())
	e.Use(emiddleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(emiddleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client for the event archive
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	dbName := viper.GetString("mongo.dbName")
	poolMultiplier := viper.GetFloat64("mongo.poolMultiplier")
	mongoClient := mongoclient.MustConnectMongoClient(uri, dbName, poolMultiplier)
	q := query.New(mongoClient)
	if viper.GetBool("mongo.checkIndex") {
		if err := mongoClient.EnsureIndex(context, string(domain.TableEvents), bson.D{{Key: "itemId", Value: 1}, {Key: "time", Value: -1}}); err != nil {
			context.WithField("err", err).Warn("EnsureIndex failed")
		}
	}

	// the settlement bank holds every balance the ledger moves
	ledgerAccount := domain.Address(viper.GetString("ledger.account")).ToLower()
	settlementBank := bank.New(ledgerAccount)

	systemClock := clock.New()
	formatter := priceformat.New(
		int32(viper.GetInt("currency.nativeDecimals")),
		int32(viper.GetInt("currency.tokenDecimals")),
	)

	// one lock serializes every state changing ledger operation
	opLock := &sync.Mutex{}

	registry := item_repository.NewMemoryRegistry(systemClock)
	listingRepo := marketplace_repository.NewListingRepo()
	auctionRepo := marketplace_repository.NewAuctionRepo()
	approvalRepo := marketplace_repository.NewApprovalRepo()
	withdrawalRepo := marketplace_repository.NewWithdrawalRepo()
	configRepo := marketplace_repository.NewConfigRepo(marketplace.Config{
		Admin:        domain.Address(viper.GetString("ledger.admin")).ToLower(),
		FeeBps:       viper.GetInt64("ledger.feeBps"),
		FeeRecipient: domain.Address(viper.GetString("ledger.feeRecipient")).ToLower(),
		PayToken:     domain.Address(viper.GetString("ledger.payToken")).ToLower(),
	})
	eventRepo := marketplace_repository.NewEventRepo(q)

	eventUseCase := marketplace_usecase.NewEventUseCase(&marketplace_usecase.EventUseCaseCfg{
		EventRepo: eventRepo,
		Formatter: formatter,
		Workers:   viper.GetInt("ledger.eventWorkers"),
	})
	itemUseCase := item_usecase.New(&item_usecase.ItemUseCaseCfg{
		OpLock:   opLock,
		Registry: registry,
		Clock:    systemClock,
		Event:    eventUseCase,
	})
	listingUseCase := marketplace_usecase.NewListingUseCase(&marketplace_usecase.ListingUseCaseCfg{
		OpLock:       opLock,
		ListingRepo:  listingRepo,
		AuctionRepo:  auctionRepo,
		ApprovalRepo: approvalRepo,
		ConfigRepo:   configRepo,
		Registry:     registry,
		Royalty:      registry,
		NativeRail:   settlementBank,
		TokenRail:    settlementBank,
		Clock:        systemClock,
		Event:        eventUseCase,
	})
	auctionUseCase := marketplace_usecase.NewAuctionUseCase(&marketplace_usecase.AuctionUseCaseCfg{
		OpLock:         opLock,
		ListingRepo:    listingRepo,
		AuctionRepo:    auctionRepo,
		ApprovalRepo:   approvalRepo,
		WithdrawalRepo: withdrawalRepo,
		ConfigRepo:     configRepo,
		Registry:       registry,
		Royalty:        registry,
		NativeRail:     settlementBank,
		Clock:          systemClock,
		Event:          eventUseCase,
	})
	withdrawalUseCase := marketplace_usecase.NewWithdrawalUseCase(&marketplace_usecase.WithdrawalUseCaseCfg{
		OpLock:         opLock,
		WithdrawalRepo: withdrawalRepo,
		NativeRail:     settlementBank,
		Clock:          systemClock,
		Event:          eventUseCase,
	})
	adminUseCase := marketplace_usecase.NewAdminUseCase(&marketplace_usecase.AdminUseCaseCfg{
		OpLock:         opLock,
		ConfigRepo:     configRepo,
		ApprovalRepo:   approvalRepo,
		AuctionRepo:    auctionRepo,
		WithdrawalRepo: withdrawalRepo,
		Registry:       registry,
		NativeRail:     settlementBank,
		Clock:          systemClock,
		Event:          eventUseCase,
	})

	item_delivery.New(e, itemUseCase)
	marketplace_delivery.New(e, listingUseCase, auctionUseCase, withdrawalUseCase, adminUseCase, eventUseCase)

	serverPort := viper.GetString("server.port")
	log.Log().Error(e.Start(fmt.Sprintf(":%s", serverPort)))
}
