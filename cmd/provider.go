package cmd

import (
	"time"

	"lending/core"
	accountservice "lending/service/account"
	bankservice "lending/service/bank"
	lendingservice "lending/service/lending"
	oracleservice "lending/service/oracle"
	walletservice "lending/service/wallet"
	"lending/store/bank"
	"lending/store/oracle"
	"lending/store/position"
	"lending/store/price"
	"lending/store/transfer"
	"lending/store/user"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func provideBankStore(db *db.DB) core.IBankStore {
	return bank.Cache(bank.New(db), time.Minute)
}

func providePositionStore(db *db.DB) core.IPositionStore {
	return position.New(db)
}

func provideUserStore(db *db.DB) core.IUserStore {
	return user.New(db)
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return price.New(db)
}

func provideTransferStore(db *db.DB) core.ITransferStore {
	return transfer.New(db)
}

func provideOracleSignerStore(db *db.DB) core.OracleSignerStore {
	return oracle.NewSignerStore(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// ------------------service------------------------------------

func provideBankService(bankStore core.IBankStore) core.IBankService {
	return bankservice.New(bankStore)
}

func providePriceService(db *db.DB) core.IPriceOracleService {
	return oracleservice.New(provideConfig(), providePriceStore(db), provideOracleSignerStore(db))
}

func provideAccountService(db *db.DB, bankStore core.IBankStore) core.IAccountService {
	return accountservice.New(bankStore, providePositionStore(db), providePriceService(db))
}

func provideWalletService() core.WalletService {
	return walletservice.New()
}

// provideLendingService takes the bank store so every consumer in a
// process shares one cache and sees invalidations from writes
func provideLendingService(db *db.DB, bankStore core.IBankStore) core.ILendingService {
	return lendingservice.New(
		db,
		provideConfig(),
		bankStore,
		providePositionStore(db),
		provideUserStore(db),
		provideTransferStore(db),
		provideAccountService(db, bankStore),
	)
}
