package service

import (
	"time"

	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/storage"
)

// Ledger bundles the services over one store.
type Ledger struct {
	Accounts     *AccountService
	Transactions *TransactionService
	Assets       *AssetService
	Settings     *SettingsService
	Analytics    *AnalyticsService
}

// NewLedger creates every service on store. Months are cut in loc.
func NewLedger(store storage.Store, sharedAdjustmentOwner models.Owner, loc *time.Location) *Ledger {
	l := &Ledger{
		Accounts:     NewAccountService(store, sharedAdjustmentOwner),
		Transactions: NewTransactionService(store),
		Assets:       NewAssetService(store),
		Settings:     NewSettingsService(store),
	}
	l.Analytics = NewAnalyticsService(l.Transactions, l.Accounts, l.Assets, l.Settings, loc)
	return l
}
