package api

const (
	// LedgerServiceName is the fully-qualified name of the ledger service.
	LedgerServiceName = "ourfinance.v1.LedgerService"
	// AuthServiceName is the fully-qualified name of the auth service.
	AuthServiceName = "ourfinance.v1.AuthService"
)

// Procedure paths, relative to the server root.
const (
	ListAccountsProcedure      = "/" + LedgerServiceName + "/ListAccounts"
	CreateAccountProcedure     = "/" + LedgerServiceName + "/CreateAccount"
	SetAccountActiveProcedure  = "/" + LedgerServiceName + "/SetAccountActive"
	CorrectBalanceProcedure    = "/" + LedgerServiceName + "/CorrectBalance"
	ListTransactionsProcedure  = "/" + LedgerServiceName + "/ListTransactions"
	AddTransactionProcedure    = "/" + LedgerServiceName + "/AddTransaction"
	TransferFundsProcedure     = "/" + LedgerServiceName + "/TransferFunds"
	RepayDebtProcedure         = "/" + LedgerServiceName + "/RepayDebt"
	ListAssetsProcedure        = "/" + LedgerServiceName + "/ListAssets"
	AddAssetProcedure          = "/" + LedgerServiceName + "/AddAsset"
	AddExistingAssetProcedure  = "/" + LedgerServiceName + "/AddExistingAsset"
	ListDebtsProcedure         = "/" + LedgerServiceName + "/ListDebts"
	MonthlyReportProcedure     = "/" + LedgerServiceName + "/MonthlyReport"
	DashboardProcedure         = "/" + LedgerServiceName + "/Dashboard"
	ListSettingsProcedure      = "/" + LedgerServiceName + "/ListSettings"
	UpdateDisplayNameProcedure = "/" + LedgerServiceName + "/UpdateDisplayName"

	LoginProcedure = "/" + AuthServiceName + "/Login"
)
