package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Client calls a ledger server over HTTP.
type Client struct {
	httpClient connect.HTTPClient
	baseURL    string
	token      string
}

// NewClient creates a client for the server at baseURL. A nil httpClient means http.DefaultClient.
func NewClient(httpClient connect.HTTPClient, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// WithToken returns a copy of c that sends token as its bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func call[Req, Res any](ctx context.Context, c *Client, procedure string, msg *Req) (*Res, error) {
	client := connect.NewClient[Req, Res](c.httpClient, c.baseURL+procedure, connect.WithCodec(jsonCodec{}))
	req := connect.NewRequest(msg)
	if c.token != "" {
		req.Header().Set("Authorization", "Bearer "+c.token)
	}
	res, err := client.CallUnary(ctx, req)
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

func (c *Client) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	return call[LoginRequest, LoginResponse](ctx, c, LoginProcedure, req)
}

func (c *Client) ListAccounts(ctx context.Context, req *ListAccountsRequest) (*ListAccountsResponse, error) {
	return call[ListAccountsRequest, ListAccountsResponse](ctx, c, ListAccountsProcedure, req)
}

func (c *Client) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*AccountResponse, error) {
	return call[CreateAccountRequest, AccountResponse](ctx, c, CreateAccountProcedure, req)
}

func (c *Client) SetAccountActive(ctx context.Context, req *SetAccountActiveRequest) (*AccountResponse, error) {
	return call[SetAccountActiveRequest, AccountResponse](ctx, c, SetAccountActiveProcedure, req)
}

func (c *Client) CorrectBalance(ctx context.Context, req *CorrectBalanceRequest) (*CorrectBalanceResponse, error) {
	return call[CorrectBalanceRequest, CorrectBalanceResponse](ctx, c, CorrectBalanceProcedure, req)
}

func (c *Client) ListTransactions(ctx context.Context, req *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	return call[ListTransactionsRequest, ListTransactionsResponse](ctx, c, ListTransactionsProcedure, req)
}

func (c *Client) AddTransaction(ctx context.Context, req *AddTransactionRequest) (*TransactionResponse, error) {
	return call[AddTransactionRequest, TransactionResponse](ctx, c, AddTransactionProcedure, req)
}

func (c *Client) TransferFunds(ctx context.Context, req *TransferFundsRequest) (*TransactionResponse, error) {
	return call[TransferFundsRequest, TransactionResponse](ctx, c, TransferFundsProcedure, req)
}

func (c *Client) RepayDebt(ctx context.Context, req *RepayDebtRequest) (*TransactionResponse, error) {
	return call[RepayDebtRequest, TransactionResponse](ctx, c, RepayDebtProcedure, req)
}

func (c *Client) ListAssets(ctx context.Context, req *ListAssetsRequest) (*ListAssetsResponse, error) {
	return call[ListAssetsRequest, ListAssetsResponse](ctx, c, ListAssetsProcedure, req)
}

func (c *Client) AddAsset(ctx context.Context, req *AddAssetRequest) (*AssetResponse, error) {
	return call[AddAssetRequest, AssetResponse](ctx, c, AddAssetProcedure, req)
}

func (c *Client) AddExistingAsset(ctx context.Context, req *AddAssetRequest) (*AssetResponse, error) {
	return call[AddAssetRequest, AssetResponse](ctx, c, AddExistingAssetProcedure, req)
}

func (c *Client) ListDebts(ctx context.Context, req *ListDebtsRequest) (*ListDebtsResponse, error) {
	return call[ListDebtsRequest, ListDebtsResponse](ctx, c, ListDebtsProcedure, req)
}

func (c *Client) MonthlyReport(ctx context.Context, req *MonthlyReportRequest) (*MonthlyReportResponse, error) {
	return call[MonthlyReportRequest, MonthlyReportResponse](ctx, c, MonthlyReportProcedure, req)
}

func (c *Client) Dashboard(ctx context.Context, req *DashboardRequest) (*DashboardResponse, error) {
	return call[DashboardRequest, DashboardResponse](ctx, c, DashboardProcedure, req)
}

func (c *Client) ListSettings(ctx context.Context, req *ListSettingsRequest) (*SettingsResponse, error) {
	return call[ListSettingsRequest, SettingsResponse](ctx, c, ListSettingsProcedure, req)
}

func (c *Client) UpdateDisplayName(ctx context.Context, req *UpdateDisplayNameRequest) (*SettingsResponse, error) {
	return call[UpdateDisplayNameRequest, SettingsResponse](ctx, c, UpdateDisplayNameProcedure, req)
}
