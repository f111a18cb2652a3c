package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Fully-qualified service names, laid out the way protoc-gen-connect-go names them.
const (
	ListServiceName        = "kidoikoiaki.v1.ListService"
	ParticipantServiceName = "kidoikoiaki.v1.ParticipantService"
	ExpenseServiceName     = "kidoikoiaki.v1.ExpenseService"
	BalanceServiceName     = "kidoikoiaki.v1.BalanceService"
)

// Procedure paths.
const (
	ListServiceCreateListProcedure = "/" + ListServiceName + "/CreateList"
	ListServiceGetListProcedure    = "/" + ListServiceName + "/GetList"
	ListServiceListListsProcedure  = "/" + ListServiceName + "/ListLists"
	ListServiceUpdateListProcedure = "/" + ListServiceName + "/UpdateList"
	ListServiceDeleteListProcedure = "/" + ListServiceName + "/DeleteList"

	ParticipantServiceAddParticipantProcedure    = "/" + ParticipantServiceName + "/AddParticipant"
	ParticipantServiceGetParticipantProcedure    = "/" + ParticipantServiceName + "/GetParticipant"
	ParticipantServiceListParticipantsProcedure  = "/" + ParticipantServiceName + "/ListParticipants"
	ParticipantServiceRenameParticipantProcedure = "/" + ParticipantServiceName + "/RenameParticipant"
	ParticipantServiceRemoveParticipantProcedure = "/" + ParticipantServiceName + "/RemoveParticipant"

	ExpenseServiceCreateExpenseProcedure = "/" + ExpenseServiceName + "/CreateExpense"
	ExpenseServiceGetExpenseProcedure    = "/" + ExpenseServiceName + "/GetExpense"
	ExpenseServiceListExpensesProcedure  = "/" + ExpenseServiceName + "/ListExpenses"
	ExpenseServiceUpdateExpenseProcedure = "/" + ExpenseServiceName + "/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure = "/" + ExpenseServiceName + "/DeleteExpense"

	BalanceServiceGetBalancesProcedure   = "/" + BalanceServiceName + "/GetBalances"
	BalanceServiceRecordPaymentProcedure = "/" + BalanceServiceName + "/RecordPayment"
)

// routes dispatches on the exact procedure path, as generated Connect handlers do.
type routes map[string]http.Handler

func (rs routes) mount(service string) (string, http.Handler) {
	return "/" + service + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := rs[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithJSON()}, opts...)
}

// NewListServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewListServiceHandler(svc *ListService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return routes{
		ListServiceCreateListProcedure: connect.NewUnaryHandler(ListServiceCreateListProcedure, svc.CreateList, opts...),
		ListServiceGetListProcedure:    connect.NewUnaryHandler(ListServiceGetListProcedure, svc.GetList, opts...),
		ListServiceListListsProcedure:  connect.NewUnaryHandler(ListServiceListListsProcedure, svc.ListLists, opts...),
		ListServiceUpdateListProcedure: connect.NewUnaryHandler(ListServiceUpdateListProcedure, svc.UpdateList, opts...),
		ListServiceDeleteListProcedure: connect.NewUnaryHandler(ListServiceDeleteListProcedure, svc.DeleteList, opts...),
	}.mount(ListServiceName)
}

// NewParticipantServiceHandler builds an HTTP handler from the service implementation.
func NewParticipantServiceHandler(svc *ParticipantService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return routes{
		ParticipantServiceAddParticipantProcedure:    connect.NewUnaryHandler(ParticipantServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		ParticipantServiceGetParticipantProcedure:    connect.NewUnaryHandler(ParticipantServiceGetParticipantProcedure, svc.GetParticipant, opts...),
		ParticipantServiceListParticipantsProcedure:  connect.NewUnaryHandler(ParticipantServiceListParticipantsProcedure, svc.ListParticipants, opts...),
		ParticipantServiceRenameParticipantProcedure: connect.NewUnaryHandler(ParticipantServiceRenameParticipantProcedure, svc.RenameParticipant, opts...),
		ParticipantServiceRemoveParticipantProcedure: connect.NewUnaryHandler(ParticipantServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
	}.mount(ParticipantServiceName)
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation.
func NewExpenseServiceHandler(svc *ExpenseService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return routes{
		ExpenseServiceCreateExpenseProcedure: connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		ExpenseServiceGetExpenseProcedure:    connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...),
		ExpenseServiceListExpensesProcedure:  connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...),
		ExpenseServiceUpdateExpenseProcedure: connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...),
		ExpenseServiceDeleteExpenseProcedure: connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
	}.mount(ExpenseServiceName)
}

// NewBalanceServiceHandler builds an HTTP handler from the service implementation.
func NewBalanceServiceHandler(svc *BalanceService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return routes{
		BalanceServiceGetBalancesProcedure:   connect.NewUnaryHandler(BalanceServiceGetBalancesProcedure, svc.GetBalances, opts...),
		BalanceServiceRecordPaymentProcedure: connect.NewUnaryHandler(BalanceServiceRecordPaymentProcedure, svc.RecordPayment, opts...),
	}.mount(BalanceServiceName)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{WithJSON()}, opts...)
}

// ListServiceClient is a client for the kidoikoiaki.v1.ListService service.
type ListServiceClient struct {
	createList *connect.Client[CreateListRequest, CreateListResponse]
	getList    *connect.Client[GetListRequest, GetListResponse]
	listLists  *connect.Client[ListListsRequest, ListListsResponse]
	updateList *connect.Client[UpdateListRequest, UpdateListResponse]
	deleteList *connect.Client[DeleteListRequest, DeleteListResponse]
}

// NewListServiceClient constructs a client for the kidoikoiaki.v1.ListService service.
func NewListServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ListServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ListServiceClient{
		createList: connect.NewClient[CreateListRequest, CreateListResponse](httpClient, baseURL+ListServiceCreateListProcedure, opts...),
		getList:    connect.NewClient[GetListRequest, GetListResponse](httpClient, baseURL+ListServiceGetListProcedure, opts...),
		listLists:  connect.NewClient[ListListsRequest, ListListsResponse](httpClient, baseURL+ListServiceListListsProcedure, opts...),
		updateList: connect.NewClient[UpdateListRequest, UpdateListResponse](httpClient, baseURL+ListServiceUpdateListProcedure, opts...),
		deleteList: connect.NewClient[DeleteListRequest, DeleteListResponse](httpClient, baseURL+ListServiceDeleteListProcedure, opts...),
	}
}

func (c *ListServiceClient) CreateList(ctx context.Context, req *connect.Request[CreateListRequest]) (*connect.Response[CreateListResponse], error) {
	return c.createList.CallUnary(ctx, req)
}

func (c *ListServiceClient) GetList(ctx context.Context, req *connect.Request[GetListRequest]) (*connect.Response[GetListResponse], error) {
	return c.getList.CallUnary(ctx, req)
}

func (c *ListServiceClient) ListLists(ctx context.Context, req *connect.Request[ListListsRequest]) (*connect.Response[ListListsResponse], error) {
	return c.listLists.CallUnary(ctx, req)
}

func (c *ListServiceClient) UpdateList(ctx context.Context, req *connect.Request[UpdateListRequest]) (*connect.Response[UpdateListResponse], error) {
	return c.updateList.CallUnary(ctx, req)
}

func (c *ListServiceClient) DeleteList(ctx context.Context, req *connect.Request[DeleteListRequest]) (*connect.Response[DeleteListResponse], error) {
	return c.deleteList.CallUnary(ctx, req)
}

// ParticipantServiceClient is a client for the kidoikoiaki.v1.ParticipantService service.
type ParticipantServiceClient struct {
	addParticipant    *connect.Client[AddParticipantRequest, AddParticipantResponse]
	getParticipant    *connect.Client[GetParticipantRequest, GetParticipantResponse]
	listParticipants  *connect.Client[ListParticipantsRequest, ListParticipantsResponse]
	renameParticipant *connect.Client[RenameParticipantRequest, RenameParticipantResponse]
	removeParticipant *connect.Client[RemoveParticipantRequest, RemoveParticipantResponse]
}

// NewParticipantServiceClient constructs a client for the kidoikoiaki.v1.ParticipantService service.
func NewParticipantServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ParticipantServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ParticipantServiceClient{
		addParticipant:    connect.NewClient[AddParticipantRequest, AddParticipantResponse](httpClient, baseURL+ParticipantServiceAddParticipantProcedure, opts...),
		getParticipant:    connect.NewClient[GetParticipantRequest, GetParticipantResponse](httpClient, baseURL+ParticipantServiceGetParticipantProcedure, opts...),
		listParticipants:  connect.NewClient[ListParticipantsRequest, ListParticipantsResponse](httpClient, baseURL+ParticipantServiceListParticipantsProcedure, opts...),
		renameParticipant: connect.NewClient[RenameParticipantRequest, RenameParticipantResponse](httpClient, baseURL+ParticipantServiceRenameParticipantProcedure, opts...),
		removeParticipant: connect.NewClient[RemoveParticipantRequest, RemoveParticipantResponse](httpClient, baseURL+ParticipantServiceRemoveParticipantProcedure, opts...),
	}
}

func (c *ParticipantServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *ParticipantServiceClient) GetParticipant(ctx context.Context, req *connect.Request[GetParticipantRequest]) (*connect.Response[GetParticipantResponse], error) {
	return c.getParticipant.CallUnary(ctx, req)
}

func (c *ParticipantServiceClient) ListParticipants(ctx context.Context, req *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

func (c *ParticipantServiceClient) RenameParticipant(ctx context.Context, req *connect.Request[RenameParticipantRequest]) (*connect.Response[RenameParticipantResponse], error) {
	return c.renameParticipant.CallUnary(ctx, req)
}

func (c *ParticipantServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

// ExpenseServiceClient is a client for the kidoikoiaki.v1.ExpenseService service.
type ExpenseServiceClient struct {
	createExpense *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	getExpense    *connect.Client[GetExpenseRequest, GetExpenseResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	updateExpense *connect.Client[UpdateExpenseRequest, UpdateExpenseResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
}

// NewExpenseServiceClient constructs a client for the kidoikoiaki.v1.ExpenseService service.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ExpenseServiceClient{
		createExpense: connect.NewClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:    connect.NewClient[GetExpenseRequest, GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listExpenses:  connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		updateExpense: connect.NewClient[UpdateExpenseRequest, UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense: connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

// BalanceServiceClient is a client for the kidoikoiaki.v1.BalanceService service.
type BalanceServiceClient struct {
	getBalances   *connect.Client[GetBalancesRequest, GetBalancesResponse]
	recordPayment *connect.Client[RecordPaymentRequest, RecordPaymentResponse]
}

// NewBalanceServiceClient constructs a client for the kidoikoiaki.v1.BalanceService service.
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BalanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &BalanceServiceClient{
		getBalances:   connect.NewClient[GetBalancesRequest, GetBalancesResponse](httpClient, baseURL+BalanceServiceGetBalancesProcedure, opts...),
		recordPayment: connect.NewClient[RecordPaymentRequest, RecordPaymentResponse](httpClient, baseURL+BalanceServiceRecordPaymentProcedure, opts...),
	}
}

func (c *BalanceServiceClient) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *BalanceServiceClient) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}
