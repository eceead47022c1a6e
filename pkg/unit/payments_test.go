package unit

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/kevin07696/unit-client/pkg/encoding"
	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
	"github.com/kevin07696/unit-client/pkg/models"
	"github.com/kevin07696/unit-client/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createdACHPayment = `{"data":{
	"id": "pay_1",
	"type": "achPayment",
	"attributes": {
		"createdAt": "2024-03-01T12:30:00Z",
		"status": "Pending",
		"direction": "Credit",
		"description": "Payroll",
		"amount": "500",
		"counterparty": {"routingNumber": "812345673", "accountNumber": "12345", "accountType": "Checking", "name": "Jane Doe"}
	},
	"relationships": {
		"account": {"data": {"type": "depositAccount", "id": "555"}},
		"customer": {"data": {"type": "individualCustomer", "id": "99"}},
		"counterparty": {"data": {"type": "counterparty", "id": "77"}}
	}
}}`

const createdBookPayment = `{"data":{
	"id": "pay_2",
	"type": "bookPayment",
	"attributes": {
		"createdAt": "2024-03-01T12:30:00Z",
		"status": "Sent",
		"direction": "Debit",
		"description": "Funding",
		"amount": "10000",
		"tags": {"batch": "7"}
	},
	"relationships": {
		"account": {"data": {"type": "depositAccount", "id": "555"}},
		"customer": {"data": {"type": "individualCustomer", "id": "99"}},
		"counterpartyAccount": {"data": {"type": "depositAccount", "id": "556"}},
		"counterpartyCustomer": {"data": {"type": "individualCustomer", "id": "100"}},
		"transaction": {"data": {"type": "transaction", "id": "t1"}}
	}
}}`

func setupPaymentsTest(t *testing.T, handler http.HandlerFunc) (*Client, *mocks.MockLogger, *prometheus.Registry) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := mocks.NewMockLogger()
	reg := prometheus.NewRegistry()
	client, err := NewClient(ClientConfig{
		Token:             "test-token",
		BaseURL:           server.URL,
		HTTPClient:        server.Client(),
		Logger:            logger,
		MetricsRegisterer: reg,
		RateLimit:         1000,
		RateBurst:         10,
	})
	require.NoError(t, err)
	return client, logger, reg
}

func verifiedRequest(t *testing.T) models.CreatePaymentRequest {
	req, err := models.NewCreatePaymentRequest(models.PaymentFields{
		Type:                models.PaymentTypeACH,
		Amount:              500,
		Direction:           models.DirectionCredit,
		Description:         "Payroll",
		CounterpartyName:    "Jane Doe",
		PlaidProcessorToken: "tok_abc",
	})
	require.NoError(t, err)
	return req
}

func TestPayments_Create_Verified(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var doc struct {
			Data map[string]interface{} `json:"data"`
		}
		assert.NoError(t, encoding.Unmarshal(body, &doc))
		assert.Equal(t, "achPayment", doc.Data["type"])
		attrs, _ := doc.Data["attributes"].(map[string]interface{})
		assert.Equal(t, "tok_abc", attrs["plaidProcessorToken"])

		w.Header().Set("Content-Type", "application/vnd.api+json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(createdACHPayment))
	}
	client, logger, reg := setupPaymentsTest(t, handler)

	payment, err := client.Payments.Create(context.Background(), verifiedRequest(t))
	require.NoError(t, err)

	ach, ok := payment.(*models.ACHPayment)
	require.True(t, ok, "expected *models.ACHPayment, got %T", payment)
	assert.Equal(t, "pay_1", ach.ID)
	assert.Equal(t, models.PaymentStatusPending, ach.Attributes.Status)
	assert.Empty(t, logger.WarnCalls)

	created, err := testutil.GatherAndCount(reg, "unit_payments_created_total")
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	requests, err := testutil.GatherAndCount(reg, "unit_api_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
}

func TestPayments_Create_BookWithoutIdempotencyKeyWarns(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(createdBookPayment))
	}
	client, logger, _ := setupPaymentsTest(t, handler)

	req, err := models.NewCreatePaymentRequest(models.PaymentFields{
		Type:                models.PaymentTypeBook,
		Amount:              10000,
		Description:         "Funding",
		Account:             relationship("depositAccount", "555"),
		CounterpartyAccount: relationship("depositAccount", "556"),
	})
	require.NoError(t, err)

	payment, err := client.Payments.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentTypeBook, payment.PaymentType())
	require.Len(t, logger.WarnCalls, 1)

	accountID, ok := logger.WarnCalls[0].Field("account_id")
	require.True(t, ok)
	assert.Equal(t, "555", accountID)
}

func TestPayments_Create_InvalidRequestNeverReachesAPI(t *testing.T) {
	var calls int
	var mu sync.Mutex
	handler := func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
	}
	client, _, _ := setupPaymentsTest(t, handler)

	// built directly, bypassing the constructor: inline without idempotency key
	req := &models.CreateInlinePaymentRequest{
		Amount:       100,
		Direction:    models.DirectionDebit,
		Counterparty: models.NewCounterparty("812345673", "12345", models.AccountTypeChecking, "Jane"),
		Description:  "Rent",
		Account:      models.NewRelationship("depositAccount", "555"),
	}

	_, err := client.Payments.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.False(t, IsError(err))

	_, err = client.Payments.Create(context.Background(), nil)
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.Equal(t, 0, calls)
}

func TestPayments_Create_APIError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":[{"title":"Insufficient funds","status":"422"}]}`))
	}
	client, _, _ := setupPaymentsTest(t, handler)

	payment, err := client.Payments.Create(context.Background(), verifiedRequest(t))
	require.Error(t, err)
	assert.Nil(t, payment)
	assert.True(t, IsError(err))
	assert.Contains(t, err.Error(), "Insufficient funds")
}

func TestPayments_Get(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/payments/pay_2", r.URL.Path)
		assert.Equal(t, "customer", r.URL.Query().Get("include"))
		w.Write([]byte(createdBookPayment))
	}
	client, _, _ := setupPaymentsTest(t, handler)

	resp, err := client.Payments.Get(context.Background(), "pay_2", "customer")
	require.NoError(t, err)

	book, ok := resp.Data.(*models.BookPayment)
	require.True(t, ok)
	assert.Equal(t, "7", book.Attributes.Tags["batch"])

	_, err = client.Payments.Get(context.Background(), "")
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestPayments_List(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "555", r.URL.Query().Get("filter[accountId]"))
		assert.Equal(t, "2", r.URL.Query().Get("page[limit]"))
		w.Write([]byte(`{"data":[` + innerData(createdACHPayment) + `,` + innerData(createdBookPayment) + `],"meta":{"pagination":{"total":2,"limit":2,"offset":0}}}`))
	}
	client, _, _ := setupPaymentsTest(t, handler)

	list, err := client.Payments.List(context.Background(), models.ListParams{AccountID: "555", Limit: 2})
	require.NoError(t, err)
	require.Len(t, list.Data, 2)

	var ach, book int
	for _, p := range list.Data {
		err := models.VisitPayment(p,
			func(*models.ACHPayment) error { ach++; return nil },
			func(*models.BookPayment) error { book++; return nil },
		)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, ach)
	assert.Equal(t, 1, book)
}

func TestPayments_Update(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/payments/pay_2", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"data":{"type":"bookPayment","attributes":{"tags":{"batch":"7"}}}}`, string(body))
		w.Write([]byte(createdBookPayment))
	}
	client, _, _ := setupPaymentsTest(t, handler)

	payment, err := client.Payments.Update(context.Background(), "pay_2", models.NewPatchPaymentRequest(models.PaymentTypeBook, models.Tags{"batch": "7"}))
	require.NoError(t, err)
	assert.Equal(t, "pay_2", payment.PaymentID())
}

func TestPayments_Update_NonTagAttributeRejectedLocally(t *testing.T) {
	backend := mocks.NewMockBackend(nil)
	client, err := NewClient(ClientConfig{Token: "test-token", Backend: backend})
	require.NoError(t, err)

	req := models.NewPatchPaymentRequest(models.PaymentTypeACH, models.Tags{"a": "b"})
	req.Attributes["status"] = "Canceled"

	_, err = client.Payments.Update(context.Background(), "pay_1", req)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.Equal(t, 0, backend.CallCount())
}

func TestPayments_EmptyResponseBody(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
	client, _, reg := setupPaymentsTest(t, handler)
	ctx := context.Background()

	requireEmptyResponse := func(t *testing.T, err error) {
		t.Helper()
		var reqErr *pkgerrors.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, pkgerrors.CategoryDecodeError, reqErr.Category)
		assert.False(t, IsError(err))
	}

	payment, err := client.Payments.Create(ctx, verifiedRequest(t))
	requireEmptyResponse(t, err)
	assert.Nil(t, payment)

	payment, err = client.Payments.Update(ctx, "pay_2", models.NewPatchPaymentRequest(models.PaymentTypeBook, models.Tags{"batch": "7"}))
	requireEmptyResponse(t, err)
	assert.Nil(t, payment)

	resp, err := client.Payments.Get(ctx, "pay_2")
	requireEmptyResponse(t, err)
	assert.Nil(t, resp)

	created, err := testutil.GatherAndCount(reg, "unit_payments_created_total")
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestPayments_NilTypedRequests(t *testing.T) {
	backend := mocks.NewMockBackend(nil)
	client, err := NewClient(ClientConfig{Token: "test-token", Backend: backend})
	require.NoError(t, err)
	ctx := context.Background()

	var (
		book     *models.CreateBookPaymentRequest
		inline   *models.CreateInlinePaymentRequest
		linked   *models.CreateLinkedPaymentRequest
		verified *models.CreateVerifiedPaymentRequest
	)
	for name, req := range map[string]models.CreatePaymentRequest{
		"book":     book,
		"inline":   inline,
		"linked":   linked,
		"verified": verified,
	} {
		t.Run(name, func(t *testing.T) {
			payment, err := client.Payments.Create(ctx, req)
			assert.Nil(t, payment)
			assert.True(t, pkgerrors.IsValidationError(err), "got %v", err)
		})
	}

	var patch *models.PatchPaymentRequest
	_, err = client.Payments.Update(ctx, "pay_1", patch)
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.Equal(t, 0, backend.CallCount())
}

func TestPayments_IDIsEscaped(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/pay%2F..%2Fcustomers%3Fx=1", r.URL.EscapedPath())
		assert.Empty(t, r.URL.RawQuery)
		w.Write([]byte(createdBookPayment))
	}
	client, _, _ := setupPaymentsTest(t, handler)

	_, err := client.Payments.Get(context.Background(), "pay/../customers?x=1")
	require.NoError(t, err)

	_, err = client.Payments.Get(context.Background(), "..")
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestPayments_ConcurrentCreates(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(createdACHPayment))
	}
	client, _, _ := setupPaymentsTest(t, handler)
	req := verifiedRequest(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Payments.Create(context.Background(), req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func relationship(resourceType, id string) *models.Relationship {
	r := models.NewRelationship(resourceType, id)
	return &r
}

// innerData strips the {"data": ...} envelope from a single-resource document
func innerData(doc string) string {
	var envelope struct {
		Data encoding.RawMessage `json:"data"`
	}
	if err := encoding.Unmarshal([]byte(doc), &envelope); err != nil {
		panic(err)
	}
	return string(envelope.Data)
}
