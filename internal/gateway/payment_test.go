package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"merchshop/internal/gateway"

	"github.com/stretchr/testify/assert"
)

func sampleRequest() gateway.PaymentRequest {
	return gateway.PaymentRequest{
		Items: []gateway.CheckoutItem{
			{ProductID: "prod-1", Quantity: 1},
			{ProductID: "prod-2", Quantity: 3},
		},
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		CustomerPhone: "+44 20 7946 0000",
	}
}

func TestClient_CreatePayment_Success(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"paymentLink":"https://pay.example/abc"}}`))
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL)
	session, err := client.CreatePayment(context.Background(), sampleRequest())

	assert.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", session.PaymentLink)

	// The wire body carries identifier/quantity pairs and the customer
	// fields, nothing else.
	assert.Equal(t, "Ada Lovelace", received["customerName"])
	assert.Equal(t, "ada@example.com", received["customerEmail"])
	assert.Equal(t, "+44 20 7946 0000", received["customerPhone"])
	items := received["items"].([]interface{})
	assert.Len(t, items, 2)
	first := items[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"productId": "prod-1", "quantity": float64(1)}, first)
}

func TestClient_CreatePayment_BusinessFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Failures come wrapped in the same envelope, here with a non-2xx
		// status; the body must still be parsed as JSON.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"success":false,"error":"order total below minimum"}`))
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL)
	session, err := client.CreatePayment(context.Background(), sampleRequest())

	assert.Nil(t, session)
	var declined *gateway.DeclinedError
	assert.ErrorAs(t, err, &declined)
	assert.Equal(t, "order total below minimum", declined.Message)
}

func TestClient_CreatePayment_FailureWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL)
	_, err := client.CreatePayment(context.Background(), sampleRequest())

	var declined *gateway.DeclinedError
	assert.ErrorAs(t, err, &declined)
	assert.Contains(t, declined.Message, "500")
}

func TestClient_CreatePayment_UnreadableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway exploded</html>`))
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL)
	_, err := client.CreatePayment(context.Background(), sampleRequest())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unreadable response")
}

func TestClient_CreatePayment_EmptyPaymentLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"paymentLink":""}}`))
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL)
	_, err := client.CreatePayment(context.Background(), sampleRequest())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty payment link")
}

func TestClient_CreatePayment_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // shut down before the call so the dial fails

	client := gateway.NewClient(server.URL)
	_, err := client.CreatePayment(context.Background(), sampleRequest())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach payment gateway")
}

func TestClient_CreatePayment_CanceledContext(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := gateway.NewClient(server.URL)
	_, err := client.CreatePayment(ctx, sampleRequest())

	assert.ErrorIs(t, err, context.Canceled)
}
