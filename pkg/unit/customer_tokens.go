package unit

import (
	"context"
	"net/http"

	"github.com/kevin07696/unit-client/pkg/models"
)

// CustomerTokens issues customer bearer tokens and their verification codes
type CustomerTokens struct {
	resource
}

// CreateToken issues a customer bearer token
func (c *CustomerTokens) CreateToken(ctx context.Context, customerID string, attrs models.CreateCustomerTokenAttributes) (*models.CustomerToken, error) {
	if err := requireID("customerId", customerID); err != nil {
		return nil, err
	}
	req, err := models.NewCreateCustomerTokenRequest(attrs)
	if err != nil {
		return nil, err
	}
	return sendResource[models.CustomerTokenAttributes](ctx, c.resource, http.MethodPost, idPath(customerID, "token"), req)
}

// CreateTokenVerification sends a verification code to the customer over channel
func (c *CustomerTokens) CreateTokenVerification(ctx context.Context, customerID string, channel models.VerificationChannel) (*models.TokenVerification, error) {
	if err := requireID("customerId", customerID); err != nil {
		return nil, err
	}
	req, err := models.NewCreateTokenVerificationRequest(channel)
	if err != nil {
		return nil, err
	}
	return sendResource[models.TokenVerificationAttributes](ctx, c.resource, http.MethodPost, idPath(customerID, "token", "verification"), req)
}
