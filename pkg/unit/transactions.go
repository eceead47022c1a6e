package unit

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kevin07696/unit-client/pkg/models"
)

// Transactions reads and tags account transactions. Single transactions live under
// their account: /accounts/{accountId}/transactions/{id}.
type Transactions struct {
	resource
}

func (t *Transactions) path(accountID, id string) string {
	return "/accounts/" + url.PathEscape(accountID) + "/transactions" + idPath(id)
}

// Get fetches a transaction of an account
func (t *Transactions) Get(ctx context.Context, accountID, id string) (*models.Transaction, error) {
	if err := requireID("accountId", accountID); err != nil {
		return nil, err
	}
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return getResource[models.TransactionAttributes](ctx, t.unrooted(), t.path(accountID, id), nil)
}

// List returns a page of transactions; filter by account with params.AccountID
func (t *Transactions) List(ctx context.Context, params models.ListParams) (*models.ListResponse[models.Transaction], error) {
	return listResources[models.TransactionAttributes](ctx, t.resource, "", params.Values())
}

// Update replaces the tags of a transaction
func (t *Transactions) Update(ctx context.Context, accountID, id string, tags models.Tags) (*models.Transaction, error) {
	if err := requireID("accountId", accountID); err != nil {
		return nil, err
	}
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return sendResource[models.TransactionAttributes](ctx, t.unrooted(), http.MethodPatch, t.path(accountID, id), models.NewPatchTransactionRequest(tags))
}

func (t *Transactions) unrooted() resource {
	return t.resource.at("")
}
