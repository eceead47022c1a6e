package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kevin07696/unit-client/pkg/encoding"
	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
	"github.com/kevin07696/unit-client/pkg/models"
	"github.com/kevin07696/unit-client/pkg/unit"
)

// CLI runs one action against the Unit API and prints the result as JSON
type CLI struct {
	ctx    context.Context
	client *unit.Client
	out    io.Writer
	in     io.Reader
}

// Options carries the flag values the actions read
type Options struct {
	ID        string
	AccountID string
	Customer  string
	Type      string
	Tags      string
	JSONFile  string
	Signature string
	Secret    string
	Limit     int
	Offset    int
	Include   string
}

func (cli *CLI) run(action string, opts Options) error {
	switch action {
	case "get-payment":
		return cli.getPayment(opts)
	case "list-payments":
		return cli.listPayments(opts)
	case "create-payment":
		return cli.createPayment(opts)
	case "tag-payment":
		return cli.tagPayment(opts)
	case "get-account":
		return cli.getAccount(opts)
	case "list-accounts":
		return cli.listAccounts(opts)
	case "list-transactions":
		return cli.listTransactions(opts)
	case "get-customer":
		return cli.getCustomer(opts)
	case "list-events":
		return cli.listEvents(opts)
	case "verify-webhook":
		return cli.verifyWebhook(opts)
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

func (cli *CLI) listParams(opts Options) models.ListParams {
	params := models.ListParams{
		Limit:      opts.Limit,
		Offset:     opts.Offset,
		AccountID:  opts.AccountID,
		CustomerID: opts.Customer,
	}
	if opts.Include != "" {
		params.Include = strings.Split(opts.Include, ",")
	}
	return params
}

func (cli *CLI) getPayment(opts Options) error {
	var include []string
	if opts.Include != "" {
		include = strings.Split(opts.Include, ",")
	}
	resp, err := cli.client.Payments.Get(cli.ctx, opts.ID, include...)
	if err != nil {
		return err
	}
	return cli.print(resp)
}

func (cli *CLI) listPayments(opts Options) error {
	resp, err := cli.client.Payments.List(cli.ctx, cli.listParams(opts))
	if err != nil {
		return err
	}
	return cli.print(resp)
}

// createPayment reads a create request document; its shape decides the payment variant
func (cli *CLI) createPayment(opts Options) error {
	data, err := cli.readInput(opts.JSONFile)
	if err != nil {
		return err
	}

	// Accept the document with or without its top-level data member
	var envelope struct {
		Data encoding.RawMessage `json:"data"`
	}
	if err := encoding.Unmarshal(data, &envelope); err == nil && len(envelope.Data) > 0 {
		data = envelope.Data
	}

	req, err := models.UnmarshalCreatePaymentRequest(data)
	if err != nil {
		return err
	}

	payment, err := cli.client.Payments.Create(cli.ctx, req)
	if err != nil {
		return err
	}
	return cli.print(models.DataEnvelope{Data: payment})
}

func (cli *CLI) tagPayment(opts Options) error {
	tags, err := parseTags(opts.Tags)
	if err != nil {
		return err
	}
	paymentType := models.PaymentType(opts.Type)
	if paymentType == "" {
		paymentType = models.PaymentTypeACH
	}

	payment, err := cli.client.Payments.Update(cli.ctx, opts.ID, models.NewPatchPaymentRequest(paymentType, tags))
	if err != nil {
		return err
	}
	return cli.print(models.DataEnvelope{Data: payment})
}

func (cli *CLI) getAccount(opts Options) error {
	account, err := cli.client.Accounts.Get(cli.ctx, opts.ID)
	if err != nil {
		return err
	}
	return cli.print(models.DataEnvelope{Data: account})
}

func (cli *CLI) listAccounts(opts Options) error {
	resp, err := cli.client.Accounts.List(cli.ctx, cli.listParams(opts))
	if err != nil {
		return err
	}
	return cli.print(resp)
}

func (cli *CLI) listTransactions(opts Options) error {
	resp, err := cli.client.Transactions.List(cli.ctx, cli.listParams(opts))
	if err != nil {
		return err
	}
	return cli.print(resp)
}

func (cli *CLI) getCustomer(opts Options) error {
	customer, err := cli.client.Customers.Get(cli.ctx, opts.ID)
	if err != nil {
		return err
	}
	return cli.print(models.DataEnvelope{Data: customer})
}

func (cli *CLI) listEvents(opts Options) error {
	params := cli.listParams(opts)
	if opts.Type != "" {
		params.Types = strings.Split(opts.Type, ",")
	}
	resp, err := cli.client.Events.List(cli.ctx, params)
	if err != nil {
		return err
	}
	return cli.print(resp)
}

// verifyWebhook checks a saved delivery body against its X-Unit-Signature header value
func (cli *CLI) verifyWebhook(opts Options) error {
	if opts.Signature == "" || opts.Secret == "" {
		return fmt.Errorf("-signature and -secret are required")
	}
	payload, err := cli.readInput(opts.JSONFile)
	if err != nil {
		return err
	}

	valid := cli.client.Webhooks.VerifySignature(payload, opts.Signature, opts.Secret)
	if err := cli.print(map[string]bool{"valid": valid}); err != nil {
		return err
	}
	if !valid {
		return fmt.Errorf("webhook signature does not match")
	}
	return nil
}

// readInput reads path, or stdin when path is empty or "-"
func (cli *CLI) readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cli.in)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func (cli *CLI) print(v interface{}) error {
	data, err := encoding.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(cli.out, string(data))
	return err
}

// parseTags parses "key=value,key2=value2"
func parseTags(s string) (models.Tags, error) {
	tags := models.Tags{}
	if strings.TrimSpace(s) == "" {
		return tags, nil
	}
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid tag %q, expected key=value", pair)
		}
		tags[key] = strings.TrimSpace(value)
	}
	return tags, nil
}

// describeError renders an error for the terminal. Remote errors print the API's errors document.
func describeError(err error) string {
	var apiErr *pkgerrors.APIError
	if unit.IsError(err) && stderrors.As(err, &apiErr) {
		data, marshalErr := encoding.MarshalIndent(apiErr, "", "  ")
		if marshalErr == nil {
			return fmt.Sprintf("unit api returned status %d:\n%s", apiErr.StatusCode, data)
		}
	}
	var validationErr *pkgerrors.ValidationError
	if stderrors.As(err, &validationErr) {
		return "invalid request: " + validationErr.Error()
	}
	return err.Error()
}
