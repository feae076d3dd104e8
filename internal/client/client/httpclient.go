package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/dmitrijs2005/cateringplus/internal/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// registrationOption 1 is email/password login.
const registrationOptionEmail = 1

// maxResponseBody caps how much of a response body is read.
const maxResponseBody = 4 << 20

type Options struct {
	BaseURL  string
	Timeout  time.Duration
	Identity Identity
	Tokens   TokenSource
	Logger   logging.Logger

	// Transport is the underlying round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
}

type HTTPClient struct {
	baseURL *url.URL
	lang    string
	timeout time.Duration
	http    *http.Client
	log     logging.Logger
}

func NewHTTPClient(opts Options) (*HTTPClient, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", opts.BaseURL)
	}

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	rt := otelhttp.NewTransport(&headerTransport{base: base, identity: opts.Identity, tokens: opts.Tokens})

	return &HTTPClient{
		baseURL: u,
		lang:    opts.Identity.Lang,
		timeout: opts.Timeout,
		http:    &http.Client{Transport: rt},
		log:     log.With("component", "api"),
	}, nil
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (LoginResult, error) {
	req := loginRequest{
		RegistrationOption: registrationOptionEmail,
		Email:              creds.Email,
		Password:           string(creds.Password),
		RememberMe:         creds.RememberMe,
	}
	var resp loginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/Account/MobileLogin", nil, req, &resp); err != nil {
		return LoginResult{}, err
	}
	if resp.TokenCode == "" {
		return LoginResult{}, fmt.Errorf("login: %w: empty token", ErrBadResponse)
	}
	return LoginResult{Token: resp.TokenCode, UserID: string(resp.ID), UserName: resp.Name}, nil
}

func (c *HTTPClient) FetchCategories(ctx context.Context) ([]models.Category, error) {
	var resp []categoryDTO
	q := url.Values{"Lang": {c.lang}}
	if err := c.do(ctx, "fetch categories", http.MethodGet, "/Items/GetMobileCategoryDDL", q, nil, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, categoryDTO.model), nil
}

func (c *HTTPClient) FetchProducts(ctx context.Context, categoryID string) ([]models.Product, error) {
	var resp []productDTO
	q := url.Values{"CategoryID": {categoryID}}
	if err := c.do(ctx, "fetch products", http.MethodGet, "/Items/GetCategoriesProductsByID", q, nil, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, productDTO.model), nil
}

func (c *HTTPClient) MutateCart(ctx context.Context, productID string, quantity int, extras []string) error {
	if extras == nil {
		extras = []string{}
	}
	req := manageCartRequest{ProductID: productID, Quantity: quantity, ExtrasListIDs: extras}
	return c.do(ctx, "manage cart", http.MethodPost, "/Cart/ManageCart", nil, req, nil)
}

func (c *HTTPClient) FetchCart(ctx context.Context) ([]models.CartLine, error) {
	var resp []cartLineDTO
	if err := c.do(ctx, "fetch cart", http.MethodGet, "/Cart/GetUserCartList", nil, nil, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, cartLineDTO.model), nil
}

func (c *HTTPClient) CalculateOrder(ctx context.Context) (models.OrderCalculation, error) {
	var resp orderCalculationDTO
	if err := c.do(ctx, "calculate order", http.MethodPost, "/Order/OrderCalculation", nil, nil, &resp); err != nil {
		return models.OrderCalculation{}, err
	}
	return resp.model(), nil
}

func (c *HTTPClient) Checkout(ctx context.Context, req models.CheckoutRequest) error {
	body := checkoutRequest{AddressID: req.AddressID, OrderNotes: req.Notes, DiscountCode: req.DiscountCode}
	return c.do(ctx, "checkout", http.MethodPost, "/Order/CheckOut", nil, body, nil)
}

func (c *HTTPClient) FetchAddresses(ctx context.Context) ([]models.Address, error) {
	var resp []addressDTO
	if err := c.do(ctx, "fetch addresses", http.MethodGet, "/Address/GetUserAddresses", nil, nil, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, addressDTO.model), nil
}

// do sends one request and decodes a 2xx JSON body into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "api request failed", "op", op, "method", method, "path", path, "error", err)
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	c.log.Debug(ctx, "api request", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(op, resp.StatusCode, bytes.TrimSpace(data))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrBadResponse, err)
	}
	return nil
}
