package queries

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"routekeeper/internal/pkg/errs"
	"routekeeper/internal/pkg/guard"
)

var ErrGetNavigationLinkQueryIsNotConstructed = errors.New(
	"GetNavigationLinkQuery must be created via NewGetNavigationLinkQuery constructor",
)

// Provider is the GPS app the driver navigates with.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderWaze   Provider = "waze"
	ProviderApple  Provider = "apple"
)

// GetNavigationLinkQuery builds a deep link that opens navigation to an address.
type GetNavigationLinkQuery struct {
	address  string
	provider Provider
	guard    guard.ConstructorGuard
}

// NewGetNavigationLinkQuery validates the input. An empty provider means google.
func NewGetNavigationLinkQuery(address, provider string) (GetNavigationLinkQuery, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return GetNavigationLinkQuery{}, errs.NewValueIsRequiredError("address")
	}

	p := Provider(strings.ToLower(strings.TrimSpace(provider)))
	switch p {
	case "":
		p = ProviderGoogle
	case ProviderGoogle, ProviderWaze, ProviderApple:
	default:
		return GetNavigationLinkQuery{}, errs.NewValueIsInvalidErrorWithCause("provider",
			fmt.Errorf("%q is not one of google, waze, apple", provider))
	}

	return GetNavigationLinkQuery{address: address, provider: p, guard: guard.NewConstructorGuard()}, nil
}

func (q GetNavigationLinkQuery) Validate() error {
	return q.guard.Validate(ErrGetNavigationLinkQueryIsNotConstructed)
}

type NavigationLinkResponse struct {
	Provider Provider
	URL      string
}

type GetNavigationLinkQueryHandler struct{}

func NewGetNavigationLinkQueryHandler() GetNavigationLinkQueryHandler {
	return GetNavigationLinkQueryHandler{}
}

func (GetNavigationLinkQueryHandler) Handle(_ context.Context, query GetNavigationLinkQuery) (NavigationLinkResponse, error) {
	if err := query.Validate(); err != nil {
		return NavigationLinkResponse{}, err
	}

	destination := strings.ReplaceAll(url.QueryEscape(query.address), "+", "%20")
	var link string
	switch query.provider {
	case ProviderWaze:
		link = "waze://?q=" + destination + "&navigate=yes"
	case ProviderApple:
		link = "maps://?daddr=" + destination
	default:
		link = "https://www.google.com/maps/dir/?api=1&destination=" + destination
	}
	return NavigationLinkResponse{Provider: query.provider, URL: link}, nil
}
