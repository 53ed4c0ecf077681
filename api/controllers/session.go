package controllers

import (
	"context"
	"net/http"

	"github.com/lovenest/storefront/api/middleware"
	"github.com/lovenest/storefront/internal/catalog"
	"github.com/lovenest/storefront/internal/store"
	pkgerrors "github.com/lovenest/storefront/pkg/errors"
)

// SessionStores hands out the Store bound to a browsing session.
type SessionStores interface {
	Get(ctx context.Context, sessionID string) *store.Store
}

func sessionStore(r *http.Request, stores SessionStores) (*store.Store, error) {
	if stores == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session stores unavailable")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return stores.Get(r.Context(), sessionID), nil
}

func lookupProduct(cat *catalog.Catalog, id string) (catalog.Product, error) {
	if cat == nil {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable")
	}
	p, ok := cat.ProductByID(id)
	if !ok {
		return catalog.Product{}, pkgerrors.NotFound("product", id)
	}
	return p, nil
}
