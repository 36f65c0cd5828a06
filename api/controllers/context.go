package controllers

import (
	"net/http"

	"github.com/sartorlabs/sartor-backend/api/middleware"
	pkgAuth "github.com/sartorlabs/sartor-backend/pkg/auth"
	pkgerrors "github.com/sartorlabs/sartor-backend/pkg/errors"
)

func identityFromRequest(r *http.Request) (pkgAuth.Identity, error) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return pkgAuth.Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return identity, nil
}
