package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mnmarket/marketlink-backend/internal/session"
	"github.com/mnmarket/marketlink-backend/pkg/db/models"
	pkgerrors "github.com/mnmarket/marketlink-backend/pkg/errors"
)

type customerCreator interface {
	Create(ctx context.Context, customer *models.Customer) error
}

// Directory maps a session's (name, email) pair to a durable customer id,
// reusing the identity bound to the session when one exists.
type Directory struct {
	repo customerCreator
}

// NewDirectory builds the customer directory.
func NewDirectory(repo customerCreator) (*Directory, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &Directory{repo: repo}, nil
}

// Resolve returns the session's customer id, creating the row on first
// checkout. When the session already holds an id, the session's display
// name/email are refreshed to the latest input but the stored row is not
// updated: the first write wins. The caller owns saving the session.
func (d *Directory) Resolve(ctx context.Context, sess *session.State, name, email string) (uuid.UUID, error) {
	if sess == nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "session required")
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if email == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	if sess.CustomerID != nil {
		sess.Name = name
		sess.Email = email
		return *sess.CustomerID, nil
	}

	customer := &models.Customer{Name: name, Email: email}
	if err := d.repo.Create(ctx, customer); err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "create customer")
	}

	id := customer.ID
	sess.CustomerID = &id
	sess.Name = name
	sess.Email = email
	return id, nil
}
