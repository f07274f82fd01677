package api

import (
	"context"
	"errors"
)

type keyType string

const (
	externalIDKey keyType = "externalID"
)

// ctxWithExternalID adds the caller's external identity to the context
func ctxWithExternalID(ctx context.Context, externalID string) context.Context {
	return context.WithValue(ctx, externalIDKey, externalID)
}

// ctxGetExternalID retrieves the caller's external identity from the context
func ctxGetExternalID(ctx context.Context) (string, error) {
	ctxValue := ctx.Value(externalIDKey)
	if ctxValue == nil {
		return "", errors.New("external identity not found in context")
	}
	valueAsString, ok := ctxValue.(string)
	if !ok {
		return "", errors.New("external identity is not of type `string`")
	}
	return valueAsString, nil
}
