package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusNotConfigured(t *testing.T) {
	assert.Equal(t, "not_configured", Status(context.Background(), nil))
}

func TestNewMongoRejectsBadURI(t *testing.T) {
	client, err := NewMongo(context.Background(), "not-a-mongo-uri")

	assert.Error(t, err)
	assert.Nil(t, client)
}
