package log

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForContext_CarriesCorrelationID(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	ctx, correlationID := WithCorrelationID(context.Background())
	require.NotEmpty(t, correlationID)

	ForContext(ctx).WithError(errors.New("boom")).Error("something failed")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, correlationID, entry.Data[correlationIDField])
	assert.EqualError(t, entry.Data["error"].(error), "boom")
}

func TestForContext_WithoutCorrelationID(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	ForContext(context.Background()).Info("plain entry")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.NotContains(t, entry.Data, correlationIDField)
}

func TestGetCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))

	ctx, correlationID := WithCorrelationID(context.Background())
	assert.Equal(t, correlationID, GetCorrelationID(ctx))
}
