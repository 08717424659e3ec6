package cbor

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptionsDefaults(t *testing.T) {
	o := newOptions(nil)
	assert.False(t, o.atjson)
	assert.Nil(t, o.linkFactory)
	assert.Equal(t, logr.Discard(), o.logger)
}

func TestOptionsApplyInOrder(t *testing.T) {
	called := false
	factory := func(raw []byte) (Link, error) {
		called = true
		return stubLink{raw}, nil
	}

	o := newOptions([]Option{WithAtjson(true), WithLinkFactory(factory)})
	require.True(t, o.atjson)
	require.NotNil(t, o.linkFactory)

	_, err := o.linkFactory([]byte{1})
	require.NoError(t, err)
	assert.True(t, called)

	o = newOptions([]Option{WithAtjson(true), WithAtjson(false)})
	assert.False(t, o.atjson)
}
