package bufferreg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/core-quic/pluginop/pkg/bufferreg"
)

func TestIssueReadPut(t *testing.T) {
	reg := bufferreg.New()
	region := make([]byte, 16)
	copy(region, []byte("hello world!!!!!"))

	tag := reg.Issue(region, 16, 16, 1)
	assert.True(t, reg.Valid(tag))

	got, err := reg.Read(tag, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	n, err := reg.Put(tag, []byte("BYE"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, byte('B'), region[0])
}

func TestReadBeyondCapIsError(t *testing.T) {
	reg := bufferreg.New()
	tag := reg.Issue(make([]byte, 4), 4, 0, 1)
	_, err := reg.Read(tag, 5)
	require.ErrorIs(t, err, bufferreg.ErrReadTooLarge)
}

func TestWriteBeyondCapIsError(t *testing.T) {
	reg := bufferreg.New()
	tag := reg.Issue(make([]byte, 4), 0, 2, 1)
	_, err := reg.Put(tag, []byte("abc"))
	require.ErrorIs(t, err, bufferreg.ErrWriteTooLarge)
}

func TestUnknownTagIsError(t *testing.T) {
	reg := bufferreg.New()
	_, err := reg.Read(999, 1)
	require.ErrorIs(t, err, bufferreg.ErrUnknownTag)
}

func TestRevokeFrameBulkRevokes(t *testing.T) {
	reg := bufferreg.New()
	a := reg.Issue(make([]byte, 4), 4, 4, 1)
	b := reg.Issue(make([]byte, 4), 4, 4, 1)
	c := reg.Issue(make([]byte, 4), 4, 4, 2)

	reg.RevokeFrame(1)

	assert.False(t, reg.Valid(a))
	assert.False(t, reg.Valid(b))
	assert.True(t, reg.Valid(c))
}

func TestRevokeSingleTag(t *testing.T) {
	reg := bufferreg.New()
	tag := reg.Issue(make([]byte, 4), 4, 4, 1)
	reg.Revoke(tag)
	_, err := reg.Read(tag, 1)
	require.ErrorIs(t, err, bufferreg.ErrUnknownTag)
}
