package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.Nil(t, Combine())
	assert.Nil(t, Combine(nil, nil))

	err1 := errors.New("first")
	err2 := errors.New("second")

	combined := Combine(nil, err1, nil, err2)
	if assert.Error(t, combined) {
		assert.Contains(t, combined.Error(), "first")
		assert.Contains(t, combined.Error(), "second")
	}
}

func TestNewErrorf(t *testing.T) {
	err := NewErrorf("port %v already in use", 2054)
	assert.Equal(t, "port 2054 already in use", err.Error())
}

func TestRecover(t *testing.T) {
	var captured any
	func() {
		defer func() { captured = Recover("") }()
		panic("boom")
	}()
	assert.Equal(t, "boom", captured)

	captured = "sentinel"
	func() {
		defer func() { captured = Recover("") }()
	}()
	assert.Nil(t, captured)
}
