//go:build !tabstackdebug

package stack

const debugAssertions = false
